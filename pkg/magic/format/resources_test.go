package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
	"github.com/provide-io/ff8magic/pkg/magic/textcodec"
)

func TestResourcesRoundTrip(t *testing.T) {
	entries := []Translation{
		{Name: "Fire", Description: "Fire damage to one enemy"},
		{Name: "", Description: ""},
		{Name: "Ultima 2", Description: "Non-elemental damage!"},
	}

	buf, err := WriteResources(entries, DefaultNameSlotSize, DefaultDescSlotSize)
	require.NoError(t, err)
	assert.Len(t, buf, 3*(DefaultNameSlotSize+DefaultDescSlotSize))

	// encoded, null terminated, zero padded
	assert.Equal(t, []byte("Jgpc"), buf[:4])
	assert.Equal(t, make([]byte, DefaultNameSlotSize-4), buf[4:DefaultNameSlotSize])

	got, err := ReadResources(buf, 3, DefaultNameSlotSize, DefaultDescSlotSize)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestResourcesWithLayout(t *testing.T) {
	layout := PlanLayout([]SpellText{
		{Index: 4, Translations: translations("English", "Quake", "Earth damage", "French", "Seisme", "Degats de terre")},
		{Index: 9, Translations: EnglishOnly("Aero", "Wind damage")},
	})

	texts := map[int]Translation{
		4: {Name: "Seisme", Description: "Degats de terre"},
		9: {Name: "Aero", Description: "Wind damage"},
	}
	buf, err := WriteResourcesWithLayout(layout, texts)
	require.NoError(t, err)
	require.Len(t, buf, layout.TotalSize())

	got, truncated := ReadResourcesWithLayout(buf, layout)
	assert.Zero(t, truncated)
	assert.Equal(t, []Translation{texts[4], texts[9]}, got)
}

func TestWriteResourcesRejectsBadText(t *testing.T) {
	_, err := WriteResources([]Translation{{Name: "Café"}}, 32, 32)
	assert.ErrorIs(t, err, magicerrors.ErrEncodingIncompatible)

	_, err = WriteResources([]Translation{{Name: "TooLongForSlot"}}, 4, 32)
	assert.ErrorIs(t, err, magicerrors.ErrTextTooLong)

	layout := PlanLayout([]SpellText{{Index: 1, Translations: EnglishOnly("A", "B")}})
	_, err = WriteResourcesWithLayout(layout, map[int]Translation{})
	assert.Error(t, err)
}

func TestExtractString(t *testing.T) {
	buf := []byte{'J', 'g', 'p', 'c', 0, 'X', 'X', 0xFF}

	s, cut := ExtractString(buf, 0, 8)
	assert.Equal(t, "Fire", s)
	assert.False(t, cut)

	// slot boundary before the terminator
	s, cut = ExtractString(buf, 0, 2)
	assert.Equal(t, "Fi", s)
	assert.False(t, cut)

	// high bytes stay unsigned and pass through unchanged
	s, cut = ExtractString(buf, 7, 1)
	assert.Equal(t, string([]byte{0xFF}), s)
	assert.False(t, cut)

	s, cut = ExtractString(buf, 5, 10)
	assert.Equal(t, textcodec.Decode("XX\xFF"), s)
	assert.True(t, cut)

	s, cut = ExtractString(buf, 20, 4)
	assert.Empty(t, s)
	assert.True(t, cut)
}

func TestReadResourcesShortBuffer(t *testing.T) {
	buf, err := WriteResources([]Translation{{Name: "Cure", Description: "Heal"}}, 8, 8)
	require.NoError(t, err)

	got, err := ReadResources(buf, 2, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, []Translation{{Name: "Cure", Description: "Heal"}, {}}, got)

	_, err = ReadResources(buf, 1, 0, 8)
	assert.Error(t, err)
}
