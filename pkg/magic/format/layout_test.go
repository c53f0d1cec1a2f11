package format

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
)

func translations(pairs ...string) SpellTranslations {
	t := SpellTranslations{}
	for i := 0; i+2 < len(pairs); i += 3 {
		t = t.With(pairs[i], Translation{Name: pairs[i+1], Description: pairs[i+2]})
	}
	return t
}

func TestPlanLayoutEmpty(t *testing.T) {
	layout := PlanLayout(nil)

	assert.Equal(t, 0, layout.TotalSize())
	assert.Equal(t, 0, layout.Len())
	assert.Empty(t, layout.Slots())
	assert.Empty(t, layout.Languages())
}

func TestPlanLayoutSingleSpell(t *testing.T) {
	layout := PlanLayout([]SpellText{
		{Index: 0, Translations: EnglishOnly("Meteor", "Heavy damage")},
	})

	slot, ok := layout.Slot(0)
	require.True(t, ok)
	assert.Equal(t, 0, slot.NameOffset)
	assert.Equal(t, 7, slot.NameSize)
	assert.Equal(t, 7, slot.DescOffset)
	assert.Equal(t, 13, slot.DescSize)
	assert.Equal(t, 20, layout.TotalSize())
	assert.Equal(t, []string{LanguageEnglish}, layout.Languages())

	namePtr, err := slot.NamePointer()
	require.NoError(t, err)
	assert.Equal(t, uint16(2095), namePtr)
	descPtr, err := slot.DescPointer()
	require.NoError(t, err)
	assert.Equal(t, uint16(2102), descPtr)
}

func TestPlanLayoutUsesLongestLanguage(t *testing.T) {
	layout := PlanLayout([]SpellText{
		{Index: 5, Translations: translations(
			"English", "Fire", "Burns",
			"French", "Brasier", "Brule un ennemi",
		)},
		{Index: 2, Translations: translations(
			"German", "Blitz", "Schock",
		)},
	})

	slots := layout.Slots()
	require.Len(t, slots, 2)

	// ascending index order regardless of input order
	assert.Equal(t, 2, slots[0].Index)
	assert.Equal(t, 0, slots[0].NameOffset)
	assert.Equal(t, 6, slots[0].NameSize)
	assert.Equal(t, 7, slots[0].DescSize)

	assert.Equal(t, 5, slots[1].Index)
	assert.Equal(t, 13, slots[1].NameOffset)
	assert.Equal(t, 8, slots[1].NameSize)
	assert.Equal(t, 21, slots[1].DescOffset)
	assert.Equal(t, 16, slots[1].DescSize)

	assert.Equal(t, 37, layout.TotalSize())
	assert.Equal(t, []string{"English", "French", "German"}, layout.Languages())
}

func TestPlanLayoutNonOverlapAndTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	langs := []string{"English", "French", "German", "Spanish", "Italian", "Japanese", "Klingon"}

	for round := 0; round < 25; round++ {
		var spells []SpellText
		for _, idx := range rng.Perm(30)[:1+rng.Intn(29)] {
			tr := SpellTranslations{}
			for _, l := range langs {
				if rng.Intn(2) == 0 {
					continue
				}
				tr = tr.With(l, Translation{
					Name:        strings.Repeat("n", rng.Intn(20)),
					Description: strings.Repeat("d", rng.Intn(80)),
				})
			}
			spells = append(spells, SpellText{Index: idx, Translations: tr})
		}

		layout := PlanLayout(spells)
		slots := layout.Slots()
		require.Len(t, slots, len(spells))

		sum := 0
		for i, a := range slots {
			sum += a.NameSize + a.DescSize
			assert.Equal(t, a.NameOffset+a.NameSize, a.DescOffset)
			for j, b := range slots {
				if i == j {
					continue
				}
				assert.False(t, overlaps(a.NameOffset, a.NameSize, b.NameOffset, b.NameSize))
				assert.False(t, overlaps(a.NameOffset, a.NameSize, b.DescOffset, b.DescSize))
				assert.False(t, overlaps(a.DescOffset, a.DescSize, b.DescOffset, b.DescSize))
			}
		}
		assert.Equal(t, sum, layout.TotalSize())

		// shuffled input gives the same layout
		rng.Shuffle(len(spells), func(i, j int) { spells[i], spells[j] = spells[j], spells[i] })
		assert.Equal(t, slots, PlanLayout(spells).Slots())
	}
}

func overlaps(aOff, aLen, bOff, bLen int) bool {
	return aOff < bOff+bLen && bOff < aOff+aLen
}

func TestPointerOverflow(t *testing.T) {
	slot := SpellSlot{Index: 9, NameOffset: MaxTextPointer}
	_, err := slot.NamePointer()
	assert.ErrorIs(t, err, magicerrors.ErrTextPointerOverflow)
}

func TestLayoutFromPointers(t *testing.T) {
	planned := PlanLayout([]SpellText{
		{Index: 0, Translations: EnglishOnly("Meteor", "Heavy damage")},
		{Index: 1, Translations: EnglishOnly("Ultima", "Non-elemental damage")},
	})

	var records []MagicData
	for _, slot := range planned.Slots() {
		name, err := slot.NamePointer()
		require.NoError(t, err)
		desc, err := slot.DescPointer()
		require.NoError(t, err)
		records = append(records, MagicData{Index: slot.Index}.WithTextPointers(name, desc))
	}

	rebuilt, ok := LayoutFromPointers(records, planned.TotalSize())
	require.True(t, ok)
	assert.Equal(t, planned.Slots(), rebuilt.Slots())

	_, ok = LayoutFromPointers(records, 5)
	assert.False(t, ok)

	records[1].OffsetSpellName = 0
	_, ok = LayoutFromPointers(records, planned.TotalSize())
	assert.False(t, ok)
}

func TestFixedLayout(t *testing.T) {
	layout := FixedLayout(3, DefaultNameSlotSize, DefaultDescSlotSize)

	slot, ok := layout.Slot(2)
	require.True(t, ok)
	assert.Equal(t, 320, slot.NameOffset)
	assert.Equal(t, 352, slot.DescOffset)
	assert.Equal(t, 480, layout.TotalSize())
}
