package spellfile

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/ff8magic/pkg/magic/format"
)

func TestRoundTripRandomRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(56))
	buf := make([]byte, 20*format.RecordSize)
	rng.Read(buf)

	spells, err := format.ParseRecords(buf)
	require.NoError(t, err)

	data, err := Marshal("random", spells)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, back, len(spells))
	assert.Equal(t, buf, format.SerializeRecords(back))
}

func TestReadableDocument(t *testing.T) {
	m := format.MagicData{
		Index:       0,
		MagicID:     1,
		AttackType:  format.AttackType(0),
		SpellPower:  20,
		Element:     format.ElementFire,
		TargetFlags: format.TargetFlags(0),
		GFCompatibility: format.GFCompatibility{}.
			With(format.GF(2), 12),
		Translations: format.EnglishOnly("Fire", "Fire damage"),
	}
	m.JunctionStats[format.StatMAG] = 3
	m.JunctionElemental.DefenseSet = format.ElementSet(0).With(format.ElementFire).With(format.ElementIce)

	data, err := Marshal("kernel.bin", []format.MagicData{m})
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "source: kernel.bin")
	assert.Contains(t, text, "element: Fire")
	assert.Contains(t, text, "defense: [Fire, Ice]")
	assert.Contains(t, text, "mag: 3")
	assert.Contains(t, text, "Ifrit: 12")
	assert.Contains(t, text, "name: Fire")

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "Fire", back[0].EnglishName())
	assert.Equal(t, uint8(12), back[0].GFCompatibility.Get(format.GF(2)))
}

func TestHandWrittenSpell(t *testing.T) {
	doc := `
version: 1
spells:
  - index: 4
    magic_id: 300
    new: true
    attack_type: "0x02"
    spell_power: 40
    element: ice
    hit_count: 2
    junction:
      stats: {hp: 5, luck: 9}
      status:
        attack: [JStatus(14)]
        attack_value: 10
    gf_compatibility:
      shiva: 7
    translations:
      - {language: English, name: Frost, description: Chills}
      - {language: French, name: Givre, description: Froid}
`
	spells, err := Unmarshal([]byte(doc))
	require.NoError(t, err)
	require.Len(t, spells, 1)

	m := spells[0]
	assert.Equal(t, 4, m.Index)
	assert.Equal(t, uint16(300), m.MagicID)
	assert.True(t, m.IsNewlyCreated)
	assert.Equal(t, format.AttackType(2), m.AttackType)
	assert.Equal(t, format.ElementIce, m.Element)
	assert.Equal(t, uint8(5), m.JunctionStats[format.StatHP])
	assert.Equal(t, uint8(9), m.JunctionStats[format.StatLUCK])
	assert.True(t, m.JunctionStatus.AttackSet.Has(format.JStatus(14)))
	assert.Equal(t, uint8(7), m.GFCompatibility.Get(format.GF(1)))
	assert.Equal(t, []string{"English", "French"}, m.Translations.Languages())
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "spells: [\n"},
		{"future version", "version: 9\nspells: []\n"},
		{"bad element", "spells:\n  - element: Plasma\n    attack_type: '0'\n"},
		{"bad gf", "spells:\n  - attack_type: '0'\n    gf_compatibility: {Odin: 1}\n"},
		{"bad status", "spells:\n  - attack_type: '0'\n    statuses: [Hiccups]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spells.yaml")
	spells := []format.MagicData{
		{Index: 0, MagicID: 1, SpellPower: 10, IsNewlyCreated: true, Translations: format.EnglishOnly("A", "a")},
		{Index: 1, MagicID: 2, SpellPower: 20, IsNewlyCreated: true, Translations: format.EnglishOnly("B", "b")},
	}
	require.NoError(t, Save(path, "test", spells))

	back, err := Load(path)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "B", back[1].EnglishName())
	assert.Equal(t, uint8(20), back[1].SpellPower)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
