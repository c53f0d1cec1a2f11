// Package spellfile reads and writes human-editable YAML spell definitions.
package spellfile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/provide-io/ff8magic/pkg/magic/format"
)

// Version is written to every document.
const Version = 1

// Document is the top level of a spell file.
type Document struct {
	Version int     `yaml:"version"`
	Source  string  `yaml:"source,omitempty"`
	Spells  []Spell `yaml:"spells"`
}

// Spell is the YAML form of format.MagicData. Enumerations are stored by
// name and flag sets as name lists; unknown values keep their numeric form.
type Spell struct {
	Index       int    `yaml:"index"`
	MagicID     uint16 `yaml:"magic_id"`
	New         bool   `yaml:"new,omitempty"`
	NamePointer uint16 `yaml:"name_pointer,omitempty"`
	DescPointer uint16 `yaml:"desc_pointer,omitempty"`

	AnimationTrigger    uint8    `yaml:"animation_trigger"`
	AttackType          string   `yaml:"attack_type"`
	SpellPower          uint8    `yaml:"spell_power"`
	TargetFlags         []string `yaml:"target_flags,flow,omitempty"`
	AttackFlags         []string `yaml:"attack_flags,flow,omitempty"`
	DrawResist          uint8    `yaml:"draw_resist"`
	HitCount            uint8    `yaml:"hit_count"`
	Element             string   `yaml:"element"`
	Statuses            []string `yaml:"statuses,flow,omitempty"`
	StatusAttackEnabler uint8    `yaml:"status_attack_enabler"`

	Junction Junction         `yaml:"junction"`
	GF       map[string]uint8 `yaml:"gf_compatibility,omitempty"`
	Unknown  Unknown          `yaml:"unknown"`

	Translations []Text `yaml:"translations,omitempty"`
}

// Junction groups the junction bonuses of a spell.
type Junction struct {
	Stats     Stats          `yaml:"stats"`
	Elemental ElementalBlock `yaml:"elemental"`
	Status    StatusBlock    `yaml:"status"`
}

// Stats lists the nine junction stat bonuses in record order.
type Stats struct {
	HP   uint8 `yaml:"hp"`
	STR  uint8 `yaml:"str"`
	VIT  uint8 `yaml:"vit"`
	MAG  uint8 `yaml:"mag"`
	SPR  uint8 `yaml:"spr"`
	SPD  uint8 `yaml:"spd"`
	EVA  uint8 `yaml:"eva"`
	HIT  uint8 `yaml:"hit"`
	LUCK uint8 `yaml:"luck"`
}

type ElementalBlock struct {
	Attack       string   `yaml:"attack"`
	AttackValue  uint8    `yaml:"attack_value"`
	Defense      []string `yaml:"defense,flow,omitempty"`
	DefenseValue uint8    `yaml:"defense_value"`
}

type StatusBlock struct {
	Attack       []string `yaml:"attack,flow,omitempty"`
	AttackValue  uint8    `yaml:"attack_value"`
	Defense      []string `yaml:"defense,flow,omitempty"`
	DefenseValue uint8    `yaml:"defense_value"`
}

// Unknown keeps the record bytes whose meaning is not known.
type Unknown struct {
	Byte09 uint8  `yaml:"byte_09"`
	Byte0F uint8  `yaml:"byte_0f"`
	Word3A uint16 `yaml:"word_3a"`
}

// Text is one language entry.
type Text struct {
	Language    string `yaml:"language"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func (s Stats) array() format.StatJunction {
	return format.StatJunction{s.HP, s.STR, s.VIT, s.MAG, s.SPR, s.SPD, s.EVA, s.HIT, s.LUCK}
}

func statsFrom(j format.StatJunction) Stats {
	return Stats{
		HP: j[format.StatHP], STR: j[format.StatSTR], VIT: j[format.StatVIT],
		MAG: j[format.StatMAG], SPR: j[format.StatSPR], SPD: j[format.StatSPD],
		EVA: j[format.StatEVA], HIT: j[format.StatHIT], LUCK: j[format.StatLUCK],
	}
}

// FromMagic converts a spell to its YAML form.
func FromMagic(m format.MagicData) Spell {
	s := Spell{
		Index:               m.Index,
		MagicID:             m.MagicID,
		New:                 m.IsNewlyCreated,
		AnimationTrigger:    m.AnimationTrigger,
		AttackType:          m.AttackType.String(),
		SpellPower:          m.SpellPower,
		TargetFlags:         m.TargetFlags.Names(),
		AttackFlags:         m.AttackFlags.Names(),
		DrawResist:          m.DrawResist,
		HitCount:            m.HitCount,
		Element:             m.Element.String(),
		Statuses:            m.StatusEffects.Names(),
		StatusAttackEnabler: m.StatusAttackEnabler,
		Junction: Junction{
			Stats: statsFrom(m.JunctionStats),
			Elemental: ElementalBlock{
				Attack:       m.JunctionElemental.AttackElement.String(),
				AttackValue:  m.JunctionElemental.AttackValue,
				Defense:      m.JunctionElemental.DefenseSet.Names(),
				DefenseValue: m.JunctionElemental.DefenseValue,
			},
			Status: StatusBlock{
				Attack:       m.JunctionStatus.AttackSet.Names(),
				AttackValue:  m.JunctionStatus.AttackValue,
				Defense:      m.JunctionStatus.DefenseSet.Names(),
				DefenseValue: m.JunctionStatus.DefenseValue,
			},
		},
		Unknown: Unknown{Byte09: m.Unknown1, Byte0F: m.Unknown2, Word3A: m.Unknown3},
	}

	// Pointers only matter for kernel spells; export recomputes them.
	if !m.IsNewlyCreated {
		s.NamePointer = m.OffsetSpellName
		s.DescPointer = m.OffsetSpellDescription
	}

	for _, g := range format.AllGFs() {
		if v := m.GFCompatibility.Get(g); v != 0 {
			if s.GF == nil {
				s.GF = make(map[string]uint8)
			}
			s.GF[g.String()] = v
		}
	}

	m.Translations.Each(func(lang string, tr format.Translation) {
		s.Translations = append(s.Translations, Text{Language: lang, Name: tr.Name, Description: tr.Description})
	})
	return s
}

// ToMagic converts the YAML form back to a spell.
func (s Spell) ToMagic() (format.MagicData, error) {
	m := format.MagicData{
		Index:                  s.Index,
		OffsetSpellName:        s.NamePointer,
		OffsetSpellDescription: s.DescPointer,
		MagicID:                s.MagicID,
		AnimationTrigger:       s.AnimationTrigger,
		SpellPower:             s.SpellPower,
		Unknown1:               s.Unknown.Byte09,
		DrawResist:             s.DrawResist,
		HitCount:               s.HitCount,
		Unknown2:               s.Unknown.Byte0F,
		StatusAttackEnabler:    s.StatusAttackEnabler,
		JunctionStats:          s.Junction.Stats.array(),
		Unknown3:               s.Unknown.Word3A,
		IsNewlyCreated:         s.New,
	}

	var err error
	if s.AttackType != "" {
		if m.AttackType, err = format.ParseAttackType(s.AttackType); err != nil {
			return m, s.wrap(err)
		}
	}
	if m.TargetFlags, err = format.ParseTargetFlags(s.TargetFlags); err != nil {
		return m, s.wrap(err)
	}
	if m.AttackFlags, err = format.ParseAttackFlags(s.AttackFlags); err != nil {
		return m, s.wrap(err)
	}
	if m.Element, err = format.ParseElement(s.Element); err != nil {
		return m, s.wrap(err)
	}
	if m.StatusEffects, err = format.ParseStatusSet(s.Statuses); err != nil {
		return m, s.wrap(err)
	}

	je := &m.JunctionElemental
	je.AttackValue = s.Junction.Elemental.AttackValue
	je.DefenseValue = s.Junction.Elemental.DefenseValue
	if je.AttackElement, err = format.ParseElement(s.Junction.Elemental.Attack); err != nil {
		return m, s.wrap(err)
	}
	if je.DefenseSet, err = format.ParseElementSet(s.Junction.Elemental.Defense); err != nil {
		return m, s.wrap(err)
	}

	js := &m.JunctionStatus
	js.AttackValue = s.Junction.Status.AttackValue
	js.DefenseValue = s.Junction.Status.DefenseValue
	if js.AttackSet, err = format.ParseJStatusSet(s.Junction.Status.Attack); err != nil {
		return m, s.wrap(err)
	}
	if js.DefenseSet, err = format.ParseJStatusSet(s.Junction.Status.Defense); err != nil {
		return m, s.wrap(err)
	}

	// Sorted so that error messages are stable.
	gfs := make([]string, 0, len(s.GF))
	for name := range s.GF {
		gfs = append(gfs, name)
	}
	sort.Strings(gfs)
	for _, name := range gfs {
		g, err := format.ParseGF(name)
		if err != nil {
			return m, s.wrap(err)
		}
		m.GFCompatibility = m.GFCompatibility.With(g, s.GF[name])
	}

	for _, t := range s.Translations {
		m.Translations = m.Translations.With(t.Language, format.Translation{Name: t.Name, Description: t.Description})
	}
	return m, nil
}

func (s Spell) wrap(err error) error {
	return fmt.Errorf("spell %d (magic id %d): %w", s.Index, s.MagicID, err)
}

// Marshal renders spells as a YAML document.
func Marshal(source string, spells []format.MagicData) ([]byte, error) {
	doc := Document{Version: Version, Source: source, Spells: make([]Spell, len(spells))}
	for i, m := range spells {
		doc.Spells[i] = FromMagic(m)
	}
	return yaml.Marshal(&doc)
}

// Unmarshal parses a YAML document into spells.
func Unmarshal(data []byte) ([]format.MagicData, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse spell file: %w", err)
	}
	if doc.Version > Version {
		return nil, fmt.Errorf("spell file version %d is newer than supported version %d", doc.Version, Version)
	}
	spells := make([]format.MagicData, 0, len(doc.Spells))
	for _, s := range doc.Spells {
		m, err := s.ToMagic()
		if err != nil {
			return nil, err
		}
		spells = append(spells, m)
	}
	return spells, nil
}

// Load reads a spell file from disk.
func Load(path string) ([]format.MagicData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spell file: %w", err)
	}
	return Unmarshal(data)
}

// Save writes spells to path.
func Save(path, source string, spells []format.MagicData) error {
	data, err := Marshal(source, spells)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write spell file: %w", err)
	}
	return nil
}
