package format

// Junction stat slots, in record order.
const (
	StatHP = iota
	StatSTR
	StatVIT
	StatMAG
	StatSPR
	StatSPD
	StatEVA
	StatHIT
	StatLUCK
	StatCount
)

var statNames = nameTable{"HP", "STR", "VIT", "MAG", "SPR", "SPD", "EVA", "HIT", "LUCK"}

// StatName returns the label of a junction stat slot.
func StatName(stat int) string { return statNames.name(stat, "Stat") }

// StatJunction holds the stat bonuses granted when the spell is junctioned.
type StatJunction [StatCount]uint8

// ElementalJunction is the elemental attack/defense junction block.
type ElementalJunction struct {
	AttackElement Element
	AttackValue   uint8
	DefenseSet    ElementSet
	DefenseValue  uint8
}

// StatusJunction is the status attack/defense junction block.
type StatusJunction struct {
	AttackSet    JStatusSet
	AttackValue  uint8
	DefenseSet   JStatusSet
	DefenseValue uint8
}

// MagicData is the complete state of one spell.
type MagicData struct {
	// Index is the position in the working set. It is not stored in the record.
	Index int

	// Text pointers, kept for kernel round-trips and recomputed on export.
	OffsetSpellName        uint16
	OffsetSpellDescription uint16

	MagicID             uint16
	AnimationTrigger    uint8
	AttackType          AttackType
	SpellPower          uint8
	Unknown1            uint8
	TargetFlags         TargetFlags
	AttackFlags         AttackFlags
	DrawResist          uint8
	HitCount            uint8
	Element             Element
	Unknown2            uint8
	StatusEffects       StatusSet
	StatusAttackEnabler uint8

	JunctionStats     StatJunction
	JunctionElemental ElementalJunction
	JunctionStatus    StatusJunction
	GFCompatibility   GFCompatibility

	Unknown3 uint16

	Translations   SpellTranslations
	IsNewlyCreated bool
}

// WithIndex returns a copy assigned to working-set position i.
func (m MagicData) WithIndex(i int) MagicData {
	m.Index = i
	return m
}

// WithTranslations returns a copy carrying t.
func (m MagicData) WithTranslations(t SpellTranslations) MagicData {
	m.Translations = t
	return m
}

// WithTextPointers returns a copy with both text pointers replaced.
func (m MagicData) WithTextPointers(name, description uint16) MagicData {
	m.OffsetSpellName = name
	m.OffsetSpellDescription = description
	return m
}

// EnglishName is a convenience for logging and reports.
func (m MagicData) EnglishName() string {
	if tr, ok := m.Translations.English(); ok {
		return tr.Name
	}
	return ""
}
