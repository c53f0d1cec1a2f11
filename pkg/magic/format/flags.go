package format

import (
	"fmt"
	"strings"
)

// AttackType selects the damage formula. Unknown values are kept verbatim.
type AttackType uint8

const (
	AttackNone AttackType = iota
	AttackPhysical
	AttackMagic
	AttackCurativeMagic
	AttackCurativeItem
	AttackRevive
	AttackReviveAtFullHP
	AttackPhysicalDamage
	AttackMagicDamage
	AttackRenzokukenFinisher
	AttackSquallGunblade
	AttackGF
	AttackScan
	AttackLVDown
	AttackSummonItem
	AttackGFIgnoreTargetSPR
	AttackLVUp
	AttackCard
	AttackKamikaze
	AttackDevour
	AttackGFDamage
	AttackUnknown21
	AttackMagicIgnoreTargetSPR
	AttackAngeloSearch
	AttackMoogleDance
	AttackWhiteWind
	AttackLVAttack
	AttackFixedDamage
	AttackTargetCurrentHPMinus1
	AttackFixedMagicDamageByGFLevel
	AttackUnknown30
	AttackUnknown31
	AttackGivePercentageHP
	AttackUnknown33
	AttackEveryonesGrudge
	Attack1HPDamage
	AttackPhysicalIgnoreTargetVIT
)

var attackTypeNames = nameTable{
	"None", "Physical", "Magic", "CurativeMagic", "CurativeItem", "Revive",
	"ReviveAtFullHP", "PhysicalDamage", "MagicDamage", "RenzokukenFinisher",
	"SquallGunblade", "GF", "Scan", "LVDown", "SummonItem", "GFIgnoreTargetSPR",
	"LVUp", "Card", "Kamikaze", "Devour", "GFDamage", "Unknown21",
	"MagicIgnoreTargetSPR", "AngeloSearch", "MoogleDance", "WhiteWind",
	"LVAttack", "FixedDamage", "TargetCurrentHPMinus1",
	"FixedMagicDamageByGFLevel", "Unknown30", "Unknown31", "GivePercentageHP",
	"Unknown33", "EveryonesGrudge", "1HPDamage", "PhysicalIgnoreTargetVIT",
}

func (a AttackType) String() string {
	return attackTypeNames.name(int(a), "AttackType")
}

// ParseAttackType accepts a name or a numeric value.
func ParseAttackType(s string) (AttackType, error) {
	if i, ok := attackTypeNames.lookup(s); ok {
		return AttackType(i), nil
	}
	v, err := parseNumber(s, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown attack type %q", s)
	}
	return AttackType(v), nil
}

// Element is a single element value. The game stores elements as bit values,
// so Element doubles as the bit of an ElementSet.
type Element uint8

const (
	ElementNone    Element = 0x00
	ElementFire    Element = 0x01
	ElementIce     Element = 0x02
	ElementThunder Element = 0x04
	ElementEarth   Element = 0x08
	ElementPoison  Element = 0x10
	ElementWind    Element = 0x20
	ElementWater   Element = 0x40
	ElementHoly    Element = 0x80
)

var elementNames = nameTable{"Fire", "Ice", "Thunder", "Earth", "Poison", "Wind", "Water", "Holy"}

func (e Element) String() string {
	if e == ElementNone {
		return "None"
	}
	for i := range elementNames {
		if e == 1<<uint(i) {
			return elementNames[i]
		}
	}
	return fmt.Sprintf("0x%02x", uint8(e))
}

// ParseElement accepts an element name, "None" or a numeric value.
func ParseElement(s string) (Element, error) {
	if strings.EqualFold(s, "none") || s == "" {
		return ElementNone, nil
	}
	if i, ok := elementNames.lookup(s); ok {
		return Element(1 << uint(i)), nil
	}
	v, err := parseNumber(s, 8)
	if err != nil {
		return 0, fmt.Errorf("unknown element %q", s)
	}
	return Element(v), nil
}

// ElementSet is a bitmask of elements.
type ElementSet uint8

func (s ElementSet) Has(e Element) bool           { return e != ElementNone && uint8(s)&uint8(e) == uint8(e) }
func (s ElementSet) With(e Element) ElementSet    { return s | ElementSet(e) }
func (s ElementSet) Without(e Element) ElementSet { return s &^ ElementSet(e) }

// Names lists the member elements, Fire first.
func (s ElementSet) Names() []string {
	return bitNames(uint64(s), 8, elementNames, "Element")
}

// ParseElementSet is the inverse of ElementSet.Names.
func ParseElementSet(names []string) (ElementSet, error) {
	mask, err := parseBitNames(names, 8, elementNames, "Element")
	return ElementSet(mask), err
}

// TargetFlags controls who a spell can target.
type TargetFlags uint8

const (
	TargetDead       TargetFlags = 0x01
	TargetUnknown1   TargetFlags = 0x02
	TargetUnknown2   TargetFlags = 0x04
	TargetSingleSide TargetFlags = 0x08
	TargetSingle     TargetFlags = 0x10
	TargetUnknown5   TargetFlags = 0x20
	TargetEnemy      TargetFlags = 0x40
	TargetUnknown7   TargetFlags = 0x80
)

var targetFlagNames = nameTable{"Dead", "Unknown1", "Unknown2", "SingleSide", "Single", "Unknown5", "Enemy", "Unknown7"}

func (f TargetFlags) Has(flag TargetFlags) bool { return f&flag == flag }

// Set returns a copy with flag switched on or off.
func (f TargetFlags) Set(flag TargetFlags, on bool) TargetFlags {
	if on {
		return f | flag
	}
	return f &^ flag
}

func (f TargetFlags) Names() []string { return bitNames(uint64(f), 8, targetFlagNames, "TargetFlag") }

func ParseTargetFlags(names []string) (TargetFlags, error) {
	mask, err := parseBitNames(names, 8, targetFlagNames, "TargetFlag")
	return TargetFlags(mask), err
}

// AttackFlags modifies how the attack resolves.
type AttackFlags uint8

const (
	AttackFlagShelled          AttackFlags = 0x01
	AttackFlagUnknown1         AttackFlags = 0x02
	AttackFlagUnknown2         AttackFlags = 0x04
	AttackFlagBreakDamageLimit AttackFlags = 0x08
	AttackFlagReflected        AttackFlags = 0x10
	AttackFlagUnknown5         AttackFlags = 0x20
	AttackFlagUnknown6         AttackFlags = 0x40
	AttackFlagRevive           AttackFlags = 0x80
)

var attackFlagNames = nameTable{"Shelled", "Unknown1", "Unknown2", "BreakDamageLimit", "Reflected", "Unknown5", "Unknown6", "Revive"}

func (f AttackFlags) Has(flag AttackFlags) bool { return f&flag == flag }

// Set returns a copy with flag switched on or off.
func (f AttackFlags) Set(flag AttackFlags, on bool) AttackFlags {
	if on {
		return f | flag
	}
	return f &^ flag
}

func (f AttackFlags) Names() []string { return bitNames(uint64(f), 8, attackFlagNames, "AttackFlag") }

func ParseAttackFlags(names []string) (AttackFlags, error) {
	mask, err := parseBitNames(names, 8, attackFlagNames, "AttackFlag")
	return AttackFlags(mask), err
}

// Status is a bit position in the 48-bit status space. Bits 0-31 are the
// battle statuses stored in the 32-bit word, bits 32-47 the persistent
// statuses stored in the 16-bit word.
type Status uint8

const (
	StatusSleep Status = iota
	StatusHaste
	StatusSlow
	StatusStop
	StatusRegen
	StatusProtect
	StatusShell
	StatusReflect
	StatusAura
	StatusCurse
	StatusDoom
	StatusInvincible
	StatusPetrifying
	StatusFloat
	StatusConfusion
	StatusDrain
	StatusEject
	StatusDouble
	StatusTriple
	StatusDefend
	StatusUnknown20
	StatusUnknown21
	StatusCharged
	StatusBackAttack
	StatusVit0
	StatusAngelWing
	StatusUnknown26
	StatusUnknown27
	StatusUnknown28
	StatusUnknown29
	StatusHasMagic
	StatusSummonGF
	StatusDeath
	StatusPoison
	StatusPetrify
	StatusDarkness
	StatusSilence
	StatusBerserk
	StatusZombie
	StatusUnknown39
	StatusUnknown40
	StatusUnknown41
	StatusUnknown42
	StatusUnknown43
	StatusUnknown44
	StatusUnknown45
	StatusUnknown46
	StatusUnknown47
)

// StatusCount is the width of the status space.
const StatusCount = 48

var statusNames = nameTable{
	"Sleep", "Haste", "Slow", "Stop", "Regen", "Protect", "Shell", "Reflect",
	"Aura", "Curse", "Doom", "Invincible", "Petrifying", "Float", "Confusion", "Drain",
	"Eject", "Double", "Triple", "Defend", "Unknown20", "Unknown21", "Charged", "BackAttack",
	"Vit0", "AngelWing", "Unknown26", "Unknown27", "Unknown28", "Unknown29", "HasMagic", "SummonGF",
	"Death", "Poison", "Petrify", "Darkness", "Silence", "Berserk", "Zombie", "Unknown39",
	"Unknown40", "Unknown41", "Unknown42", "Unknown43", "Unknown44", "Unknown45", "Unknown46", "Unknown47",
}

func (s Status) String() string { return statusNames.name(int(s), "Status") }

// StatusSet is the 48-bit status bit vector.
type StatusSet uint64

const statusMask = StatusSet(1)<<StatusCount - 1

// StatusSetFromWords rebuilds a set from its stored words.
func StatusSetFromWords(battle uint32, persistent uint16) StatusSet {
	return StatusSet(battle) | StatusSet(persistent)<<32
}

// BattleWord returns bits 0-31.
func (s StatusSet) BattleWord() uint32 { return uint32(s) }

// PersistentWord returns bits 32-47.
func (s StatusSet) PersistentWord() uint16 { return uint16(s >> 32) }

func (s StatusSet) Has(st Status) bool { return st < StatusCount && s&(1<<st) != 0 }

// Set returns a copy with st switched on or off. Out-of-range statuses are ignored.
func (s StatusSet) Set(st Status, on bool) StatusSet {
	if st >= StatusCount {
		return s
	}
	if on {
		return (s | 1<<st) & statusMask
	}
	return s &^ (1 << st)
}

func (s StatusSet) Names() []string { return bitNames(uint64(s), StatusCount, statusNames, "Status") }

func ParseStatusSet(names []string) (StatusSet, error) {
	mask, err := parseBitNames(names, StatusCount, statusNames, "Status")
	return StatusSet(mask), err
}

// JStatus is a bit position in the 16-bit junction status mask.
type JStatus uint8

const (
	JStatusDeath JStatus = iota
	JStatusPoison
	JStatusPetrify
	JStatusDarkness
	JStatusSilence
	JStatusBerserk
	JStatusZombie
	JStatusSleep
	JStatusSlow
	JStatusStop
	JStatusCurse
	JStatusConfusion
	JStatusDrain
	JStatusUnknown13
	JStatusUnknown14
	JStatusUnknown15
)

var jstatusNames = nameTable{
	"Death", "Poison", "Petrify", "Darkness", "Silence", "Berserk", "Zombie", "Sleep",
	"Slow", "Stop", "Curse", "Confusion", "Drain", "Unknown13", "Unknown14", "Unknown15",
}

// jstatusToStatus places each junction status in the full status space.
var jstatusToStatus = [16]Status{
	StatusDeath, StatusPoison, StatusPetrify, StatusDarkness, StatusSilence, StatusBerserk,
	StatusZombie, StatusSleep, StatusSlow, StatusStop, StatusCurse, StatusConfusion,
	StatusDrain, StatusUnknown45, StatusUnknown46, StatusUnknown47,
}

func (j JStatus) String() string { return jstatusNames.name(int(j), "JStatus") }

// Status maps the junction status onto the 48-bit status space.
func (j JStatus) Status() Status { return jstatusToStatus[j&0x0F] }

// JStatusSet is a 16-bit junction status mask.
type JStatusSet uint16

func (s JStatusSet) Has(j JStatus) bool           { return j < 16 && s&(1<<j) != 0 }
func (s JStatusSet) With(j JStatus) JStatusSet    { return s | 1<<(j&0x0F) }
func (s JStatusSet) Without(j JStatus) JStatusSet { return s &^ (1 << (j & 0x0F)) }

// Statuses expands the mask into the full status space.
func (s JStatusSet) Statuses() StatusSet {
	var out StatusSet
	for j := JStatus(0); j < 16; j++ {
		if s.Has(j) {
			out = out.Set(j.Status(), true)
		}
	}
	return out
}

func (s JStatusSet) Names() []string { return bitNames(uint64(s), 16, jstatusNames, "JStatus") }

func ParseJStatusSet(names []string) (JStatusSet, error) {
	mask, err := parseBitNames(names, 16, jstatusNames, "JStatus")
	return JStatusSet(mask), err
}
