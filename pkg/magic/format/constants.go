package format

// Core format constants. These are fixed by the game's data layout.

const (
	// RecordSize is the size of one magic struct.
	RecordSize = 0x3C // 60

	// Kernel layout
	KernelMagicOffset  = 0x021C // Start of the magic section in kernel.bin
	KernelMagicCount   = 56     // Number of magic records in kernel.bin
	KernelMagicEnd     = KernelMagicOffset + KernelMagicCount*RecordSize
	KernelTextSection  = 32 // Section holding magic names and descriptions
	KernelMaxSections  = 64 // Upper bound accepted for the section table
	MaxMagicID         = 345
	MaxPracticalHits   = 16
	MaxTextPointer     = 0xFFFF
	TextPointerMissing = 0xFFFF

	// BinaryOffsetAdjustment is added to layout offsets to express them as
	// text pointers compatible with the game's addressing (511 + 1584, the
	// last name and description offsets of the English kernel).
	BinaryOffsetAdjustment = 511 + 1584
)

// Record field offsets.
const (
	offNamePointer       = 0x00
	offDescPointer       = 0x02
	offMagicID           = 0x04
	offAnimationTrigger  = 0x06
	offAttackType        = 0x07
	offSpellPower        = 0x08
	offUnknown1          = 0x09
	offTargetFlags       = 0x0A
	offAttackFlags       = 0x0B
	offDrawResist        = 0x0C
	offHitCount          = 0x0D
	offElement           = 0x0E
	offUnknown2          = 0x0F
	offStatusBattle      = 0x10
	offStatusPersistent  = 0x14
	offStatusEnabler     = 0x16
	offJunctionStats     = 0x17
	offJElemAttack       = 0x20
	offJElemAttackValue  = 0x21
	offJElemDefense      = 0x22
	offJElemDefenseValue = 0x23
	offJStatAttackValue  = 0x24
	offJStatDefenseValue = 0x25
	offJStatAttackMask   = 0x26
	offJStatDefenseMask  = 0x28
	offGFCompatibility   = 0x2A
	offUnknown3          = 0x3A
)

// Import defaults for resource files that come without a layout.
const (
	DefaultNameSlotSize = 32
	DefaultDescSlotSize = 128
)

// Resource file naming.
const (
	ResourceSuffix  = ".resources.bin"
	BinaryExtension = ".bin"
)
