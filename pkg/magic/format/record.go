package format

import (
	"encoding/binary"
	"fmt"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
)

// ParseRecord decodes the magic struct starting at buf[offset]. The result has
// no translations and Index 0; callers assign both.
func ParseRecord(buf []byte, offset int) (MagicData, error) {
	if offset < 0 || len(buf)-offset < RecordSize {
		codecLogger.Error("❌ Record out of bounds",
			"offset", offset,
			"buffer", len(buf),
		)
		return MagicData{}, fmt.Errorf("%w: need %d bytes at offset 0x%04x, have %d",
			magicerrors.ErrInsufficientFileSize, RecordSize, offset, len(buf)-offset)
	}
	return MustParseRecord(buf, offset), nil
}

// MustParseRecord is ParseRecord for callers that already checked bounds.
// It panics if fewer than RecordSize bytes are available.
func MustParseRecord(buf []byte, offset int) MagicData {
	data := buf[offset : offset+RecordSize : offset+RecordSize]

	codecLogger.Trace("📂 Unpacking magic record", "offset", fmt.Sprintf("0x%04x", offset))

	m := MagicData{
		OffsetSpellName:        binary.LittleEndian.Uint16(data[offNamePointer:]),
		OffsetSpellDescription: binary.LittleEndian.Uint16(data[offDescPointer:]),
		MagicID:                binary.LittleEndian.Uint16(data[offMagicID:]),
		AnimationTrigger:       data[offAnimationTrigger],
		AttackType:             AttackType(data[offAttackType]),
		SpellPower:             data[offSpellPower],
		Unknown1:               data[offUnknown1],
		TargetFlags:            TargetFlags(data[offTargetFlags]),
		AttackFlags:            AttackFlags(data[offAttackFlags]),
		DrawResist:             data[offDrawResist],
		HitCount:               data[offHitCount],
		Element:                Element(data[offElement]),
		Unknown2:               data[offUnknown2],
		StatusEffects: StatusSetFromWords(
			binary.LittleEndian.Uint32(data[offStatusBattle:]),
			binary.LittleEndian.Uint16(data[offStatusPersistent:]),
		),
		StatusAttackEnabler: data[offStatusEnabler],
		JunctionElemental: ElementalJunction{
			AttackElement: Element(data[offJElemAttack]),
			AttackValue:   data[offJElemAttackValue],
			DefenseSet:    ElementSet(data[offJElemDefense]),
			DefenseValue:  data[offJElemDefenseValue],
		},
		JunctionStatus: StatusJunction{
			AttackValue:  data[offJStatAttackValue],
			DefenseValue: data[offJStatDefenseValue],
			AttackSet:    JStatusSet(binary.LittleEndian.Uint16(data[offJStatAttackMask:])),
			DefenseSet:   JStatusSet(binary.LittleEndian.Uint16(data[offJStatDefenseMask:])),
		},
		Unknown3: binary.LittleEndian.Uint16(data[offUnknown3:]),
	}
	copy(m.JunctionStats[:], data[offJunctionStats:offJunctionStats+StatCount])
	copy(m.GFCompatibility[:], data[offGFCompatibility:offGFCompatibility+GFCount])

	codecLogger.Debug("✅ Unpacked magic record",
		"magic_id", m.MagicID,
		"attack_type", m.AttackType.String(),
		"power", m.SpellPower,
	)

	return m
}

// SerializeRecord encodes m into exactly RecordSize bytes.
func SerializeRecord(m MagicData) ([]byte, error) {
	buf := make([]byte, RecordSize)
	PutRecord(buf, m)
	return buf, CheckRecordSize(buf)
}

// PutRecord encodes m into dst, which must hold at least RecordSize bytes.
func PutRecord(dst []byte, m MagicData) {
	codecLogger.Trace("📦 Packing magic record", "magic_id", m.MagicID)

	data := dst[:RecordSize:RecordSize]

	binary.LittleEndian.PutUint16(data[offNamePointer:], m.OffsetSpellName)
	binary.LittleEndian.PutUint16(data[offDescPointer:], m.OffsetSpellDescription)
	binary.LittleEndian.PutUint16(data[offMagicID:], m.MagicID)
	data[offAnimationTrigger] = m.AnimationTrigger
	data[offAttackType] = uint8(m.AttackType)
	data[offSpellPower] = m.SpellPower
	data[offUnknown1] = m.Unknown1
	data[offTargetFlags] = uint8(m.TargetFlags)
	data[offAttackFlags] = uint8(m.AttackFlags)
	data[offDrawResist] = m.DrawResist
	data[offHitCount] = m.HitCount
	data[offElement] = uint8(m.Element)
	data[offUnknown2] = m.Unknown2

	binary.LittleEndian.PutUint32(data[offStatusBattle:], m.StatusEffects.BattleWord())
	binary.LittleEndian.PutUint16(data[offStatusPersistent:], m.StatusEffects.PersistentWord())
	data[offStatusEnabler] = m.StatusAttackEnabler

	copy(data[offJunctionStats:], m.JunctionStats[:])

	data[offJElemAttack] = uint8(m.JunctionElemental.AttackElement)
	data[offJElemAttackValue] = m.JunctionElemental.AttackValue
	data[offJElemDefense] = uint8(m.JunctionElemental.DefenseSet)
	data[offJElemDefenseValue] = m.JunctionElemental.DefenseValue

	data[offJStatAttackValue] = m.JunctionStatus.AttackValue
	data[offJStatDefenseValue] = m.JunctionStatus.DefenseValue
	binary.LittleEndian.PutUint16(data[offJStatAttackMask:], uint16(m.JunctionStatus.AttackSet))
	binary.LittleEndian.PutUint16(data[offJStatDefenseMask:], uint16(m.JunctionStatus.DefenseSet))

	copy(data[offGFCompatibility:], m.GFCompatibility[:])
	binary.LittleEndian.PutUint16(data[offUnknown3:], m.Unknown3)
}

// ParseRecords decodes consecutive records from a magic-binary file. The
// length must be a non-zero multiple of RecordSize.
func ParseRecords(buf []byte) ([]MagicData, error) {
	if len(buf) == 0 || len(buf)%RecordSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", magicerrors.ErrInvalidImportSize, len(buf))
	}
	count := len(buf) / RecordSize
	records := make([]MagicData, count)
	for i := range records {
		records[i] = MustParseRecord(buf, i*RecordSize).WithIndex(i)
	}
	return records, nil
}

// SerializeRecords concatenates the serialized form of each record.
func SerializeRecords(records []MagicData) []byte {
	buf := make([]byte, len(records)*RecordSize)
	for i, m := range records {
		PutRecord(buf[i*RecordSize:], m)
	}
	return buf
}

// CheckRecordSize guards writers against a record of the wrong length.
func CheckRecordSize(record []byte) error {
	if len(record) != RecordSize {
		return fmt.Errorf("%w: got %d bytes, want %d", magicerrors.ErrStructSizeMismatch, len(record), RecordSize)
	}
	return nil
}
