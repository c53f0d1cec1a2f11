package kernel

import (
	"encoding/binary"

	"github.com/provide-io/ff8magic/pkg/magic/format"
)

// sectionOffsets reads the section table at the start of kernel.bin: a
// uint32 count followed by count uint32 offsets. It returns nil when the
// table is absent or implausible.
func sectionOffsets(data []byte) []uint32 {
	if len(data) < 4 {
		return nil
	}
	count := binary.LittleEndian.Uint32(data)
	if count == 0 || count > format.KernelMaxSections || int(4+4*count) > len(data) {
		return nil
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(data[4+4*i:])
	}
	return offsets
}

// extractEnglish builds the English text of a kernel record from the magic
// text section. Records without a usable text section get empty text.
func extractEnglish(data []byte, textSection int, m format.MagicData) format.SpellTranslations {
	if textSection < 0 {
		return format.EnglishOnly("", "")
	}
	return format.EnglishOnly(
		textAt(data, textSection, m.OffsetSpellName),
		textAt(data, textSection, m.OffsetSpellDescription),
	)
}

func textAt(data []byte, section int, pointer uint16) string {
	if pointer == format.TextPointerMissing {
		return ""
	}
	start := section + int(pointer)
	if start >= len(data) {
		return ""
	}
	s, _ := format.ExtractString(data, start, len(data)-start)
	return s
}

// textSectionOffset locates the magic text section, or returns -1.
func textSectionOffset(data []byte) int {
	offsets := sectionOffsets(data)
	if len(offsets) <= format.KernelTextSection {
		return -1
	}
	off := int(offsets[format.KernelTextSection])
	if off < format.KernelMagicEnd || off >= len(data) {
		return -1
	}
	return off
}
