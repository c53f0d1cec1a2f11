package format

import (
	"fmt"
	"sort"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
	"github.com/provide-io/ff8magic/pkg/magic/textcodec"
)

// SpellText is the planner's view of one spell: its working-set index and
// every translation it carries.
type SpellText struct {
	Index        int
	Translations SpellTranslations
}

// SpellSlot is the region one spell occupies in every language blob.
// Offsets are relative to the start of the blob.
type SpellSlot struct {
	Index      int
	NameOffset int
	NameSize   int // longest encoded name over all languages, plus the terminator
	DescOffset int
	DescSize   int
}

// End is the first byte after the slot.
func (s SpellSlot) End() int { return s.DescOffset + s.DescSize }

// NamePointer returns the name offset as a game-compatible text pointer.
func (s SpellSlot) NamePointer() (uint16, error) {
	return adjustedPointer(s.Index, s.NameOffset)
}

// DescPointer returns the description offset as a game-compatible text pointer.
func (s SpellSlot) DescPointer() (uint16, error) {
	return adjustedPointer(s.Index, s.DescOffset)
}

func adjustedPointer(index, offset int) (uint16, error) {
	p := offset + BinaryOffsetAdjustment
	if p > MaxTextPointer {
		return 0, fmt.Errorf("%w: spell %d offset %d", magicerrors.ErrTextPointerOverflow, index, p)
	}
	return uint16(p), nil
}

// TextLayout is the result of PlanLayout. Every language file of an export
// shares the same layout, so one pointer table serves all of them.
type TextLayout struct {
	slots     []SpellSlot
	byIndex   map[int]int
	languages []string
	totalSize int
}

// PlanLayout computes identical per-spell slot sizes for every language.
//
// The analysis pass takes, per spell, the longest encoded name and
// description over all its languages (plus the null terminator) and collects
// the union of languages, always including English. The layout pass then
// places spells in ascending index order: name slot first, description slot
// right after it.
func PlanLayout(spells []SpellText) TextLayout {
	layout := TextLayout{byIndex: make(map[int]int, len(spells))}
	if len(spells) == 0 {
		return layout
	}

	type sizes struct{ name, desc int }
	maxSizes := make(map[int]sizes, len(spells))
	langs := []string{LanguageEnglish}

	for _, sp := range spells {
		sz, ok := maxSizes[sp.Index]
		if !ok {
			sz = sizes{name: 1, desc: 1}
		}
		sp.Translations.Each(func(lang string, tr Translation) {
			if n := textcodec.EncodedLength(tr.Name) + 1; n > sz.name {
				sz.name = n
			}
			if n := textcodec.EncodedLength(tr.Description) + 1; n > sz.desc {
				sz.desc = n
			}
			langs = append(langs, lang)
		})
		maxSizes[sp.Index] = sz
	}

	indices := make([]int, 0, len(maxSizes))
	for idx := range maxSizes {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	running := 0
	for _, idx := range indices {
		sz := maxSizes[idx]
		slot := SpellSlot{
			Index:      idx,
			NameOffset: running,
			NameSize:   sz.name,
			DescOffset: running + sz.name,
			DescSize:   sz.desc,
		}
		layout.byIndex[idx] = len(layout.slots)
		layout.slots = append(layout.slots, slot)
		running += sz.name + sz.desc
	}

	layout.totalSize = running
	layout.languages = Languages.SortLanguages(langs)

	codecLogger.Debug("📐 Planned text layout",
		"spells", len(layout.slots),
		"languages", len(layout.languages),
		"total_size", layout.totalSize,
	)
	return layout
}

// FixedLayout lays out count spells (indices 0..count-1) with uniform slot
// sizes, as used for resource files that arrive without layout information.
func FixedLayout(count, nameSlot, descSlot int) TextLayout {
	layout := TextLayout{byIndex: make(map[int]int, count), languages: []string{LanguageEnglish}}
	for i := 0; i < count; i++ {
		off := i * (nameSlot + descSlot)
		layout.byIndex[i] = i
		layout.slots = append(layout.slots, SpellSlot{
			Index:      i,
			NameOffset: off,
			NameSize:   nameSlot,
			DescOffset: off + nameSlot,
			DescSize:   descSlot,
		})
	}
	layout.totalSize = count * (nameSlot + descSlot)
	return layout
}

// LayoutFromPointers rebuilds a layout from the adjusted text pointers of
// records, in record order. Slot sizes run up to the next pointer, the last
// one up to blobSize. It reports false when the pointers cannot describe a
// layout of blobSize bytes.
func LayoutFromPointers(records []MagicData, blobSize int) (TextLayout, bool) {
	layout := TextLayout{byIndex: make(map[int]int, len(records)), languages: []string{LanguageEnglish}}
	if len(records) == 0 {
		return layout, true
	}

	starts := make([]int, 0, 2*len(records))
	for _, m := range records {
		name := int(m.OffsetSpellName) - BinaryOffsetAdjustment
		desc := int(m.OffsetSpellDescription) - BinaryOffsetAdjustment
		starts = append(starts, name, desc)
	}
	for i, s := range starts {
		if s < 0 || s >= blobSize {
			return TextLayout{}, false
		}
		if i > 0 && s <= starts[i-1] {
			return TextLayout{}, false
		}
	}
	if starts[0] != 0 {
		return TextLayout{}, false
	}

	for i, m := range records {
		nameOff, descOff := starts[2*i], starts[2*i+1]
		end := blobSize
		if 2*i+2 < len(starts) {
			end = starts[2*i+2]
		}
		layout.byIndex[m.Index] = i
		layout.slots = append(layout.slots, SpellSlot{
			Index:      m.Index,
			NameOffset: nameOff,
			NameSize:   descOff - nameOff,
			DescOffset: descOff,
			DescSize:   end - descOff,
		})
	}
	layout.totalSize = blobSize
	return layout, true
}

// Slot returns the slot for a spell index.
func (l TextLayout) Slot(index int) (SpellSlot, bool) {
	i, ok := l.byIndex[index]
	if !ok {
		return SpellSlot{}, false
	}
	return l.slots[i], true
}

// Slots returns all slots in ascending index order.
func (l TextLayout) Slots() []SpellSlot {
	out := make([]SpellSlot, len(l.slots))
	copy(out, l.slots)
	return out
}

// Languages returns every language the export needs a file for, English first.
func (l TextLayout) Languages() []string {
	out := make([]string, len(l.languages))
	copy(out, l.languages)
	return out
}

// TotalSize is the size in bytes of each language blob.
func (l TextLayout) TotalSize() int { return l.totalSize }

// Len is the number of spells laid out.
func (l TextLayout) Len() int { return len(l.slots) }
