package format

import (
	"bytes"
	"fmt"

	magicerrors "github.com/provide-io/ff8magic/pkg/magic/errors"
	"github.com/provide-io/ff8magic/pkg/magic/textcodec"
)

// ReadResources reads count (name, description) pairs from a resource file
// made of uniform slots. Slots past the end of buf read as empty strings.
func ReadResources(buf []byte, count, nameSlotSize, descSlotSize int) ([]Translation, error) {
	if count < 0 || nameSlotSize <= 0 || descSlotSize <= 0 {
		return nil, fmt.Errorf("invalid resource geometry: count=%d name=%d desc=%d", count, nameSlotSize, descSlotSize)
	}
	entries, _ := ReadResourcesWithLayout(buf, FixedLayout(count, nameSlotSize, descSlotSize))
	return entries, nil
}

// ReadResourcesWithLayout reads one entry per layout slot, in slot order. The
// second result is the number of slots that were cut short by the end of buf.
func ReadResourcesWithLayout(buf []byte, layout TextLayout) ([]Translation, int) {
	truncated := 0
	entries := make([]Translation, 0, layout.Len())
	for _, slot := range layout.slots {
		name, nameCut := ExtractString(buf, slot.NameOffset, slot.NameSize)
		desc, descCut := ExtractString(buf, slot.DescOffset, slot.DescSize)
		if nameCut || descCut {
			truncated++
		}
		entries = append(entries, Translation{Name: name, Description: desc})
	}
	if truncated > 0 {
		codecLogger.Warn("⚠️ Resource data shorter than layout", "truncated_slots", truncated, "size", len(buf))
	}
	return entries, truncated
}

// ExtractString decodes the null-terminated string stored in
// buf[offset:offset+size]. Extraction stops at the first zero byte or the
// slot boundary. The bool reports whether the slot ran past the end of buf.
func ExtractString(buf []byte, offset, size int) (string, bool) {
	if offset >= len(buf) || offset < 0 {
		return "", true
	}
	end := offset + size
	cut := false
	if end > len(buf) {
		end = len(buf)
		cut = true
	}
	raw := buf[offset:end]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
		cut = false
	}
	return string(textcodec.DecodeBytes(raw)), cut
}

// WriteResources is the inverse of ReadResources.
func WriteResources(entries []Translation, nameSlotSize, descSlotSize int) ([]byte, error) {
	layout := FixedLayout(len(entries), nameSlotSize, descSlotSize)
	byIndex := make(map[int]Translation, len(entries))
	for i, e := range entries {
		byIndex[i] = e
	}
	return WriteResourcesWithLayout(layout, byIndex)
}

// WriteResourcesWithLayout builds one language blob: every spell's encoded
// name and description, null-terminated and zero-padded to its slot.
func WriteResourcesWithLayout(layout TextLayout, entries map[int]Translation) ([]byte, error) {
	buf := make([]byte, layout.TotalSize())
	for _, slot := range layout.slots {
		tr, ok := entries[slot.Index]
		if !ok {
			return nil, fmt.Errorf("no text for spell %d", slot.Index)
		}
		if err := putString(buf, slot.NameOffset, slot.NameSize, tr.Name); err != nil {
			return nil, fmt.Errorf("spell %d name: %w", slot.Index, err)
		}
		if err := putString(buf, slot.DescOffset, slot.DescSize, tr.Description); err != nil {
			return nil, fmt.Errorf("spell %d description: %w", slot.Index, err)
		}
	}
	return buf, nil
}

func putString(buf []byte, offset, size int, text string) error {
	if !textcodec.IsEncodable(text) {
		r, pos := textcodec.FirstUnencodable(text)
		return fmt.Errorf("%w: %q at position %d", magicerrors.ErrEncodingIncompatible, r, pos)
	}
	if textcodec.EncodedLength(text)+1 > size {
		return fmt.Errorf("%w: %d bytes plus terminator into %d", magicerrors.ErrTextTooLong, len(text), size)
	}
	copy(buf[offset:], textcodec.EncodeBytes([]byte(text)))
	// buf is zero-filled, so the terminator and padding are already in place.
	return nil
}
