// Package textcodec implements the per-character substitution cipher used for
// all spell text stored in kernel.bin and its companion resource files.
package textcodec

// Shift amounts applied by Encode. Decode applies the negated shift.
const (
	UpperShift = 4   // A-Z
	DigitShift = -15 // 0-9
	LowerShift = -2  // a-z
)

// Printable ASCII bounds accepted by IsEncodable.
const (
	MinPrintable = 32
	MaxPrintable = 126
)

var (
	encodeTable [256]byte
	decodeTable [256]byte
)

func init() {
	for i := range encodeTable {
		encodeTable[i] = byte(i)
	}

	// Each shifted class pushes a few printable punctuation bytes out of
	// their slots. Those bytes take the slots the class vacated, so the table
	// stays a permutation and Decode(Encode(s)) == s for every byte.
	rotate('A', 'Z', UpperShift)
	rotate('0', '9', DigitShift)
	rotate('a', 'z', LowerShift)

	for i := range encodeTable {
		decodeTable[encodeTable[i]] = byte(i)
	}
}

// rotate maps [lo,hi] onto [lo+shift,hi+shift] and sends the displaced bytes
// into the vacated slots, in ascending order.
func rotate(lo, hi byte, shift int) {
	for c := int(lo); c <= int(hi); c++ {
		encodeTable[c] = byte(c + shift)
	}

	var displaced, vacated []int
	for c := int(lo) + shift; c <= int(hi)+shift; c++ {
		if c < int(lo) || c > int(hi) {
			displaced = append(displaced, c)
		}
	}
	for c := int(lo); c <= int(hi); c++ {
		if c-shift < int(lo) || c-shift > int(hi) {
			vacated = append(vacated, c)
		}
	}
	for i, c := range displaced {
		encodeTable[c] = byte(vacated[i])
	}
}

// EncodeBytes returns the cipher form of data. The input is not modified.
func EncodeBytes(data []byte) []byte {
	result := make([]byte, len(data))
	for i, b := range data {
		result[i] = encodeTable[b]
	}
	return result
}

// DecodeBytes is the inverse of EncodeBytes.
func DecodeBytes(data []byte) []byte {
	result := make([]byte, len(data))
	for i, b := range data {
		result[i] = decodeTable[b]
	}
	return result
}

// Encode applies the cipher to text.
func Encode(text string) string {
	return string(EncodeBytes([]byte(text)))
}

// Decode reverses Encode.
func Decode(text string) string {
	return string(DecodeBytes([]byte(text)))
}

// IsEncodable reports whether every character of text is printable ASCII.
func IsEncodable(text string) bool {
	for _, r := range text {
		if r < MinPrintable || r > MaxPrintable {
			return false
		}
	}
	return true
}

// FirstUnencodable returns the first character that fails IsEncodable and
// its byte position, or -1 when text is encodable.
func FirstUnencodable(text string) (rune, int) {
	for i, r := range text {
		if r < MinPrintable || r > MaxPrintable {
			return r, i
		}
	}
	return 0, -1
}

// EncodedLength is the number of bytes Encode produces for text.
func EncodedLength(text string) int {
	return len(text)
}
