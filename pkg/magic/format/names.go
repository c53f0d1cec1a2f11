package format

import (
	"fmt"
	"strconv"
	"strings"
)

// nameTable maps small integer values (enum values or bit positions) to
// display names. Lookups by name are case-insensitive.
type nameTable []string

func (t nameTable) name(v int, kind string) string {
	if v >= 0 && v < len(t) && t[v] != "" {
		return t[v]
	}
	return fmt.Sprintf("%s(%d)", kind, v)
}

func (t nameTable) lookup(name string) (int, bool) {
	for i, n := range t {
		if strings.EqualFold(n, name) {
			return i, true
		}
	}
	return 0, false
}

// parseNumber accepts decimal or 0x-prefixed hex, plus the "Kind(N)" form
// produced by nameTable.name.
func parseNumber(s string, bits int) (uint64, error) {
	if open := strings.IndexByte(s, '('); open > 0 && strings.HasSuffix(s, ")") {
		s = s[open+1 : len(s)-1]
	}
	return strconv.ParseUint(s, 0, bits)
}

// bitNames lists the names of the bits set in mask, lowest bit first.
func bitNames(mask uint64, width int, table nameTable, kind string) []string {
	var names []string
	for i := 0; i < width; i++ {
		if mask&(1<<uint(i)) != 0 {
			names = append(names, table.name(i, kind))
		}
	}
	return names
}

// parseBitNames is the inverse of bitNames.
func parseBitNames(names []string, width int, table nameTable, kind string) (uint64, error) {
	var mask uint64
	for _, n := range names {
		i, ok := table.lookup(n)
		if !ok {
			v, err := parseNumber(n, 8)
			if err != nil || int(v) >= width {
				return 0, fmt.Errorf("unknown %s %q", strings.ToLower(kind), n)
			}
			i = int(v)
		}
		mask |= 1 << uint(i)
	}
	return mask, nil
}
