package operations

import (
	"fmt"
	"strings"
)

// ParseChain parses a pipe-separated list of operation names ("gzip",
// "raw|bzip2") into operation IDs. "raw" and "" are the empty chain.
func ParseChain(chain string) ([]uint8, error) {
	var ids []uint8
	for _, part := range strings.Split(chain, "|") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "raw") {
			continue
		}
		op, err := Lookup(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, op.ID())
	}
	return ids, nil
}

// ChainExtension concatenates the file extensions of a chain.
func ChainExtension(ids []uint8) string {
	var sb strings.Builder
	for _, id := range ids {
		if op, err := Get(id); err == nil {
			sb.WriteString(op.Extension())
		}
	}
	return sb.String()
}

// ApplyChain applies a chain of operations to data
func ApplyChain(data []byte, ids []uint8) ([]byte, error) {
	current := data

	for _, opID := range ids {
		op, err := Get(opID)
		if err != nil {
			return nil, fmt.Errorf("operation 0x%02x: %w", opID, err)
		}

		result, err := op.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("applying %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}

// ReverseChain reverses a chain of operations on data
func ReverseChain(data []byte, ids []uint8) ([]byte, error) {
	current := data

	// Apply operations in reverse order
	for i := len(ids) - 1; i >= 0; i-- {
		op, err := Get(ids[i])
		if err != nil {
			return nil, fmt.Errorf("operation 0x%02x: %w", ids[i], err)
		}

		result, err := op.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("reversing %s: %w", op.Name(), err)
		}

		current = result
	}

	return current, nil
}
