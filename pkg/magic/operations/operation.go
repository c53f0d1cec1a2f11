// Package operations provides reversible byte transforms used for kernel
// backups. Implementations register themselves from their own packages.
package operations

import (
	"fmt"
	"sort"
	"strings"
)

// Operation identifiers
const (
	OP_NONE  = 0x00 // Raw copy
	OP_GZIP  = 0x10 // GZIP compression
	OP_BZIP2 = 0x13 // BZIP2 compression
)

// Operation is a single reversible transformation.
type Operation interface {
	// ID returns the operation identifier (e.g., OP_GZIP)
	ID() uint8

	// Name returns the lower-case name used in configuration
	Name() string

	// Extension is appended to backup file names, e.g. ".gz"
	Extension() string

	// Apply transforms input
	Apply(input []byte) ([]byte, error)

	// Reverse undoes Apply
	Reverse(input []byte) ([]byte, error)
}

// BaseOperation provides the identity fields of an operation.
type BaseOperation struct {
	OpID   uint8
	OpName string
	OpExt  string
}

func (o *BaseOperation) ID() uint8         { return o.OpID }
func (o *BaseOperation) Name() string      { return o.OpName }
func (o *BaseOperation) Extension() string { return o.OpExt }

// rawOperation copies data unchanged.
type rawOperation struct {
	BaseOperation
}

func (o *rawOperation) Apply(input []byte) ([]byte, error) {
	out := make([]byte, len(input))
	copy(out, input)
	return out, nil
}

func (o *rawOperation) Reverse(input []byte) ([]byte, error) { return o.Apply(input) }

// Registry maps operation IDs to implementations
var Registry = map[uint8]Operation{
	OP_NONE: &rawOperation{BaseOperation{OpID: OP_NONE, OpName: "raw"}},
}

// Register registers an operation implementation
func Register(op Operation) {
	Registry[op.ID()] = op
}

// Get retrieves an operation by ID
func Get(id uint8) (Operation, error) {
	op, ok := Registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown operation: 0x%02x", id)
	}
	return op, nil
}

// Lookup retrieves an operation by name, case-insensitively.
func Lookup(name string) (Operation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "raw"
	}
	for _, op := range Registry {
		if op.Name() == name {
			return op, nil
		}
	}
	return nil, fmt.Errorf("unknown operation %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the registered operation names in ID order.
func Names() []string {
	ids := make([]int, 0, len(Registry))
	for id := range Registry {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, Registry[uint8(id)].Name())
	}
	return names
}
