package kernel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/provide-io/ff8magic/pkg/magic/format"
)

// Repository owns the canonical spell state the loader fills and saves from.
type Repository interface {
	// Replace discards the current contents and stores spells.
	Replace(spells []format.MagicData)

	// All returns a copy of every spell in ascending Index order.
	All() []format.MagicData

	// Len is the number of spells held.
	Len() int
}

// MemoryRepository is an in-memory Repository safe for concurrent use.
type MemoryRepository struct {
	mu     sync.RWMutex
	spells []format.MagicData
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Replace(spells []format.MagicData) {
	cp := make([]format.MagicData, len(spells))
	copy(cp, spells)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Index < cp[j].Index })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.spells = cp
}

func (r *MemoryRepository) All() []format.MagicData {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make([]format.MagicData, len(r.spells))
	copy(cp, r.spells)
	return cp
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.spells)
}

// Get returns the spell at index.
func (r *MemoryRepository) Get(index int) (format.MagicData, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.spells {
		if m.Index == index {
			return m, true
		}
	}
	return format.MagicData{}, false
}

// Update replaces the spell with the same Index.
func (r *MemoryRepository) Update(m format.MagicData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.spells {
		if r.spells[i].Index == m.Index {
			r.spells[i] = m
			return nil
		}
	}
	return fmt.Errorf("no spell at index %d", m.Index)
}
