package kernel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/ff8magic/pkg/magic/format"
)

func TestMemoryRepositoryOrdersByIndex(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Replace([]format.MagicData{
		{Index: 2, MagicID: 20},
		{Index: 0, MagicID: 0},
		{Index: 1, MagicID: 10},
	})

	all := repo.All()
	require.Len(t, all, 3)
	for i, m := range all {
		assert.Equal(t, i, m.Index)
	}

	all[0].MagicID = 99
	m, ok := repo.Get(0)
	require.True(t, ok)
	assert.Equal(t, uint16(0), m.MagicID, "All must return a copy")

	assert.Error(t, repo.Update(format.MagicData{Index: 7}))
}

func TestMemoryRepositoryConcurrentAccess(t *testing.T) {
	repo := NewMemoryRepository()
	spells := make([]format.MagicData, format.KernelMagicCount)
	for i := range spells {
		spells[i] = format.MagicData{Index: i, MagicID: uint16(i)}
	}
	repo.Replace(spells)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m, ok := repo.Get(i % format.KernelMagicCount)
				if ok {
					m.SpellPower = uint8(w)
					_ = repo.Update(m)
				}
				_ = repo.All()
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, format.KernelMagicCount, repo.Len())
}
