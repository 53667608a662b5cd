package alloc

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeap(t *testing.T) {
	heap := NewHeap("heap")

	require.NoError(t, heap.Allocate(16))
	require.NoError(t, heap.Allocate(8))
	heap.Release(8)

	assert.Equal(t, Stats{Allocations: 2, BytesInUse: 16}, heap.Stats())
	assert.Equal(t, "heap", heap.Name())
}

func TestBudget(t *testing.T) {
	budget := NewBudget("scratch", 32)

	require.NoError(t, budget.Allocate(16))
	require.NoError(t, budget.Allocate(16))

	err := budget.Allocate(4)
	assert.True(t, errors.Is(err, ErrOutOfMemory))
	assert.Equal(t, Stats{Allocations: 2, BytesInUse: 32}, budget.Stats())

	budget.Release(16)
	assert.NoError(t, budget.Allocate(4))
	assert.Equal(t, int64(20), budget.Stats().BytesInUse)
}

func TestBudget_Concurrent(t *testing.T) {
	budget := NewBudget("scratch", 100*4)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if budget.Allocate(4) == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, succeeded)
	assert.Equal(t, int64(400), budget.Stats().BytesInUse)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	allocator, err := registry.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultName, allocator.Name())

	_, err = registry.Resolve(5)
	assert.True(t, errors.Is(err, ErrUnknownAllocator))

	_, err = registry.Resolve(NumSlots)
	assert.True(t, errors.Is(err, ErrInvalidIndex))

	require.NoError(t, registry.Register(5, NewBudget("scratch", 64)))
	allocator, err = registry.Resolve(5)
	require.NoError(t, err)
	assert.Equal(t, "scratch", allocator.Name())

	assert.Error(t, registry.Register(NumSlots, NewHeap("x")))
	assert.Error(t, registry.Register(1, nil))
	assert.Equal(t, []uint32{0, 5}, registry.Indexes())
}
