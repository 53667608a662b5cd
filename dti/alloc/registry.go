package alloc

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry maps the 64 allocator indexes to allocators.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	slots [NumSlots]Allocator
}

// DefaultName is the name of the heap allocator NewRegistry puts at index 0.
const DefaultName = "default"

func NewRegistry() *Registry {
	r := &Registry{}
	r.slots[0] = NewHeap(DefaultName)
	return r
}

func (r *Registry) Register(index uint32, allocator Allocator) error {
	if index >= NumSlots {
		return errors.Wrapf(ErrInvalidIndex, "Register index %d", index)
	}
	if allocator == nil {
		return errors.Errorf("Register nil allocator at index %d", index)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[index] = allocator
	return nil
}

func (r *Registry) Resolve(index uint32) (Allocator, error) {
	if index >= NumSlots {
		return nil, errors.Wrapf(ErrInvalidIndex, "Resolve index %d", index)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	allocator := r.slots[index]
	if allocator == nil {
		return nil, errors.Wrapf(ErrUnknownAllocator, "Resolve index %d", index)
	}
	return allocator, nil
}

// Indexes returns the occupied slots in ascending order.
func (r *Registry) Indexes() []uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	indexes := make([]uint32, 0, NumSlots)
	for i, allocator := range r.slots {
		if allocator != nil {
			indexes = append(indexes, uint32(i))
		}
	}
	return indexes
}
