package alloc

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// Budget refuses allocations that would take its bytes in use above capacity.
type Budget struct {
	name        string
	capacity    int64
	allocations atomic.Int64
	bytesInUse  atomic.Int64
}

func NewBudget(name string, capacity int64) *Budget {
	return &Budget{
		name:     name,
		capacity: capacity,
	}
}

func (r *Budget) Name() string {
	return r.name
}

func (r *Budget) Capacity() int64 {
	return r.capacity
}

func (r *Budget) Allocate(byteSize uint32) error {
	for {
		inUse := r.bytesInUse.Load()
		next := inUse + int64(byteSize)
		if next > r.capacity {
			return errors.Wrapf(
				ErrOutOfMemory, `Budget "%s" cannot fit %d bytes: %d of %d in use`,
				r.name, byteSize, inUse, r.capacity,
			)
		}
		if r.bytesInUse.CompareAndSwap(inUse, next) {
			r.allocations.Add(1)
			return nil
		}
	}
}

func (r *Budget) Release(byteSize uint32) {
	r.bytesInUse.Add(-int64(byteSize))
}

func (r *Budget) Stats() Stats {
	return Stats{
		Allocations: r.allocations.Load(),
		BytesInUse:  r.bytesInUse.Load(),
	}
}
