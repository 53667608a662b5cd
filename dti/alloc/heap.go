package alloc

import (
	"sync/atomic"
)

// Heap never refuses an allocation.
type Heap struct {
	name        string
	allocations atomic.Int64
	bytesInUse  atomic.Int64
}

func NewHeap(name string) *Heap {
	return &Heap{name: name}
}

func (r *Heap) Name() string {
	return r.name
}

func (r *Heap) Allocate(byteSize uint32) error {
	r.allocations.Add(1)
	r.bytesInUse.Add(int64(byteSize))
	return nil
}

func (r *Heap) Release(byteSize uint32) {
	r.bytesInUse.Add(-int64(byteSize))
}

func (r *Heap) Stats() Stats {
	return Stats{
		Allocations: r.allocations.Load(),
		BytesInUse:  r.bytesInUse.Load(),
	}
}
