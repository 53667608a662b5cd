package dti

import (
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/mt-dti/ds"
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
)

func (r *Forest) Len() int {
	return len(r.descriptors)
}

// At returns nil for NoIndex and for indexes outside the forest.
func (r *Forest) At(index Index) *Descriptor {
	if index < 0 || int(index) >= len(r.descriptors) {
		return nil
	}
	return &r.descriptors[index]
}

func (r *Forest) Allocators() *alloc.Registry {
	return r.allocators
}

// Descriptors lists every descriptor in arena order.
func (r *Forest) Descriptors() []*Descriptor {
	return lo.Map(
		r.descriptors,
		func(_ Descriptor, i int) *Descriptor {
			return &r.descriptors[i]
		},
	)
}

func (r *Forest) Roots() []*Descriptor {
	return lo.Filter(
		r.Descriptors(),
		func(d *Descriptor, _ int) bool {
			return d.IsRoot()
		},
	)
}

// ByName returns the first descriptor in arena order that is named name.
func (r *Forest) ByName(name string) (*Descriptor, bool) {
	index, ok := r.nameIndex[name]
	if !ok {
		return nil, false
	}
	return r.At(index), true
}

// ByHash returns the first descriptor in arena order with the given hash.
func (r *Forest) ByHash(hash uint32) (*Descriptor, bool) {
	index, ok := r.hashIndex[hash]
	if !ok {
		return nil, false
	}
	return r.At(index), true
}

// Walk visits every descriptor depth first, parents before their children,
// roots and children in order. Returning false from visit skips the
// subtree below the visited descriptor.
func (r *Forest) Walk(visit func(d *Descriptor, depth int) bool) {
	type Tracker struct {
		Descriptor *Descriptor
		Depth      int
	}
	stack := ds.NewStack[Tracker]()
	roots := r.Roots()
	for i := len(roots) - 1; i >= 0; i-- {
		stack.Push(Tracker{Descriptor: roots[i], Depth: 0})
	}
	for !stack.IsEmpty() {
		last := stack.Pop()
		if !visit(last.Descriptor, last.Depth) {
			continue
		}
		children := last.Descriptor.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack.Push(Tracker{Descriptor: children[i], Depth: last.Depth + 1})
		}
	}
}

// Descendants lists everything below d in Walk order, d excluded.
func (r *Forest) Descendants(d *Descriptor) []*Descriptor {
	descendants := make([]*Descriptor, 0)
	stack := ds.NewStack[*Descriptor]()
	children := d.Children()
	for i := len(children) - 1; i >= 0; i-- {
		stack.Push(children[i])
	}
	for !stack.IsEmpty() {
		last := stack.Pop()
		descendants = append(descendants, last)
		children := last.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack.Push(children[i])
		}
	}
	return descendants
}
