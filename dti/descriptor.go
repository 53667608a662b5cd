package dti

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
)

func (r *Descriptor) Name() string {
	return r.name
}

func (r *Descriptor) Hash() uint32 {
	return r.hash
}

func (r *Descriptor) Flags() dflags.Flags {
	return r.flags
}

func (r *Descriptor) Index() Index {
	return r.index
}

func (r *Descriptor) Links() Links {
	return r.links
}

func (r *Descriptor) Forest() *Forest {
	return r.forest
}

// ByteSize is the instance size of the described type, always a multiple of 4.
func (r *Descriptor) ByteSize() uint32 {
	return r.flags.ByteSize()
}

func (r *Descriptor) AllocatorIndex() uint32 {
	return r.flags.AllocatorIndex()
}

func (r *Descriptor) Attr() uint32 {
	return r.flags.Attr()
}

func (r *Descriptor) IsRoot() bool {
	return r.links.Parent == NoIndex
}

// IsAbstract reports whether the descriptor has no factory to make instances with.
func (r *Descriptor) IsAbstract() bool {
	return r.factory == nil
}

func (r *Descriptor) Parent() *Descriptor {
	return r.forest.At(r.links.Parent)
}

func (r *Descriptor) FirstChild() *Descriptor {
	return r.forest.At(r.links.FirstChild)
}

func (r *Descriptor) NextSibling() *Descriptor {
	return r.forest.At(r.links.NextSibling)
}

// Link is the auxiliary relation. It plays no part in the hierarchy.
func (r *Descriptor) Link() *Descriptor {
	return r.forest.At(r.links.Link)
}

// InheritsFromName walks the ancestors of r, starting at its parent, and
// reports whether one of them is named name. A descriptor is not its own ancestor.
func (r *Descriptor) InheritsFromName(name string) bool {
	for dti := r.Parent(); dti != nil; dti = dti.Parent() {
		if dti.name == name {
			return true
		}
	}
	return false
}

// InheritsFromHash is InheritsFromName comparing identity hashes.
func (r *Descriptor) InheritsFromHash(hash uint32) bool {
	for dti := r.Parent(); dti != nil; dti = dti.Parent() {
		if dti.hash == hash {
			return true
		}
	}
	return false
}

// InheritsFrom compares by other's hash, so two descriptors sharing a hash
// are the same type here even when they are different nodes.
func (r *Descriptor) InheritsFrom(other *Descriptor) bool {
	if other == nil {
		return false
	}
	return r.InheritsFromHash(other.hash)
}

// Ancestors lists the parent chain of r, nearest first.
func (r *Descriptor) Ancestors() []*Descriptor {
	ancestors := make([]*Descriptor, 0)
	for dti := r.Parent(); dti != nil; dti = dti.Parent() {
		ancestors = append(ancestors, dti)
	}
	return ancestors
}

// Children lists the child list of r in sibling order.
func (r *Descriptor) Children() []*Descriptor {
	children := make([]*Descriptor, 0)
	for dti := r.FirstChild(); dti != nil; dti = dti.NextSibling() {
		children = append(children, dti)
	}
	return children
}

// NewInstance reserves ByteSize bytes from the allocator at AllocatorIndex
// and returns a freshly constructed instance owned by the caller.
func (r *Descriptor) NewInstance() (any, error) {
	if r.factory == nil {
		return nil, errors.Wrapf(ErrAbstract, `NewInstance "%s"`, r.name)
	}
	allocator, err := r.forest.allocators.Resolve(r.AllocatorIndex())
	if err != nil {
		return nil, errors.Wrapf(err, `NewInstance "%s" error resolving allocator`, r.name)
	}
	if err := allocator.Allocate(r.ByteSize()); err != nil {
		return nil, errors.Wrapf(err, `NewInstance "%s" error allocating`, r.name)
	}
	instance, err := r.factory.NewInstance()
	if err != nil {
		allocator.Release(r.ByteSize())
		return nil, errors.Wrapf(err, `NewInstance "%s" error constructing`, r.name)
	}
	return instance, nil
}

// CtorInstance constructs one instance over storage the caller already owns
// and returns that same storage.
func (r *Descriptor) CtorInstance(target any) (any, error) {
	if r.factory == nil {
		return nil, errors.Wrapf(ErrAbstract, `CtorInstance "%s"`, r.name)
	}
	result, err := r.factory.CtorInstance(target)
	if err != nil {
		return nil, errors.Wrapf(err, `CtorInstance "%s" error`, r.name)
	}
	return result, nil
}

// CtorInstanceArray constructs count contiguous instances over caller storage.
// A zero count writes nothing and returns target as is, whatever its type.
// Abstract descriptors fail with ErrAbstract for every count.
func (r *Descriptor) CtorInstanceArray(target any, count int64) (any, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, `CtorInstanceArray "%s" count %d`, r.name, count)
	}
	if r.factory == nil {
		return nil, errors.Wrapf(ErrAbstract, `CtorInstanceArray "%s"`, r.name)
	}
	result, err := r.factory.CtorInstanceArray(target, count)
	if err != nil {
		return nil, errors.Wrapf(err, `CtorInstanceArray "%s" error`, r.name)
	}
	return result, nil
}
