package dti

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
)

// Builder assembles the descriptors of a forest. It is the only way to set
// hierarchy links; the Forest it builds is immutable.
type Builder struct {
	descriptors []Descriptor
}

func NewBuilder() *Builder {
	return &Builder{
		descriptors: make([]Descriptor, 0),
	}
}

func (r *Builder) Len() int {
	return len(r.descriptors)
}

// Add appends an unlinked descriptor. A nil factory makes it abstract.
func (r *Builder) Add(name string, hash uint32, flags dflags.Flags, factory Factory) Index {
	index := Index(len(r.descriptors))
	r.descriptors = append(
		r.descriptors,
		Descriptor{
			name:    name,
			hash:    hash,
			flags:   flags,
			links:   NoLinks,
			index:   index,
			factory: factory,
		},
	)
	return index
}

func (r *Builder) inRange(index Index) bool {
	return index >= 0 && int(index) < len(r.descriptors)
}

// SetParent appends child at the end of parent's child list.
func (r *Builder) SetParent(child Index, parent Index) error {
	if !r.inRange(child) || !r.inRange(parent) {
		return errors.Wrapf(ErrInvalidIndex, "SetParent child %d parent %d", child, parent)
	}
	if child == parent {
		return errors.Wrapf(ErrInconsistentTree, "SetParent %d to itself", child)
	}
	if r.descriptors[child].links.Parent != NoIndex {
		return errors.Wrapf(
			ErrInconsistentTree, "SetParent %d already has parent %d",
			child, r.descriptors[child].links.Parent,
		)
	}

	r.descriptors[child].links.Parent = parent
	parentLinks := &r.descriptors[parent].links
	if parentLinks.FirstChild == NoIndex {
		parentLinks.FirstChild = child
		return nil
	}
	last := parentLinks.FirstChild
	for r.descriptors[last].links.NextSibling != NoIndex {
		last = r.descriptors[last].links.NextSibling
	}
	r.descriptors[last].links.NextSibling = child
	return nil
}

func (r *Builder) SetLink(from Index, to Index) error {
	if !r.inRange(from) || !r.inRange(to) {
		return errors.Wrapf(ErrInvalidIndex, "SetLink from %d to %d", from, to)
	}
	r.descriptors[from].links.Link = to
	return nil
}

// SetLinks overwrites every relation of index at once, for loaders that
// already have the links laid out. Build checks that they agree.
func (r *Builder) SetLinks(index Index, links Links) error {
	if !r.inRange(index) {
		return errors.Wrapf(ErrInvalidIndex, "SetLinks index %d", index)
	}
	r.descriptors[index].links = links
	return nil
}

func (r *Builder) validateIndex(owner Index, field string, index Index) error {
	if index == NoIndex || r.inRange(index) {
		return nil
	}
	return errors.Wrapf(ErrInvalidIndex, "descriptor %d %s %d", owner, field, index)
}

func (r *Builder) validate() error {
	var multiE *multierror.Error
	n := len(r.descriptors)

	for i := range r.descriptors {
		index := Index(i)
		links := r.descriptors[i].links
		multiE = multierror.Append(
			multiE,
			r.validateIndex(index, "parent", links.Parent),
			r.validateIndex(index, "first child", links.FirstChild),
			r.validateIndex(index, "next sibling", links.NextSibling),
			r.validateIndex(index, "link", links.Link),
		)
	}
	if err := multiE.ErrorOrNil(); err != nil {
		return err
	}

	for i := range r.descriptors {
		steps := 0
		for parent := r.descriptors[i].links.Parent; parent != NoIndex; parent = r.descriptors[parent].links.Parent {
			steps++
			if steps > n {
				multiE = multierror.Append(
					multiE,
					errors.Wrapf(ErrInconsistentTree, "descriptor %d has a parent cycle", i),
				)
				break
			}
		}
	}

	listed := make([]bool, n)
	for i := range r.descriptors {
		for child := r.descriptors[i].links.FirstChild; child != NoIndex; child = r.descriptors[child].links.NextSibling {
			if listed[child] {
				multiE = multierror.Append(
					multiE,
					errors.Wrapf(ErrInconsistentTree, "descriptor %d is listed as a child twice", child),
				)
				break
			}
			listed[child] = true
			if r.descriptors[child].links.Parent != Index(i) {
				multiE = multierror.Append(
					multiE,
					errors.Wrapf(
						ErrInconsistentTree, "descriptor %d is a child of %d but has parent %d",
						child, i, r.descriptors[child].links.Parent,
					),
				)
			}
		}
	}
	for i := range r.descriptors {
		if r.descriptors[i].links.Parent != NoIndex && !listed[i] {
			multiE = multierror.Append(
				multiE,
				errors.Wrapf(ErrInconsistentTree, "descriptor %d is missing from its parent's children", i),
			)
		}
	}

	return multiE.ErrorOrNil()
}

// Build freezes the descriptors into a Forest. A nil registry gets
// alloc.NewRegistry.
func (r *Builder) Build(allocators *alloc.Registry) (*Forest, error) {
	if err := r.validate(); err != nil {
		return nil, errors.Wrap(err, "Build error")
	}
	if allocators == nil {
		allocators = alloc.NewRegistry()
	}

	forest := &Forest{
		descriptors: make([]Descriptor, len(r.descriptors)),
		nameIndex:   make(map[string]Index, len(r.descriptors)),
		hashIndex:   make(map[uint32]Index, len(r.descriptors)),
		allocators:  allocators,
	}
	copy(forest.descriptors, r.descriptors)
	for i := range forest.descriptors {
		d := &forest.descriptors[i]
		d.forest = forest
		if _, existed := forest.nameIndex[d.name]; !existed {
			forest.nameIndex[d.name] = d.index
		}
		if _, existed := forest.hashIndex[d.hash]; !existed {
			forest.hashIndex[d.hash] = d.index
		}
	}

	return forest, nil
}
