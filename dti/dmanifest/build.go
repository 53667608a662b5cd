package dmanifest

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thanhnguyen2187/mt-dti/dti"
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
)

// Factories binds type names to the factories their descriptors get.
// Concrete types without an entry make byte buffers of their size.
type Factories map[string]dti.Factory

func (r Factories) factoryOf(spec TypeSpec, flags dflags.Flags) dti.Factory {
	if factory, ok := r[spec.Name]; ok {
		if spec.Abstract {
			logrus.Warnf(`abstract type "%s" ignores its registered factory`, spec.Name)
			return nil
		}
		return factory
	}
	if spec.Abstract {
		return nil
	}
	return dti.NewRawFactory(flags.ByteSize())
}

func BuildAllocators(specs []AllocatorSpec) (*alloc.Registry, error) {
	registry := alloc.NewRegistry()
	for _, spec := range specs {
		var allocator alloc.Allocator = alloc.NewHeap(spec.Name)
		if spec.Budget > 0 {
			allocator = alloc.NewBudget(spec.Name, spec.Budget)
		}
		if err := registry.Register(spec.Index, allocator); err != nil {
			return nil, errors.Wrapf(err, `BuildAllocators error registering "%s"`, spec.Name)
		}
	}
	return registry, nil
}

// Build validates m and turns it into a forest. Children keep the order
// in which they are declared.
func Build(m Manifest, factories Factories) (*dti.Forest, error) {
	if err := Validate(m); err != nil {
		return nil, errors.Wrap(err, "Build error validating manifest")
	}
	allocators, err := BuildAllocators(m.Allocators)
	if err != nil {
		return nil, errors.Wrap(err, "Build error")
	}

	builder := dti.NewBuilder()
	indexByName := map[string]dti.Index{}
	for _, spec := range m.Types {
		flags, err := dflags.FromByteSize(spec.Size, spec.Allocator, spec.Attr)
		if err != nil {
			return nil, errors.Wrapf(err, `Build error packing "%s"`, spec.Name)
		}
		indexByName[spec.Name] = builder.Add(spec.Name, HashOf(spec), flags, factories.factoryOf(spec, flags))
	}
	for _, spec := range m.Types {
		index := indexByName[spec.Name]
		if spec.Parent != "" {
			if err := builder.SetParent(index, indexByName[spec.Parent]); err != nil {
				return nil, errors.Wrapf(err, `Build error linking "%s" to parent "%s"`, spec.Name, spec.Parent)
			}
		}
		if spec.Link != "" {
			if err := builder.SetLink(index, indexByName[spec.Link]); err != nil {
				return nil, errors.Wrapf(err, `Build error linking "%s" to "%s"`, spec.Name, spec.Link)
			}
		}
	}

	forest, err := builder.Build(allocators)
	if err != nil {
		return nil, errors.Wrap(err, "Build error")
	}
	logrus.Debugf("built forest of %d types", forest.Len())
	return forest, nil
}

func LoadForest(path string, factories Factories) (*dti.Forest, error) {
	manifest, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Build(*manifest, factories)
}
