package dmanifest

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thanhnguyen2187/mt-dti/dti"
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
	"gopkg.in/yaml.v3"
)

// allocatorSpecs declares every registered allocator, plus a heap for each
// index in used that nothing is registered at. Forests decoded from binary
// tables reference such indexes, and Validate rejects undeclared ones.
func allocatorSpecs(registry *alloc.Registry, used [alloc.NumSlots]bool) []AllocatorSpec {
	specs := make([]AllocatorSpec, 0)
	registered := [alloc.NumSlots]bool{}
	for _, index := range registry.Indexes() {
		registered[index] = true
		allocator, err := registry.Resolve(index)
		if err != nil {
			continue
		}
		spec := AllocatorSpec{
			Index: index,
			Name:  allocator.Name(),
		}
		switch allocator := allocator.(type) {
		case *alloc.Budget:
			spec.Budget = allocator.Capacity()
		case *alloc.Heap:
			if index == 0 && allocator.Name() == alloc.DefaultName {
				continue
			}
		}
		specs = append(specs, spec)
	}
	for index, inUse := range used {
		if !inUse || index == 0 || registered[index] {
			continue
		}
		logrus.Debugf("declaring a heap for unregistered allocator %d", index)
		specs = append(specs, AllocatorSpec{Index: uint32(index), Name: fmt.Sprintf("heap-%d", index)})
	}
	return specs
}

// FromForest describes forest as a manifest, listing parents before their
// children so that Build gives back the same hierarchy.
func FromForest(forest *dti.Forest) Manifest {
	types := make([]TypeSpec, 0, forest.Len())
	var used [alloc.NumSlots]bool
	forest.Walk(
		func(d *dti.Descriptor, _ int) bool {
			hash := d.Hash()
			spec := TypeSpec{
				Name:      d.Name(),
				Hash:      &hash,
				Size:      uint64(d.ByteSize()),
				Allocator: d.AllocatorIndex(),
				Attr:      d.Attr(),
				Abstract:  d.IsAbstract(),
			}
			if parent := d.Parent(); parent != nil {
				spec.Parent = parent.Name()
			}
			if link := d.Link(); link != nil {
				spec.Link = link.Name()
			}
			types = append(types, spec)
			used[spec.Allocator] = true
			return true
		},
	)

	return Manifest{
		Allocators: allocatorSpecs(forest.Allocators(), used),
		Types:      types,
	}
}

func Encode(m Manifest, format Format) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(m); err != nil {
			return nil, errors.Wrap(err, "Encode error writing YAML")
		}
		if err := encoder.Close(); err != nil {
			return nil, errors.Wrap(err, "Encode error writing YAML")
		}
	case FormatTOML:
		if err := toml.NewEncoder(buf).Encode(m); err != nil {
			return nil, errors.Wrap(err, "Encode error writing TOML")
		}
	default:
		return nil, errors.Errorf(`Encode unknown format "%s"`, format)
	}
	return buf.Bytes(), nil
}
