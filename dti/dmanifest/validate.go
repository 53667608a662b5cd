package dmanifest

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
)

func validateAllocators(specs []AllocatorSpec) error {
	var multiE *multierror.Error
	seen := map[uint32]bool{}
	for _, spec := range specs {
		if spec.Index >= alloc.NumSlots {
			multiE = multierror.Append(
				multiE,
				errors.Errorf(`allocator "%s" index %d exceeds %d`, spec.Name, spec.Index, alloc.NumSlots-1),
			)
		}
		if seen[spec.Index] {
			multiE = multierror.Append(multiE, errors.Errorf("allocator index %d declared twice", spec.Index))
		}
		seen[spec.Index] = true
		if spec.Budget < 0 {
			multiE = multierror.Append(
				multiE,
				errors.Errorf(`allocator "%s" has negative budget %d`, spec.Name, spec.Budget),
			)
		}
	}
	return multiE.ErrorOrNil()
}

func validateType(spec TypeSpec, specByName map[string]TypeSpec, allocatorIndexes map[uint32]bool) error {
	var multiE *multierror.Error
	if spec.Name == "" {
		multiE = multierror.Append(multiE, errors.New("type without a name"))
	}
	// names are stored NUL-terminated in binary tables
	if strings.ContainsRune(spec.Name, 0) {
		multiE = multierror.Append(multiE, errors.Errorf("type %q contains a NUL byte", spec.Name))
	}
	if spec.Parent != "" {
		if spec.Parent == spec.Name {
			multiE = multierror.Append(multiE, errors.Errorf(`type "%s" is its own parent`, spec.Name))
		} else if _, ok := specByName[spec.Parent]; !ok {
			multiE = multierror.Append(
				multiE,
				errors.Errorf(`type "%s" has unknown parent "%s"`, spec.Name, spec.Parent),
			)
		}
	}
	if spec.Link != "" {
		if _, ok := specByName[spec.Link]; !ok {
			multiE = multierror.Append(
				multiE,
				errors.Errorf(`type "%s" has unknown link "%s"`, spec.Name, spec.Link),
			)
		}
	}
	if _, err := dflags.FromByteSize(spec.Size, spec.Allocator, spec.Attr); err != nil {
		multiE = multierror.Append(multiE, errors.Wrapf(err, `type "%s"`, spec.Name))
	}
	if spec.Allocator != 0 && spec.Allocator < alloc.NumSlots && !allocatorIndexes[spec.Allocator] {
		multiE = multierror.Append(
			multiE,
			errors.Errorf(`type "%s" uses undeclared allocator %d`, spec.Name, spec.Allocator),
		)
	}
	return multiE.ErrorOrNil()
}

func validateAncestry(types []TypeSpec, specByName map[string]TypeSpec) error {
	var multiE *multierror.Error
	for _, spec := range types {
		steps := 0
		for parent := spec.Parent; parent != ""; parent = specByName[parent].Parent {
			steps++
			if steps > len(types) {
				multiE = multierror.Append(
					multiE,
					errors.Errorf(`type "%s" has a parent cycle`, spec.Name),
				)
				break
			}
		}
	}
	return multiE.ErrorOrNil()
}

// Validate reports every problem of m at once. Duplicated hashes and sizes
// that need rounding are logged rather than rejected.
func Validate(m Manifest) error {
	var multiE *multierror.Error
	multiE = multierror.Append(multiE, validateAllocators(m.Allocators))

	allocatorIndexes := lo.SliceToMap[AllocatorSpec, uint32, bool](
		m.Allocators,
		func(spec AllocatorSpec) (uint32, bool) {
			return spec.Index, true
		},
	)
	specByName := map[string]TypeSpec{}
	nameByHash := map[uint32]string{}
	for _, spec := range m.Types {
		if _, existed := specByName[spec.Name]; existed {
			multiE = multierror.Append(multiE, errors.Errorf(`type "%s" declared twice`, spec.Name))
			continue
		}
		specByName[spec.Name] = spec
	}
	for _, spec := range m.Types {
		multiE = multierror.Append(multiE, validateType(spec, specByName, allocatorIndexes))

		hash := HashOf(spec)
		if other, existed := nameByHash[hash]; existed && other != spec.Name {
			logrus.Warnf(`types "%s" and "%s" share hash 0x%08X`, other, spec.Name, hash)
		} else {
			nameByHash[hash] = spec.Name
		}
		if spec.Size%dflags.SizeUnit != 0 {
			logrus.Debugf(`type "%s" size %d is rounded up to a multiple of %d`, spec.Name, spec.Size, dflags.SizeUnit)
		}
	}
	if multiE.ErrorOrNil() == nil {
		multiE = multierror.Append(multiE, validateAncestry(m.Types, specByName))
	}

	return multiE.ErrorOrNil()
}
