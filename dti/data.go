// Package dti describes the class hierarchy of an external object system.
//
// A Forest is an arena of Descriptors linked by index: each descriptor has
// at most one parent, the head of its child list, the next sibling in its
// parent's child list and one auxiliary link that no walk interprets.
// A Forest is built once through a Builder and never changes afterwards,
// so every query on it is safe to call from any number of goroutines.
//
// Queries trust the data they walk. Sizes that were not quantized to
// multiples of 4, duplicated names or duplicated hashes are not detected
// here; validate them when the forest is ingested (see the dmanifest and
// dtable packages).
package dti

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
)

type (
	// Index addresses a descriptor inside its forest.
	Index int32

	Descriptor struct {
		name    string
		hash    uint32
		flags   dflags.Flags
		links   Links
		index   Index
		forest  *Forest
		factory Factory
	}

	// Links are the raw hierarchy relations of a descriptor.
	Links struct {
		Parent      Index `json:"parent"`
		FirstChild  Index `json:"first_child"`
		NextSibling Index `json:"next_sibling"`
		Link        Index `json:"link"`
	}

	Forest struct {
		descriptors []Descriptor
		nameIndex   map[string]Index
		hashIndex   map[uint32]Index
		allocators  *alloc.Registry
	}
)

const (
	NoIndex = Index(-1)
)

var (
	NoLinks = Links{
		Parent:      NoIndex,
		FirstChild:  NoIndex,
		NextSibling: NoIndex,
		Link:        NoIndex,
	}
)

var (
	ErrAbstract         = errors.New("descriptor has no factory")
	ErrNegativeCount    = errors.New("negative element count")
	ErrShortStorage     = errors.New("storage is too small")
	ErrStorageType      = errors.New("storage has the wrong type")
	ErrNilTarget        = errors.New("nil storage")
	ErrInvalidIndex     = errors.New("descriptor index out of range")
	ErrInconsistentTree = errors.New("inconsistent hierarchy links")
)
