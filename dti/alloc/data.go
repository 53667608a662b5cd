// Package alloc resolves the allocator index stored in a descriptor to an
// allocation strategy. Memory itself is owned by the Go runtime; an
// Allocator decides whether an allocation of a given size may happen and
// keeps the books on it.
package alloc

import (
	"github.com/pkg/errors"
)

type (
	Allocator interface {
		Name() string
		// Allocate reserves byteSize bytes or fails with ErrOutOfMemory.
		Allocate(byteSize uint32) error
		// Release gives back a reservation made by Allocate.
		Release(byteSize uint32)
		Stats() Stats
	}
	Stats struct {
		Allocations int64 `json:"allocations"`
		BytesInUse  int64 `json:"bytes_in_use"`
	}
)

const (
	// NumSlots matches the width of the allocator index field.
	NumSlots = 64
)

var (
	ErrOutOfMemory      = errors.New("allocator is out of memory")
	ErrUnknownAllocator = errors.New("no allocator registered at index")
	ErrInvalidIndex     = errors.New("allocator index out of range")
)
