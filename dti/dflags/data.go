package dflags

import (
	"github.com/pkg/errors"
)

type (
	// Flags is the 32-bit word every descriptor carries next to its hash.
	//
	//   000 | 00 0000 | 000 0000 0000 0000 0000 0000
	//    ^        ^                  ^
	//    |        |                  |
	//    |        |          size in units of 4 bytes
	//    |        |
	//    |    allocator index
	//    |
	//    attribute bits, opaque to this package
	Flags uint32
)

const (
	SizeBits           = 23
	AllocatorIndexBits = 6
	AttrBits           = 3

	SizeShift           = 0
	AllocatorIndexShift = SizeShift + SizeBits
	AttrShift           = AllocatorIndexShift + AllocatorIndexBits

	SizeMask           = uint32(1)<<SizeBits - 1
	AllocatorIndexMask = uint32(1)<<AllocatorIndexBits - 1
	AttrMask           = uint32(1)<<AttrBits - 1

	// SizeUnit is the number of bytes one step of Size stands for.
	SizeUnit    = 4
	MaxSize     = SizeMask
	MaxByteSize = MaxSize * SizeUnit
	// NumAllocators is how many allocator indexes the word can address.
	NumAllocators = AllocatorIndexMask + 1
)

var (
	ErrOutOfRange = errors.New("value does not fit its bit field")
)
