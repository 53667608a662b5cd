package dflags

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/ds"
)

// Pack puts size (already in units of 4 bytes), allocatorIndex and attr
// into one word. Any value wider than its field is rejected instead of
// being truncated into its neighbour.
func Pack(size uint32, allocatorIndex uint32, attr uint32) (Flags, error) {
	if size > SizeMask {
		return 0, errors.Wrapf(ErrOutOfRange, "Pack size %d exceeds %d", size, SizeMask)
	}
	if allocatorIndex > AllocatorIndexMask {
		return 0, errors.Wrapf(
			ErrOutOfRange, "Pack allocator index %d exceeds %d",
			allocatorIndex, AllocatorIndexMask,
		)
	}
	if attr > AttrMask {
		return 0, errors.Wrapf(ErrOutOfRange, "Pack attr %d exceeds %d", attr, AttrMask)
	}
	flags := size<<SizeShift |
		allocatorIndex<<AllocatorIndexShift |
		attr<<AttrShift
	return Flags(flags), nil
}

// MustPack is Pack for fixtures and constants.
func MustPack(size uint32, allocatorIndex uint32, attr uint32) Flags {
	flags, err := Pack(size, allocatorIndex, attr)
	if err != nil {
		panic(err)
	}
	return flags
}

// FromByteSize quantizes byteSize up to the next multiple of SizeUnit before packing.
func FromByteSize(byteSize uint64, allocatorIndex uint32, attr uint32) (Flags, error) {
	if byteSize > uint64(MaxByteSize) {
		return 0, errors.Wrapf(
			ErrOutOfRange, "FromByteSize byte size %d exceeds %d",
			byteSize, MaxByteSize,
		)
	}
	// MaxByteSize is a multiple of SizeUnit, so rounding up stays in range.
	quantized := ds.NearestDivisibleByM(byteSize, SizeUnit)
	return Pack(uint32(quantized/SizeUnit), allocatorIndex, attr)
}

func (r Flags) Size() uint32 {
	return (uint32(r) >> SizeShift) & SizeMask
}

func (r Flags) AllocatorIndex() uint32 {
	return (uint32(r) >> AllocatorIndexShift) & AllocatorIndexMask
}

func (r Flags) Attr() uint32 {
	return (uint32(r) >> AttrShift) & AttrMask
}

// ByteSize is always a multiple of SizeUnit.
func (r Flags) ByteSize() uint32 {
	return r.Size() * SizeUnit
}

// HasAttr reports whether attribute bit i (0 to AttrBits-1) is set.
func (r Flags) HasAttr(i uint) bool {
	if i >= AttrBits {
		return false
	}
	return r.Attr()&(1<<i) != 0
}

func (r Flags) WithSize(size uint32) (Flags, error) {
	return Pack(size, r.AllocatorIndex(), r.Attr())
}

func (r Flags) WithAllocatorIndex(allocatorIndex uint32) (Flags, error) {
	return Pack(r.Size(), allocatorIndex, r.Attr())
}

func (r Flags) WithAttr(attr uint32) (Flags, error) {
	return Pack(r.Size(), r.AllocatorIndex(), attr)
}
