package dflags

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack(t *testing.T) {
	flags, err := Pack(0x12345, 0x2A, 0b101)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x12345), flags.Size())
	assert.Equal(t, uint32(0x2A), flags.AllocatorIndex())
	assert.Equal(t, uint32(0b101), flags.Attr())
	assert.Equal(t, uint32(0x12345*4), flags.ByteSize())
}

func TestPack_BitLayout(t *testing.T) {
	expectedValues := map[Flags]uint32{
		MustPack(1, 0, 0):                  0x00000001,
		MustPack(SizeMask, 0, 0):           0x007FFFFF,
		MustPack(0, 1, 0):                  0x00800000,
		MustPack(0, AllocatorIndexMask, 0): 0x1F800000,
		MustPack(0, 0, 1):                  0x20000000,
		MustPack(0, 0, AttrMask):           0xE0000000,
	}
	for flags, expected := range expectedValues {
		assert.Equal(t, expected, uint32(flags))
	}
}

func TestPack_OutOfRange(t *testing.T) {
	_, err := Pack(SizeMask+1, 0, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = Pack(0, NumAllocators, 0)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	_, err = Pack(0, 0, AttrMask+1)
	assert.True(t, errors.Is(err, ErrOutOfRange))

	assert.Panics(t, func() { MustPack(0, 0, 8) })
}

func TestFlags_FieldsDoNotBleed(t *testing.T) {
	flags := Flags(0xFFFFFFFF)

	assert.Equal(t, SizeMask, flags.Size())
	assert.Equal(t, AllocatorIndexMask, flags.AllocatorIndex())
	assert.Equal(t, AttrMask, flags.Attr())
	assert.Equal(t, MaxByteSize, flags.ByteSize())
}

func TestFromByteSize(t *testing.T) {
	expectedValues := map[uint64]uint32{
		0:  0,
		1:  4,
		4:  4,
		13: 16,
		64: 64,
	}
	for byteSize, expected := range expectedValues {
		flags, err := FromByteSize(byteSize, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, expected, flags.ByteSize())
		assert.Zero(t, flags.ByteSize()%SizeUnit)
		assert.Equal(t, uint32(3), flags.AllocatorIndex())
		assert.Equal(t, uint32(1), flags.Attr())
	}

	tooLarge := []uint64{
		uint64(MaxByteSize) + 1,
		math.MaxUint64 - 2,
		math.MaxUint64 - 1,
		math.MaxUint64,
	}
	for _, byteSize := range tooLarge {
		flags, err := FromByteSize(byteSize, 0, 0)
		assert.True(t, errors.Is(err, ErrOutOfRange), byteSize)
		assert.Zero(t, flags, byteSize)
	}
}

func TestFlags_With(t *testing.T) {
	flags := MustPack(10, 2, 3)

	withSize, err := flags.WithSize(20)
	require.NoError(t, err)
	assert.Equal(t, MustPack(20, 2, 3), withSize)

	withAllocator, err := flags.WithAllocatorIndex(63)
	require.NoError(t, err)
	assert.Equal(t, MustPack(10, 63, 3), withAllocator)

	withAttr, err := flags.WithAttr(0)
	require.NoError(t, err)
	assert.Equal(t, MustPack(10, 2, 0), withAttr)

	_, err = flags.WithAllocatorIndex(64)
	assert.Error(t, err)
}

func TestFlags_HasAttr(t *testing.T) {
	flags := MustPack(0, 0, 0b101)

	assert.True(t, flags.HasAttr(0))
	assert.False(t, flags.HasAttr(1))
	assert.True(t, flags.HasAttr(2))
	assert.False(t, flags.HasAttr(3))
}
