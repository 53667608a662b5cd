package dti

import (
	"github.com/pkg/errors"
)

type (
	// Factory constructs instances of the type a descriptor describes.
	// Storage handed to CtorInstance and CtorInstanceArray belongs to the
	// caller; a Factory never keeps it.
	Factory interface {
		NewInstance() (any, error)
		CtorInstance(target any) (any, error)
		CtorInstanceArray(target any, count int64) (any, error)
	}

	// FactoryOf makes instances of T. Storage is a *T for one instance
	// and a []T for arrays. A zero count hands target back unchecked.
	FactoryOf[T any] struct {
		ctor func(t *T)
	}

	// RawFactory makes instances that are only known by their byte size.
	// Storage is a []byte.
	RawFactory struct {
		byteSize uint32
	}

	producer[T any] interface {
		produces(*T)
	}
)

// NewFactory returns a factory that zeroes storage and then runs ctor over
// it. A nil ctor leaves instances at their zero value.
func NewFactory[T any](ctor func(t *T)) *FactoryOf[T] {
	return &FactoryOf[T]{ctor: ctor}
}

func (r *FactoryOf[T]) produces(*T) {}

func (r *FactoryOf[T]) construct(t *T) {
	var zero T
	*t = zero
	if r.ctor != nil {
		r.ctor(t)
	}
}

func (r *FactoryOf[T]) NewInstance() (any, error) {
	t := new(T)
	r.construct(t)
	return t, nil
}

func (r *FactoryOf[T]) CtorInstance(target any) (any, error) {
	t, ok := target.(*T)
	if !ok {
		var zero T
		return nil, errors.Wrapf(ErrStorageType, "CtorInstance expected *%T, got %T", zero, target)
	}
	if t == nil {
		return nil, ErrNilTarget
	}
	r.construct(t)
	return t, nil
}

func (r *FactoryOf[T]) CtorInstanceArray(target any, count int64) (any, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "CtorInstanceArray count %d", count)
	}
	if count == 0 {
		return target, nil
	}
	ts, ok := target.([]T)
	if !ok {
		var zero T
		return nil, errors.Wrapf(ErrStorageType, "CtorInstanceArray expected []%T, got %T", zero, target)
	}
	if int64(len(ts)) < count {
		return nil, errors.Wrapf(
			ErrShortStorage, "CtorInstanceArray %d elements for count %d",
			len(ts), count,
		)
	}
	for i := int64(0); i < count; i++ {
		r.construct(&ts[i])
	}
	return ts, nil
}

func NewRawFactory(byteSize uint32) *RawFactory {
	return &RawFactory{byteSize: byteSize}
}

func (r *RawFactory) NewInstance() (any, error) {
	return make([]byte, r.byteSize), nil
}

func (r *RawFactory) CtorInstance(target any) (any, error) {
	return r.CtorInstanceArray(target, 1)
}

func (r *RawFactory) CtorInstanceArray(target any, count int64) (any, error) {
	if count < 0 {
		return nil, errors.Wrapf(ErrNegativeCount, "CtorInstanceArray count %d", count)
	}
	if count == 0 {
		return target, nil
	}
	bs, ok := target.([]byte)
	if !ok {
		return nil, errors.Wrapf(ErrStorageType, "CtorInstanceArray expected []byte, got %T", target)
	}
	need := count * int64(r.byteSize)
	if int64(len(bs)) < need {
		return nil, errors.Wrapf(
			ErrShortStorage, "CtorInstanceArray %d bytes for %d elements of %d bytes",
			len(bs), count, r.byteSize,
		)
	}
	for i := int64(0); i < need; i++ {
		bs[i] = 0
	}
	return bs, nil
}
