package dti

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/ds"
)

// Typed is a descriptor known to make instances of T.
type Typed[T any] struct {
	*Descriptor
}

// As checks that d was built with a FactoryOf[T] and wraps it.
func As[T any](d *Descriptor) (Typed[T], error) {
	if d == nil {
		return Typed[T]{}, errors.Wrap(ErrNilTarget, "As nil descriptor")
	}
	if _, ok := d.factory.(producer[T]); !ok {
		var zero T
		return Typed[T]{}, errors.Wrapf(
			ErrStorageType, `As descriptor "%s" does not make %T`,
			d.name, zero,
		)
	}
	return Typed[T]{Descriptor: d}, nil
}

func MustAs[T any](d *Descriptor) Typed[T] {
	typed, err := As[T](d)
	if err != nil {
		panic(err)
	}
	return typed
}

func (r Typed[T]) NewInstance() (*T, error) {
	instance, err := r.Descriptor.NewInstance()
	if err != nil {
		return nil, err
	}
	t, ok := instance.(*T)
	if !ok {
		return nil, ds.ErrUnreachableCode{Caller: "Typed.NewInstance"}
	}
	return t, nil
}

func (r Typed[T]) CtorInstance(target *T) (*T, error) {
	instance, err := r.Descriptor.CtorInstance(target)
	if err != nil {
		return nil, err
	}
	t, ok := instance.(*T)
	if !ok {
		return nil, ds.ErrUnreachableCode{Caller: "Typed.CtorInstance"}
	}
	return t, nil
}

func (r Typed[T]) CtorInstanceArray(target []T, count int64) ([]T, error) {
	instances, err := r.Descriptor.CtorInstanceArray(target, count)
	if err != nil {
		return nil, err
	}
	ts, ok := instances.([]T)
	if !ok {
		return nil, ds.ErrUnreachableCode{Caller: "Typed.CtorInstanceArray"}
	}
	return ts, nil
}
