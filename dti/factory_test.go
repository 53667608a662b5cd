package dti

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryOf(t *testing.T) {
	factory := NewFactory(func(v *Vector3) { v.Z = 9 })

	instance, err := factory.NewInstance()
	require.NoError(t, err)
	assert.Equal(t, &Vector3{Z: 9}, instance)

	target := &Vector3{X: 1, Y: 2, Z: 3, Pad: 4}
	result, err := factory.CtorInstance(target)
	require.NoError(t, err)
	assert.Same(t, target, result)
	assert.Equal(t, Vector3{Z: 9}, *target)

	_, err = factory.CtorInstance(Vector3{})
	assert.True(t, errors.Is(err, ErrStorageType))
	_, err = factory.CtorInstance((*Vector3)(nil))
	assert.True(t, errors.Is(err, ErrNilTarget))
	_, err = factory.CtorInstanceArray([]int{1}, 1)
	assert.True(t, errors.Is(err, ErrStorageType))
	_, err = factory.CtorInstanceArray(make([]Vector3, 1), 2)
	assert.True(t, errors.Is(err, ErrShortStorage))
	_, err = factory.CtorInstanceArray(make([]Vector3, 1), -2)
	assert.True(t, errors.Is(err, ErrNegativeCount))
}

func TestFactoryOf_NilCtor(t *testing.T) {
	factory := NewFactory[Vector3](nil)

	target := &Vector3{X: 1}
	_, err := factory.CtorInstance(target)
	require.NoError(t, err)
	assert.Equal(t, Vector3{}, *target)
}

func TestFactoryOf_ZeroCountKeepsStorage(t *testing.T) {
	factory := NewFactory(func(v *Vector3) { v.Z = 9 })
	target := []Vector3{{X: 1}}

	result, err := factory.CtorInstanceArray(target, 0)
	require.NoError(t, err)
	assert.Equal(t, []Vector3{{X: 1}}, result)

	var empty []Vector3
	result, err = factory.CtorInstanceArray(empty, 0)
	require.NoError(t, err)
	assert.Nil(t, result)

	wrongType := map[string]int{"count": 0}
	result, err = factory.CtorInstanceArray(wrongType, 0)
	require.NoError(t, err)
	assert.Equal(t, wrongType, result)

	_, err = factory.CtorInstanceArray(wrongType, 1)
	assert.True(t, errors.Is(err, ErrStorageType))

	raw := NewRawFactory(8)
	result, err = raw.CtorInstanceArray("not bytes", 0)
	require.NoError(t, err)
	assert.Equal(t, "not bytes", result)
}

func TestRawFactory(t *testing.T) {
	factory := NewRawFactory(8)

	instance, err := factory.NewInstance()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), instance)

	target := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	_, err = factory.CtorInstance(target)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 9}, target)

	_, err = factory.CtorInstance(make([]byte, 4))
	assert.True(t, errors.Is(err, ErrShortStorage))
	_, err = factory.CtorInstance("storage")
	assert.True(t, errors.Is(err, ErrStorageType))
}

func TestAs(t *testing.T) {
	forest := mustBuildFixture()
	model, _ := forest.ByName("rModel")
	texture, _ := forest.ByName("rTexture")

	typed, err := As[Vector3](model)
	require.NoError(t, err)
	instance, err := typed.NewInstance()
	require.NoError(t, err)
	assert.Equal(t, float32(1), instance.Pad)
	assert.Equal(t, "rModel", typed.Name())

	_, err = As[Vector3](texture)
	assert.True(t, errors.Is(err, ErrStorageType))
	_, err = As[int32](model)
	assert.True(t, errors.Is(err, ErrStorageType))
	_, err = As[Vector3](nil)
	assert.True(t, errors.Is(err, ErrNilTarget))
	assert.Panics(t, func() { MustAs[int32](model) })

	_, err = typed.CtorInstanceArray(make([]Vector3, 2), -1)
	assert.True(t, errors.Is(err, ErrNegativeCount))
}
