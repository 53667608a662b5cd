package dti

import (
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
	"github.com/thanhnguyen2187/mt-dti/dti/dhash"
)

type Vector3 struct {
	X, Y, Z float32
	Pad     float32
}

// buildFixture builds
//
//	MtObject --> cResource --> rTexture
//	 |                    \--> rModel
//	 \--> cUnit
//	MtProperty
func buildFixture(allocators *alloc.Registry) (*Forest, error) {
	builder := NewBuilder()
	add := func(name string, byteSize uint64, allocatorIndex uint32, factory Factory) Index {
		flags, err := dflags.FromByteSize(byteSize, allocatorIndex, 0)
		if err != nil {
			panic(err)
		}
		return builder.Add(name, dhash.HashString(name), flags, factory)
	}
	object := add("MtObject", 8, 0, nil)
	resource := add("cResource", 24, 0, nil)
	texture := add("rTexture", 64, 1, NewRawFactory(64))
	model := add("rModel", 16, 0, NewFactory(func(v *Vector3) { v.Pad = 1 }))
	unit := add("cUnit", 13, 0, NewRawFactory(16))
	add("MtProperty", 4, 0, NewFactory[int32](nil))

	for _, pair := range [][2]Index{
		{resource, object},
		{texture, resource},
		{model, resource},
		{unit, object},
	} {
		if err := builder.SetParent(pair[0], pair[1]); err != nil {
			return nil, err
		}
	}
	if err := builder.SetLink(texture, model); err != nil {
		return nil, err
	}

	return builder.Build(allocators)
}

func mustBuildFixture() *Forest {
	allocators := alloc.NewRegistry()
	if err := allocators.Register(1, alloc.NewBudget("texture", 128)); err != nil {
		panic(err)
	}
	forest, err := buildFixture(allocators)
	if err != nil {
		panic(err)
	}
	return forest
}
