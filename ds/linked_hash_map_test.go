package ds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedHashMap_Keys(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()

	assert.True(t, len(lhm.Keys()) == 0)

	lhm.Put("MtObject", 1)
	lhm.Put("cResource", 2)
	lhm.Put("MtObject", 3)

	assert.Equal(t, []string{"MtObject", "cResource"}, lhm.Keys())
	assert.Equal(t, 2, lhm.Len())

	value, ok := lhm.Get("MtObject")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestLinkedHashMap_MarshalJSON(t *testing.T) {
	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("rTexture", 1)
	lhm.Put("cResource", 2)

	bs, err := json.Marshal(lhm)
	assert.NoError(t, err)

	assert.Equal(t, `{"rTexture":1,"cResource":2}`, string(bs))
}

func TestLinkedHashMap_MarshalJSONNested(t *testing.T) {
	inner := NewLinkedHashMap[string, any]()
	inner.Put("b", 2)
	inner.Put("a", 1)
	outer := NewLinkedHashMap[string, any]()
	outer.Put("inner", inner)

	bs, err := json.Marshal(outer)
	assert.NoError(t, err)

	assert.Equal(t, `{"inner":{"b":2,"a":1}}`, string(bs))
}
