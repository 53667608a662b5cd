package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrUnreachableCode(t *testing.T) {
	err := ErrUnreachableCode{Caller: "Typed.NewInstance"}

	assert.EqualError(t, err, "Typed.NewInstance: unreachable code reached, a contract was broken upstream")
	assert.ErrorAs(t, error(err), &ErrUnreachableCode{})
}

func TestJSONDumps(t *testing.T) {
	assert.Equal(t, `{"name":"MtObject"}`, JSONDumps(map[string]string{"name": "MtObject"}))
	assert.Contains(t, JSONDumps(func() {}), "JSONDumps error")
}
