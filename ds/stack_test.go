package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Peek(t *testing.T) {
	type T struct {
		Index int
		Depth int
	}
	stack := NewStack[T]()
	stack.Push(
		T{
			Index: 1,
			Depth: 2,
		},
	)

	last := stack.Peek()

	assert.Equal(t, 1, last.Index)
	assert.Equal(t, 2, last.Depth)
	assert.Equal(t, 1, stack.Len())
}

func TestStack_Pop(t *testing.T) {
	stack := NewStack[int]()
	stack.Push(1)
	stack.Push(2)

	assert.Equal(t, 2, stack.Pop())
	assert.Equal(t, 1, stack.Pop())
	assert.True(t, stack.IsEmpty())
}
