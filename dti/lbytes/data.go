// Package lbytes reads and writes the little-endian primitives binary
// descriptor tables are made of.
package lbytes

import (
	"bytes"
)

type (
	Reader struct {
		bytes.Reader
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)
