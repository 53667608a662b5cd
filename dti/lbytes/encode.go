package lbytes

import (
	"encoding/binary"
)

func EncodeInt(value int32) []byte {
	return EncodeUint(uint32(value))
}

func EncodeUint(value uint32) []byte {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, value)
	return bs
}

// EncodeCString appends the terminating zero byte.
func EncodeCString(s string) []byte {
	bs := make([]byte, 0, len(s)+1)
	bs = append(bs, s...)
	return append(bs, 0)
}
