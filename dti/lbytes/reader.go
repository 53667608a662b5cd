package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

func (b *Reader) ReadInt() (int32, error) {
	result, err := b.ReadUint()
	return int32(result), err
}

func (b *Reader) ReadUint() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	// lengths often come from the input itself, so check them before allocating
	if n < 0 || n > b.Len() {
		return nil, errors.Wrapf(
			io.ErrUnexpectedEOF, "ReadBytes %d bytes at offset %d with %d left",
			n, b.Offset(), b.Len(),
		)
	}
	bs := make([]byte, n)
	// return early so that reading nothing at the end of the input is not an EOF
	if n == 0 {
		return bs, nil
	}
	if _, err := io.ReadFull(b, bs); err != nil {
		return nil, errors.Wrapf(err, "ReadBytes error reading %d bytes at offset %d", n, b.Offset())
	}
	return bs, nil
}

// Offset is the position of the next byte to be read.
func (b *Reader) Offset() int64 {
	return b.Size() - int64(b.Len())
}

// CString reads the NUL-terminated string starting at offset of bs
// without moving any reader.
func CString(bs []byte, offset int) (string, error) {
	if offset < 0 || offset >= len(bs) {
		return "", errors.Errorf("CString offset %d out of %d bytes", offset, len(bs))
	}
	end := bytes.IndexByte(bs[offset:], 0)
	if end < 0 {
		return "", errors.Errorf("CString string at offset %d is not terminated", offset)
	}
	return string(bs[offset : offset+end]), nil
}
