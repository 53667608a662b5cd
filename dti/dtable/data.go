// Package dtable stores a frozen forest as a binary table.
//
//	header   16 bytes   magic "DTI\0", version, entry count, name blob length
//	entries  28 bytes   name offset, next, child, parent, link, flags, crc
//	names    blob       NUL-terminated names
//
// Every integer is little-endian. Relations are entry indexes, -1 for none.
package dtable

import (
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
)

type (
	Header struct {
		MagicNumber    []byte `json:"magic_number"`
		Version        int32  `json:"version"`
		NumEntries     int32  `json:"num_entries"`
		NameBlobLength int32  `json:"name_blob_length"`
	}
	Entry struct {
		NameOffset  int32        `json:"name_offset"`
		NextSibling int32        `json:"next_sibling"`
		FirstChild  int32        `json:"first_child"`
		Parent      int32        `json:"parent"`
		Link        int32        `json:"link"`
		Flags       dflags.Flags `json:"flags"`
		CRC         uint32       `json:"crc"`
		Inferences  Inferences   `json:"inferences"`
	}
	Inferences struct {
		Name string `json:"name"`
	}
	Table struct {
		Header  Header  `json:"header"`
		Entries []Entry `json:"entries"`
	}
)

const (
	DefaultHeaderSize = 16
	DefaultEntrySize  = 28
	Version           = 1
)

var (
	MagicNumberBytes = []byte{'D', 'T', 'I', 0x00}
)
