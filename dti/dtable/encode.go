package dtable

import (
	"github.com/thanhnguyen2187/mt-dti/dti"
	"github.com/thanhnguyen2187/mt-dti/dti/lbytes"
)

func EncodeHeader(header Header) []byte {
	bs := make([]byte, 0, DefaultHeaderSize)
	bs = append(bs, header.MagicNumber...)
	bs = append(bs, lbytes.EncodeInt(header.Version)...)
	bs = append(bs, lbytes.EncodeInt(header.NumEntries)...)
	bs = append(bs, lbytes.EncodeInt(header.NameBlobLength)...)
	return bs
}

func EncodeEntry(entry Entry) []byte {
	bs := make([]byte, 0, DefaultEntrySize)
	bs = append(bs, lbytes.EncodeInt(entry.NameOffset)...)
	bs = append(bs, lbytes.EncodeInt(entry.NextSibling)...)
	bs = append(bs, lbytes.EncodeInt(entry.FirstChild)...)
	bs = append(bs, lbytes.EncodeInt(entry.Parent)...)
	bs = append(bs, lbytes.EncodeInt(entry.Link)...)
	bs = append(bs, lbytes.EncodeUint(uint32(entry.Flags))...)
	bs = append(bs, lbytes.EncodeUint(entry.CRC)...)
	return bs
}

func CalculateBlockLength(numEntries int) int {
	return numEntries * DefaultEntrySize
}

// FromForest lays the forest out as a table, in arena order.
func FromForest(forest *dti.Forest) Table {
	entries := make([]Entry, 0, forest.Len())
	nameOffset := int32(0)
	for _, d := range forest.Descriptors() {
		links := d.Links()
		entries = append(
			entries,
			Entry{
				NameOffset:  nameOffset,
				NextSibling: int32(links.NextSibling),
				FirstChild:  int32(links.FirstChild),
				Parent:      int32(links.Parent),
				Link:        int32(links.Link),
				Flags:       d.Flags(),
				CRC:         d.Hash(),
				Inferences: Inferences{
					Name: d.Name(),
				},
			},
		)
		// +1 to account for the last zero byte
		nameOffset += int32(len(d.Name()) + 1)
	}

	return Table{
		Header: Header{
			MagicNumber:    MagicNumberBytes,
			Version:        Version,
			NumEntries:     int32(len(entries)),
			NameBlobLength: nameOffset,
		},
		Entries: entries,
	}
}

func Encode(table Table) []byte {
	bs := make(
		[]byte, 0,
		DefaultHeaderSize+CalculateBlockLength(len(table.Entries))+int(table.Header.NameBlobLength),
	)
	bs = append(bs, EncodeHeader(table.Header)...)
	for _, entry := range table.Entries {
		bs = append(bs, EncodeEntry(entry)...)
	}
	for _, entry := range table.Entries {
		bs = append(bs, lbytes.EncodeCString(entry.Inferences.Name)...)
	}
	return bs
}

func EncodeForest(forest *dti.Forest) []byte {
	return Encode(FromForest(forest))
}
