package dtable

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/mt-dti/ds"
	"github.com/thanhnguyen2187/mt-dti/dti/lbytes"
)

func IsValidMagicNumber(bs []byte) bool {
	return len(bs) >= len(MagicNumberBytes) &&
		bytes.Equal(bs[:len(MagicNumberBytes)], MagicNumberBytes)
}

func createMagicNumberReadFunction(reader *lbytes.Reader) lbytes.ReadFunction {
	return func() (any, error) {
		magicNumberBytes, err := reader.ReadBytes(len(MagicNumberBytes))
		if err != nil {
			return nil, err
		}
		if !IsValidMagicNumber(magicNumberBytes) {
			msg := fmt.Sprintf(
				`invalid magic number: expected "%v", got "%v"`,
				MagicNumberBytes, magicNumberBytes,
			)
			return nil, errors.New(msg)
		}
		return magicNumberBytes, nil
	}
}

func DecodeHeader(reader *lbytes.Reader) (*Header, error) {
	readMagicNumber := createMagicNumberReadFunction(reader)
	readInt := lbytes.CreateIntReadFunction(reader)

	headerInstructions := []lbytes.Instruction{
		{Key: "magic_number", ReadFunction: readMagicNumber},
		{Key: "version", ReadFunction: readInt},
		{Key: "num_entries", ReadFunction: readInt},
		{Key: "name_blob_length", ReadFunction: readInt},
	}
	header, err := lbytes.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeHeader error")
	}
	if header.Version != Version {
		return nil, errors.Errorf("DecodeHeader unsupported version %d", header.Version)
	}
	if header.NumEntries < 0 || header.NameBlobLength < 0 {
		return nil, errors.Errorf(
			"DecodeHeader negative lengths: %d entries, %d name bytes",
			header.NumEntries, header.NameBlobLength,
		)
	}
	need := int64(header.NumEntries)*DefaultEntrySize + int64(header.NameBlobLength)
	if need > int64(reader.Len()) {
		return nil, errors.Errorf(
			"DecodeHeader %d entries and %d name bytes need %d bytes, %d left",
			header.NumEntries, header.NameBlobLength, need, reader.Len(),
		)
	}
	return header, nil
}

func DecodeEntry(reader *lbytes.Reader) (*Entry, error) {
	readInt := lbytes.CreateIntReadFunction(reader)
	readUint := lbytes.CreateUintReadFunction(reader)

	entryInstructions := []lbytes.Instruction{
		{Key: "name_offset", ReadFunction: readInt},
		{Key: "next_sibling", ReadFunction: readInt},
		{Key: "first_child", ReadFunction: readInt},
		{Key: "parent", ReadFunction: readInt},
		{Key: "link", ReadFunction: readInt},
		{Key: "flags", ReadFunction: readUint},
		{Key: "crc", ReadFunction: readUint},
	}
	entry, err := lbytes.ExecuteInstructions[Entry](entryInstructions)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeEntry error")
	}
	return entry, nil
}

func DecodeBlock(reader *lbytes.Reader, numEntries int) ([]Entry, error) {
	entries := make([]Entry, 0, lo.Clamp(numEntries, 0, reader.Len()/DefaultEntrySize))
	for i := 0; i < numEntries; i++ {
		entry, err := DecodeEntry(reader)
		if err != nil {
			return nil, errors.Wrapf(err, "DecodeBlock error at entry %d", i)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// InferNames resolves every entry's name offset against the name blob.
func InferNames(entries []Entry, nameBlob []byte) ([]Entry, error) {
	entriesCopy := make([]Entry, len(entries))
	copy(entriesCopy, entries)
	for i := range entriesCopy {
		name, err := lbytes.CString(nameBlob, int(entriesCopy[i].NameOffset))
		if err != nil {
			return nil, errors.Wrapf(err, `InferNames error at entry %d "%s"`, i, ds.JSONDumps(entriesCopy[i]))
		}
		entriesCopy[i].Inferences.Name = name
	}
	return entriesCopy, nil
}

func Decode(bs []byte) (*Table, error) {
	reader := lbytes.NewBytesReader(bs)
	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "Decode error")
	}
	entries, err := DecodeBlock(reader, int(header.NumEntries))
	if err != nil {
		return nil, errors.Wrap(err, "Decode error")
	}
	nameBlob, err := reader.ReadBytes(int(header.NameBlobLength))
	if err != nil {
		return nil, errors.Wrap(err, "Decode error reading name blob")
	}
	if reader.Len() != 0 {
		return nil, errors.Errorf("Decode %d trailing bytes", reader.Len())
	}
	entries, err = InferNames(entries, nameBlob)
	if err != nil {
		return nil, errors.Wrap(err, "Decode error")
	}

	return &Table{
		Header:  *header,
		Entries: entries,
	}, nil
}
