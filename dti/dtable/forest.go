package dtable

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/dti"
	"github.com/thanhnguyen2187/mt-dti/dti/alloc"
)

// FactoryFunc picks the factory of a decoded entry. Returning nil makes the
// descriptor abstract.
type FactoryFunc func(entry Entry) dti.Factory

// RawFactories gives every entry with a non-zero size a byte-buffer factory.
func RawFactories(entry Entry) dti.Factory {
	if entry.Flags.ByteSize() == 0 {
		return nil
	}
	return dti.NewRawFactory(entry.Flags.ByteSize())
}

// Forest rebuilds the forest a table was made from. Links are taken as
// stored and checked by dti.Builder.Build.
func (r Table) Forest(factories FactoryFunc, allocators *alloc.Registry) (*dti.Forest, error) {
	if factories == nil {
		factories = RawFactories
	}
	builder := dti.NewBuilder()
	for _, entry := range r.Entries {
		builder.Add(entry.Inferences.Name, entry.CRC, entry.Flags, factories(entry))
	}
	for i, entry := range r.Entries {
		links := dti.Links{
			Parent:      dti.Index(entry.Parent),
			FirstChild:  dti.Index(entry.FirstChild),
			NextSibling: dti.Index(entry.NextSibling),
			Link:        dti.Index(entry.Link),
		}
		if err := builder.SetLinks(dti.Index(i), links); err != nil {
			return nil, errors.Wrapf(err, "Forest error at entry %d", i)
		}
	}

	forest, err := builder.Build(allocators)
	if err != nil {
		return nil, errors.Wrap(err, "Forest error")
	}
	return forest, nil
}

func DecodeForest(bs []byte, factories FactoryFunc, allocators *alloc.Registry) (*dti.Forest, error) {
	table, err := Decode(bs)
	if err != nil {
		return nil, err
	}
	return table.Forest(factories, allocators)
}
