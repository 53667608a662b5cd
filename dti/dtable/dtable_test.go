package dtable

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhnguyen2187/mt-dti/ds"
	"github.com/thanhnguyen2187/mt-dti/dti"
	"github.com/thanhnguyen2187/mt-dti/dti/dflags"
	"github.com/thanhnguyen2187/mt-dti/dti/dhash"
)

func buildForest(t *testing.T) *dti.Forest {
	builder := dti.NewBuilder()
	object := builder.Add("MtObject", dhash.HashString("MtObject"), dflags.MustPack(2, 0, 0), nil)
	resource := builder.Add("cResource", dhash.HashString("cResource"), dflags.MustPack(6, 0, 1), nil)
	texture := builder.Add("rTexture", dhash.HashString("rTexture"), dflags.MustPack(16, 0, 5), dti.NewRawFactory(64))
	unit := builder.Add("cUnit", dhash.HashString("cUnit"), dflags.MustPack(4, 7, 0), dti.NewRawFactory(16))
	require.NoError(t, builder.SetParent(resource, object))
	require.NoError(t, builder.SetParent(texture, resource))
	require.NoError(t, builder.SetParent(unit, object))
	require.NoError(t, builder.SetLink(unit, texture))
	forest, err := builder.Build(nil)
	require.NoError(t, err)
	return forest
}

func TestEncodeEntry_Layout(t *testing.T) {
	entry := Entry{
		NameOffset:  9,
		NextSibling: -1,
		FirstChild:  2,
		Parent:      0,
		Link:        -1,
		Flags:       dflags.MustPack(6, 0, 1),
		CRC:         0x5CDD1F19,
	}

	assert.Equal(
		t,
		[]byte{
			9, 0, 0, 0,
			0xFF, 0xFF, 0xFF, 0xFF,
			2, 0, 0, 0,
			0, 0, 0, 0,
			0xFF, 0xFF, 0xFF, 0xFF,
			6, 0, 0, 0x20,
			0x19, 0x1F, 0xDD, 0x5C,
		},
		EncodeEntry(entry),
	)
}

func TestEncode_Layout(t *testing.T) {
	forest := buildForest(t)
	bs := EncodeForest(forest)

	assert.Len(t, bs, DefaultHeaderSize+CalculateBlockLength(4)+len("MtObject\x00cResource\x00rTexture\x00cUnit\x00"))
	assert.True(t, IsValidMagicNumber(bs))
	assert.Equal(t, "MtObject\x00cResource\x00rTexture\x00cUnit\x00", string(bs[DefaultHeaderSize+CalculateBlockLength(4):]))
}

func TestRoundTrip(t *testing.T) {
	forest := buildForest(t)

	decoded, err := DecodeForest(EncodeForest(forest), nil, nil)
	require.NoError(t, err)

	require.Equal(t, forest.Len(), decoded.Len())
	lo.ForEach(
		lo.Zip2(forest.Descriptors(), decoded.Descriptors()),
		func(tuple lo.Tuple2[*dti.Descriptor, *dti.Descriptor], _ int) {
			expected := tuple.A
			actual := tuple.B
			assert.Equal(t, expected.Name(), actual.Name())
			assert.Equal(t, expected.Hash(), actual.Hash())
			assert.Equal(t, expected.Flags(), actual.Flags())
			assert.Equal(t, expected.Links(), actual.Links())
			assert.Equal(t, expected.IsAbstract(), actual.IsAbstract())
		},
	)

	texture, ok := decoded.ByName("rTexture")
	require.True(t, ok)
	assert.True(t, texture.InheritsFromName("MtObject"))
	instance, err := texture.NewInstance()
	require.NoError(t, err)
	assert.Len(t, instance, 64)
}

func TestDecode_Errors(t *testing.T) {
	valid := EncodeForest(buildForest(t))
	tests := map[string][]byte{
		"empty":          {},
		"bad magic":      append([]byte{'M', 'T', 0, 0}, valid[4:]...),
		"truncated":      valid[:len(valid)-3],
		"trailing bytes": append(append([]byte{}, valid...), 0),
	}
	for name, bs := range tests {
		_, err := Decode(bs)
		assert.Error(t, err, name)
	}
}

func TestDecode_LengthsPastTheInput(t *testing.T) {
	headers := []Header{
		{NumEntries: 0x7FFFFFFF},
		{NameBlobLength: 0x7FFFFFF0},
		{NumEntries: 1, NameBlobLength: 1},
	}
	for _, header := range headers {
		header.MagicNumber = MagicNumberBytes
		header.Version = Version

		_, err := Decode(EncodeHeader(header))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "left", ds.JSONDumps(header))
	}
}

func TestDecode_BadVersion(t *testing.T) {
	header := EncodeHeader(Header{MagicNumber: MagicNumberBytes, Version: 2})

	_, err := Decode(header)
	assert.Error(t, err)
}

func TestDecode_BadNameOffset(t *testing.T) {
	table := FromForest(buildForest(t))
	table.Entries[1].NameOffset = 1000

	_, err := Decode(Encode(table))
	assert.Error(t, err)
}

func TestTable_ForestRejectsBrokenLinks(t *testing.T) {
	table := FromForest(buildForest(t))
	table.Entries[2].Parent = 3

	decoded, err := Decode(Encode(table))
	require.NoError(t, err)
	_, err = decoded.Forest(nil, nil)
	assert.Error(t, err)
}

func TestTable_ForestFactories(t *testing.T) {
	table := FromForest(buildForest(t))

	forest, err := table.Forest(
		func(entry Entry) dti.Factory {
			if entry.Inferences.Name == "cUnit" {
				return dti.NewFactory[[4]int32](nil)
			}
			return nil
		},
		nil,
	)
	require.NoError(t, err)

	unit, _ := forest.ByName("cUnit")
	_, err = dti.As[[4]int32](unit)
	assert.NoError(t, err)
	texture, _ := forest.ByName("rTexture")
	assert.True(t, texture.IsAbstract())
}
