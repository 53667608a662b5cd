package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/mt-dti/ds"
	"github.com/thanhnguyen2187/mt-dti/dti"
	"github.com/thanhnguyen2187/mt-dti/dti/dhash"
)

type TypeRef struct {
	Name    string
	Hash    uint32
	IsHash  bool
	Display string
}

// ParseTypeRef reads "0x"-prefixed arguments as hashes and anything else as names.
func ParseTypeRef(s string) (TypeRef, error) {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		hash, err := strconv.ParseUint(lower[2:], 16, 32)
		if err != nil {
			return TypeRef{}, errors.Wrapf(err, `ParseTypeRef invalid hash "%s"`, s)
		}
		return TypeRef{Hash: uint32(hash), IsHash: true, Display: s}, nil
	}
	return TypeRef{Name: s, Display: s}, nil
}

func dictionaryOf(forest *dti.Forest) *dhash.Dictionary {
	return dhash.Default.Extend(
		lo.Map(
			forest.Descriptors(),
			func(d *dti.Descriptor, _ int) string {
				return d.Name()
			},
		),
	)
}

func Resolve(forest *dti.Forest, ref TypeRef) (*dti.Descriptor, error) {
	if !ref.IsHash {
		d, ok := forest.ByName(ref.Name)
		if !ok {
			return nil, errors.Errorf(`type "%s" not found`, ref.Name)
		}
		return d, nil
	}
	d, ok := forest.ByHash(ref.Hash)
	if !ok {
		if name, known := dhash.Default.Lookup(ref.Hash); known {
			return nil, errors.Errorf("hash 0x%08X (%s) not found", ref.Hash, name)
		}
		return nil, errors.Errorf("hash 0x%08X not found", ref.Hash)
	}
	return d, nil
}

func resolveArg(forest *dti.Forest, s string) (*dti.Descriptor, error) {
	ref, err := ParseTypeRef(s)
	if err != nil {
		return nil, err
	}
	return Resolve(forest, ref)
}

func nameOrDash(d *dti.Descriptor) string {
	if d == nil {
		return "-"
	}
	return d.Name()
}

func RunTree(cmd TreeCmd, stdout io.Writer) error {
	forest, err := LoadForest(cmd.File)
	if err != nil {
		return err
	}
	if cmd.JSON {
		bs, err := json.MarshalIndent(TreeMap(forest), "", "  ")
		if err != nil {
			return errors.Wrap(err, "RunTree error marshalling JSON")
		}
		_, err = fmt.Fprintln(stdout, string(bs))
		return err
	}

	var writeErr error
	forest.Walk(
		func(d *dti.Descriptor, depth int) bool {
			_, writeErr = fmt.Fprintf(
				stdout, "%s%s (0x%08X, %d bytes)\n",
				strings.Repeat("  ", depth), d.Name(), d.Hash(), d.ByteSize(),
			)
			return writeErr == nil
		},
	)
	return writeErr
}

// TreeMap nests every type under its parent, keeping sibling order.
func TreeMap(forest *dti.Forest) *ds.LinkedHashMap[string, any] {
	var node func(d *dti.Descriptor) *ds.LinkedHashMap[string, any]
	node = func(d *dti.Descriptor) *ds.LinkedHashMap[string, any] {
		lhm := ds.NewLinkedHashMap[string, any]()
		lhm.Put("hash", fmt.Sprintf("0x%08X", d.Hash()))
		lhm.Put("size", d.ByteSize())
		lhm.Put("allocator", d.AllocatorIndex())
		lhm.Put("attr", d.Attr())
		lhm.Put("abstract", d.IsAbstract())
		if children := d.Children(); len(children) > 0 {
			childrenMap := ds.NewLinkedHashMap[string, any]()
			for _, child := range children {
				childrenMap.Put(child.Name(), node(child))
			}
			lhm.Put("children", childrenMap)
		}
		return lhm
	}

	roots := ds.NewLinkedHashMap[string, any]()
	for _, root := range forest.Roots() {
		roots.Put(root.Name(), node(root))
	}
	return roots
}

func RunInspect(cmd InspectCmd, stdout io.Writer) error {
	forest, err := LoadForest(cmd.File)
	if err != nil {
		return err
	}
	d, err := resolveArg(forest, cmd.Type)
	if err != nil {
		return err
	}

	allocatorName := "unregistered"
	if allocator, err := forest.Allocators().Resolve(d.AllocatorIndex()); err == nil {
		allocatorName = allocator.Name()
	}
	hashName := "-"
	if name, ok := dictionaryOf(forest).Lookup(d.Hash()); ok {
		hashName = name
	}
	ancestors := lo.Map(
		d.Ancestors(),
		func(d *dti.Descriptor, _ int) string {
			return d.Name()
		},
	)
	children := lo.Map(
		d.Children(),
		func(d *dti.Descriptor, _ int) string {
			return d.Name()
		},
	)

	table := tablewriter.NewWriter(stdout)
	table.SetHeader([]string{"field", "value"})
	table.SetAutoWrapText(false)
	table.AppendBulk(
		[][]string{
			{"name", d.Name()},
			{"index", strconv.Itoa(int(d.Index()))},
			{"hash", fmt.Sprintf("0x%08X", d.Hash())},
			{"hash name", hashName},
			{"flags", fmt.Sprintf("0x%08X", uint32(d.Flags()))},
			{"byte size", strconv.FormatUint(uint64(d.ByteSize()), 10)},
			{"allocator", fmt.Sprintf("%d (%s)", d.AllocatorIndex(), allocatorName)},
			{"attr", fmt.Sprintf("%03b", d.Attr())},
			{"abstract", strconv.FormatBool(d.IsAbstract())},
			{"parent", nameOrDash(d.Parent())},
			{"first child", nameOrDash(d.FirstChild())},
			{"next sibling", nameOrDash(d.NextSibling())},
			{"link", nameOrDash(d.Link())},
			{"ancestors", strings.Join(ancestors, " > ")},
			{"children", strings.Join(children, ", ")},
		},
	)
	table.Render()
	return nil
}

func RunInherits(cmd InheritsCmd, stdout io.Writer) error {
	forest, err := LoadForest(cmd.File)
	if err != nil {
		return err
	}
	d, err := resolveArg(forest, cmd.Type)
	if err != nil {
		return err
	}
	ancestor, err := ParseTypeRef(cmd.Ancestor)
	if err != nil {
		return err
	}

	var result bool
	if ancestor.IsHash {
		result = d.InheritsFromHash(ancestor.Hash)
	} else {
		result = d.InheritsFromName(ancestor.Name)
	}
	_, err = fmt.Fprintln(stdout, result)
	return err
}

func RunConvert(cmd ConvertCmd, stdout io.Writer) error {
	if !CheckExistence(cmd.From) {
		return errors.Errorf(`source file "%s" does not exist`, cmd.From)
	}
	if CheckExistence(cmd.To) && !cmd.Force {
		return errors.Errorf(
			`destination file "%s" exists, run the command again with --force to overwrite it`,
			cmd.To,
		)
	}
	forest, err := LoadForest(cmd.From)
	if err != nil {
		return err
	}
	if err := SaveForest(forest, cmd.To); err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "Done converting %d types. Please check your result file at: %s\n", forest.Len(), cmd.To)
	return err
}
