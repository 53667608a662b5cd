package dhash

import (
	_ "embed"
	"strings"

	"github.com/samber/lo"
)

//go:embed names.txt
var names string

// Dictionary maps identity hashes back to the names they were computed from.
// When two names collide, the first one wins.
type Dictionary struct {
	nameByHash map[uint32]string
}

var Default = NewDictionary(splitNames(names))

func splitNames(s string) []string {
	namesSlice := lo.Map(
		strings.Split(s, "\n"),
		func(line string, _ int) string {
			return strings.TrimSpace(line)
		},
	)
	return lo.Filter(
		namesSlice,
		func(line string, _ int) bool {
			return len(line) > 0 && !strings.HasPrefix(line, "#")
		},
	)
}

func NewDictionary(names []string) *Dictionary {
	nameByHash := make(map[uint32]string, len(names))
	for _, name := range names {
		hash := HashString(name)
		if _, existed := nameByHash[hash]; !existed {
			nameByHash[hash] = name
		}
	}
	return &Dictionary{
		nameByHash: nameByHash,
	}
}

func (r *Dictionary) Lookup(hash uint32) (string, bool) {
	name, ok := r.nameByHash[hash]
	return name, ok
}

func (r *Dictionary) Len() int {
	return len(r.nameByHash)
}

// Extend returns a new dictionary knowing both r's names and the given ones.
func (r *Dictionary) Extend(names []string) *Dictionary {
	extended := NewDictionary(names)
	for hash, name := range r.nameByHash {
		extended.nameByHash[hash] = name
	}
	return extended
}
