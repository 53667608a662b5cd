// Package dmanifest builds forests from hand-written YAML or TOML manifests.
package dmanifest

type (
	Manifest struct {
		Allocators []AllocatorSpec `json:"allocators,omitempty" yaml:"allocators,omitempty" toml:"allocators,omitempty"`
		Types      []TypeSpec      `json:"types" yaml:"types" toml:"types"`
	}
	// AllocatorSpec declares the allocator behind an index. A positive
	// Budget makes it refuse allocations beyond that many bytes.
	AllocatorSpec struct {
		Index  uint32 `json:"index" yaml:"index" toml:"index"`
		Name   string `json:"name" yaml:"name" toml:"name"`
		Budget int64  `json:"budget,omitempty" yaml:"budget,omitempty" toml:"budget,omitempty"`
	}
	// TypeSpec declares one descriptor. Size is in bytes and is rounded up
	// to a multiple of 4. A missing Hash is computed from Name.
	TypeSpec struct {
		Name      string  `json:"name" yaml:"name" toml:"name"`
		Parent    string  `json:"parent,omitempty" yaml:"parent,omitempty" toml:"parent,omitempty"`
		Hash      *uint32 `json:"hash,omitempty" yaml:"hash,omitempty" toml:"hash,omitempty"`
		Size      uint64  `json:"size" yaml:"size" toml:"size"`
		Allocator uint32  `json:"allocator,omitempty" yaml:"allocator,omitempty" toml:"allocator,omitempty"`
		Attr      uint32  `json:"attr,omitempty" yaml:"attr,omitempty" toml:"attr,omitempty"`
		Link      string  `json:"link,omitempty" yaml:"link,omitempty" toml:"link,omitempty"`
		Abstract  bool    `json:"abstract,omitempty" yaml:"abstract,omitempty" toml:"abstract,omitempty"`
	}
	Format string
)

const (
	FormatYAML = Format("yaml")
	FormatTOML = Format("toml")
)
