package dmanifest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/mt-dti/dti/dhash"
	"gopkg.in/yaml.v3"
)

func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Errorf(`FormatFromPath unknown manifest extension of "%s"`, path)
	}
}

func Decode(bs []byte, format Format) (*Manifest, error) {
	manifest := Manifest{}
	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(bs))
		decoder.KnownFields(true)
		if err := decoder.Decode(&manifest); err != nil {
			return nil, errors.Wrap(err, "Decode error reading YAML")
		}
	case FormatTOML:
		metadata, err := toml.Decode(string(bs), &manifest)
		if err != nil {
			return nil, errors.Wrap(err, "Decode error reading TOML")
		}
		if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("Decode unknown TOML keys %v", undecoded)
		}
	default:
		return nil, errors.Errorf(`Decode unknown format "%s"`, format)
	}
	return &manifest, nil
}

func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, `Load error reading "%s"`, path)
	}
	manifest, err := Decode(bs, format)
	if err != nil {
		return nil, errors.Wrapf(err, `Load error decoding "%s"`, path)
	}
	return manifest, nil
}

// HashOf is the declared hash of spec, or the hash of its name.
func HashOf(spec TypeSpec) uint32 {
	if spec.Hash != nil {
		return *spec.Hash
	}
	return dhash.HashString(spec.Name)
}

// Names lists the type names of m, for extending hash dictionaries.
func (r Manifest) Names() []string {
	names := make([]string, 0, len(r.Types))
	for _, spec := range r.Types {
		names = append(names, spec.Name)
	}
	return names
}
