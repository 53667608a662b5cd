package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/thanhnguyen2187/mt-dti/dti"
	"github.com/thanhnguyen2187/mt-dti/dti/dmanifest"
	"github.com/thanhnguyen2187/mt-dti/dti/dtable"
)

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// IsTablePath reports whether path names a binary table rather than a manifest.
func IsTablePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dti", ".bin":
		return true
	default:
		return false
	}
}

// LoadForest reads a binary table when the file starts with the table's
// magic number and a manifest otherwise.
func LoadForest(path string) (*dti.Forest, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, `LoadForest error reading "%s"`, path)
	}
	if dtable.IsValidMagicNumber(bs) {
		logrus.Debugf(`reading "%s" as a binary table`, path)
		forest, err := dtable.DecodeForest(bs, dtable.RawFactories, nil)
		if err != nil {
			return nil, errors.Wrapf(err, `LoadForest error decoding "%s"`, path)
		}
		return forest, nil
	}

	format, err := dmanifest.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	logrus.Debugf(`reading "%s" as a %s manifest`, path, format)
	manifest, err := dmanifest.Decode(bs, format)
	if err != nil {
		return nil, errors.Wrapf(err, `LoadForest error decoding "%s"`, path)
	}
	return dmanifest.Build(*manifest, nil)
}

func SaveForest(forest *dti.Forest, path string) error {
	var bs []byte
	if IsTablePath(path) {
		bs = dtable.EncodeForest(forest)
	} else {
		format, err := dmanifest.FormatFromPath(path)
		if err != nil {
			return err
		}
		bs, err = dmanifest.Encode(dmanifest.FromForest(forest), format)
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, bs, 0644); err != nil {
		return errors.Wrapf(err, `SaveForest error writing "%s"`, path)
	}
	return nil
}
