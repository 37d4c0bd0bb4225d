package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/engine"
	"github.com/matzehuels/parcelview/pkg/errors"
	"github.com/matzehuels/parcelview/pkg/geom"
)

// Cart file formats.
const (
	FormatJSON = "json"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

type cartFile struct {
	Items []catalog.Request `json:"items" toml:"items" yaml:"items"`
}

// FormatFromPath returns the cart format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported cart file %q (want .json, .toml, .yaml)", filepath.Base(path))
	}
}

// ImportCart reads a cart file, picking the decoder from the extension.
func ImportCart(path string) ([]catalog.Request, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCart(f, format)
}

// ReadCart decodes a cart in the given format from r. ReadCart does not
// close r.
func ReadCart(r io.Reader, format string) ([]catalog.Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var cf cartFile
	switch format {
	case FormatJSON:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			err = json.Unmarshal(trimmed, &cf.Items)
		} else {
			err = json.Unmarshal(trimmed, &cf)
		}
	case FormatTOML:
		err = toml.Unmarshal(data, &cf)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cf)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown cart format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s cart", format)
	}

	for _, it := range cf.Items {
		if err := errors.ValidateQuantity(fmt.Sprint(it.ProductID), it.Quantity); err != nil {
			return nil, err
		}
	}
	return cf.Items, nil
}

// ImportPlacements reads a placements JSON file.
func ImportPlacements(path string) ([]geom.Placement, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPlacements(f)
}

// ReadPlacements decodes placements JSON from r. ReadPlacements does not
// close r.
func ReadPlacements(r io.Reader) ([]geom.Placement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read placements: %w", err)
	}
	return engine.DecodePlacements(data)
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", path)
		}
		return nil, err
	}
	return f, nil
}
