package config

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// Format identifies a configuration document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name ("yml" is accepted as YAML).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "invalid format %q (must be one of: json, toml, yaml)", s)
}

// DetectFormat picks a format from the file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a configuration document from r.
// It does not validate; call Validate or Resolve on the result.
func Decode(r io.Reader, f Format) (*WarehouseConfig, error) {
	var cfg WarehouseConfig
	switch f {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml")
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", f)
	}
	return &cfg, nil
}

// Load reads and decodes the configuration file at path, choosing the format
// from its extension.
func Load(path string) (*WarehouseConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Decode(f, DetectFormat(path))
}

// Marshal encodes cfg as indented JSON. The encoding is deterministic and is
// used as the cache identity of a configuration.
func Marshal(cfg *WarehouseConfig) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}
