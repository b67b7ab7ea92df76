// Package render encodes a resolved configuration list for the rule engine.
//
// JSON and YAML keep rule order. TOML has no top-level arrays, so the list is
// wrapped in a "configs" table array, and its maps come out sorted.
package render

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/translate"
	"github.com/thoreinstein/flatlint/pkg/fileutil"
)

// Format is an output encoding.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// TOMLKey is the table array the list is stored under in TOML output.
const TOMLKey = "configs"

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat resolves a format name. Matching ignores case and accepts
// "yml" for YAML.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q (valid: json, yaml, toml)", name)
}

// FormatForPath infers the format from a file extension.
func FormatForPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Marshal encodes blocks in format f.
func Marshal(blocks []lintconfig.Block, f Format) ([]byte, error) {
	if blocks == nil {
		blocks = []lintconfig.Block{}
	}
	switch f {
	case FormatJSON:
		return marshalJSON(blocks)
	case FormatYAML:
		return marshalYAML(blocks)
	case FormatTOML:
		return marshalTOML(blocks)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
}

// Write encodes blocks to w.
func Write(w io.Writer, blocks []lintconfig.Block, f Format) error {
	data, err := Marshal(blocks, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}

// WriteFile atomically writes the encoded blocks to path.
func WriteFile(path string, blocks []lintconfig.Block, f Format) error {
	data, err := Marshal(blocks, f)
	if err != nil {
		return err
	}
	return errors.Wrapf(fileutil.WriteOutput(path, data), "writing %s", path)
}

func marshalJSON(blocks []lintconfig.Block) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(blocks); err != nil {
		return nil, errors.Wrap(err, "encoding JSON")
	}
	return buf.Bytes(), nil
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encoding YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding YAML")
	}
	return buf.Bytes(), nil
}

func marshalTOML(blocks []lintconfig.Block) ([]byte, error) {
	data, err := marshalYAML(map[string]any{TOMLKey: blocks})
	if err != nil {
		return nil, err
	}
	out, err := translate.YAMLToTOML(data)
	if err != nil {
		return nil, errors.Wrap(err, "encoding TOML")
	}
	return out, nil
}
