// Package loader reads override lists and formatter options from disk.
//
// An override document is either a bare list of override blocks or a
// mapping with an "overrides" list and optional "prettier" formatter
// options. YAML, JSON and TOML are accepted. JSON and YAML keep the order
// of rule maps; TOML input is translated through generic maps and does not.
package loader

import (
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/paths"
	"github.com/thoreinstein/flatlint/internal/translate"
	"github.com/thoreinstein/flatlint/pkg/fileutil"
)

// Format is an input encoding.
type Format string

// Input formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Document keys.
const (
	keyOverrides = "overrides"
	keyPrettier  = "prettier"
)

// Document is a decoded override file.
type Document struct {
	// Path is the file the document was read from, empty for other sources.
	Path      string
	Overrides []lintconfig.OverrideBlock
	// Formatter is nil when the document carries no formatter options.
	Formatter *lintconfig.FormatterOptions
}

// FormatForPath picks the input format from a file extension. Files without
// a known extension, such as .flatlintrc, are read as YAML, which also
// covers most JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	}
	return FormatYAML
}

// LoadFile reads and decodes an override file.
func LoadFile(path string) (*Document, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	doc, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	doc.Path = path
	return doc, nil
}

// Read decodes an override document from r, e.g. standard input.
func Read(r io.Reader, f Format) (*Document, error) {
	data, err := fileutil.ReadAllWithLimit(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, f)
}

// Parse decodes an override document. An empty document yields an empty
// override list.
func Parse(data []byte, f Format) (*Document, error) {
	root, err := parseNode(data, f)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if root == nil {
		return doc, nil
	}

	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&doc.Overrides); err != nil {
			return nil, invalid(err, "decoding overrides")
		}
	case yaml.MappingNode:
		if err := decodeMapping(root, doc); err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig,
			"line %d: document must be a list of overrides or a mapping", root.Line)
	}
	return doc, nil
}

func decodeMapping(root *yaml.Node, doc *Document) error {
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case keyOverrides:
			if val.Kind != yaml.SequenceNode && val.ShortTag() != "!!null" {
				return errors.Wrapf(errors.ErrInvalidConfig, "line %d: overrides must be a list", val.Line)
			}
			if err := val.Decode(&doc.Overrides); err != nil {
				return invalid(err, "decoding overrides")
			}
		case keyPrettier:
			opts, err := decodeFormatter(val)
			if err != nil {
				return err
			}
			doc.Formatter = opts
		default:
			return errors.Wrapf(errors.ErrInvalidConfig, "line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return nil
}

func decodeFormatter(n *yaml.Node) (*lintconfig.FormatterOptions, error) {
	if n.ShortTag() == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "line %d: formatter options must be a mapping", n.Line)
	}
	var opts lintconfig.FormatterOptions
	if err := n.Decode(&opts); err != nil {
		return nil, invalid(err, "decoding formatter options")
	}
	return &opts, nil
}

// parseNode returns the document's root node, or nil for an empty document.
func parseNode(data []byte, f Format) (*yaml.Node, error) {
	switch f {
	case FormatJSON:
		return jsonNode(data)
	case FormatTOML:
		converted, err := translate.TOMLToYAML(data)
		if err != nil {
			return nil, err
		}
		data = converted
	case FormatYAML:
	default:
		return nil, errors.Newf("unknown input format %q", f)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, invalid(err, "parsing YAML")
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

// invalid marks decode errors so callers can map them to user errors.
func invalid(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), errors.ErrInvalidConfig)
}

// Discover finds the nearest override file at or above dir.
// It returns paths.ErrNoMatch when there is none.
func Discover(dir string) (string, error) {
	return paths.FindUp(dir, paths.OverrideFileNames())
}

// DiscoverFormatter finds the nearest formatter options file at or above dir.
func DiscoverFormatter(dir string) (string, error) {
	return paths.FindUp(dir, paths.FormatterFileNames())
}

// LoadFormatterFile reads formatter options from a .prettierrc-style file.
// Options flatlint does not interpret are kept in Extra.
func LoadFormatterFile(path string) (*lintconfig.FormatterOptions, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	root, err := parseNode(data, FormatForPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	if root == nil {
		return &lintconfig.FormatterOptions{}, nil
	}
	opts, err := decodeFormatter(root)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return opts, nil
}
