package loader

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
)

// jsonReader turns JSON into a YAML node tree so JSON decodes through the
// same code as YAML while keeping object key order.
type jsonReader struct {
	data []byte
	dec  *json.Decoder
}

// jsonNode parses a JSON document. It returns nil for empty input.
func jsonNode(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	r := &jsonReader{data: data, dec: json.NewDecoder(bytes.NewReader(data))}
	r.dec.UseNumber()

	n, err := r.value()
	if err != nil {
		return nil, invalid(err, "parsing JSON")
	}
	if _, err := r.dec.Token(); err != io.EOF {
		return nil, errors.Mark(errors.New("parsing JSON: trailing data after document"), errors.ErrInvalidConfig)
	}
	return n, nil
}

// line is the line of the most recently read token.
func (r *jsonReader) line() int {
	off := min(int(r.dec.InputOffset()), len(r.data))
	return 1 + bytes.Count(r.data[:off], []byte{'\n'})
}

func (r *jsonReader) scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Line: r.line()}
}

func (r *jsonReader) value() (*yaml.Node, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return r.object()
		case '[':
			return r.array()
		}
		return nil, errors.Newf("line %d: unexpected %q", r.line(), v)
	case string:
		return r.scalar("!!str", v), nil
	case json.Number:
		if _, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return r.scalar("!!int", v.String()), nil
		}
		return r.scalar("!!float", v.String()), nil
	case bool:
		return r.scalar("!!bool", strconv.FormatBool(v)), nil
	case nil:
		return r.scalar("!!null", "null"), nil
	}
	return nil, errors.Newf("line %d: unexpected token %v", r.line(), tok)
}

func (r *jsonReader) object() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: r.line()}
	for r.dec.More() {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Newf("line %d: object key %v is not a string", r.line(), tok)
		}
		keyNode := r.scalar("!!str", key)
		val, err := r.value()
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", key)
		}
		n.Content = append(n.Content, keyNode, val)
	}
	// closing brace
	if _, err := r.dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *jsonReader) array() (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: r.line()}
	for r.dec.More() {
		val, err := r.value()
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", len(n.Content))
		}
		n.Content = append(n.Content, val)
	}
	// closing bracket
	if _, err := r.dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}
