package lintconfig

import (
	"bytes"
	"encoding/json"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
)

const (
	tagNull = "!!null"
	tagBool = "!!bool"
	tagInt  = "!!int"
	tagStr  = "!!str"
)

func invalidNode(n *yaml.Node, format string, args ...any) error {
	return errors.Wrapf(errors.ErrInvalidConfig, "line %d: "+format, append([]any{n.Line}, args...)...)
}

// UnmarshalYAML accepts a single pattern or a list of patterns.
func (p *Patterns) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*p = Patterns{n.Value}
		return nil
	case yaml.SequenceNode:
		out := make(Patterns, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return invalidNode(c, "file pattern must be a string")
			}
			out = append(out, c.Value)
		}
		*p = out
		return nil
	default:
		return invalidNode(n, "file matcher must be a string or a list of strings")
	}
}

// UnmarshalYAML accepts severity names or their numeric forms 0, 1 and 2.
func (s *Severity) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return invalidNode(n, "severity must be a scalar")
	}
	if n.ShortTag() == tagInt {
		switch n.Value {
		case "0":
			*s = SeverityOff
		case "1":
			*s = SeverityWarn
		case "2":
			*s = SeverityError
		default:
			return invalidNode(n, "invalid severity %s", n.Value)
		}
		return nil
	}
	sev := Severity(n.Value)
	if !sev.Valid() {
		return invalidNode(n, "invalid severity %q", n.Value)
	}
	*s = sev
	return nil
}

// UnmarshalYAML accepts a bare severity or a [severity, options...] list.
func (s *RuleSetting) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*s = RuleSetting{}
		return n.Decode(&s.Severity)
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return invalidNode(n, "rule setting list must start with a severity")
		}
		var out RuleSetting
		if err := n.Content[0].Decode(&out.Severity); err != nil {
			return err
		}
		for _, c := range n.Content[1:] {
			var v any
			if err := c.Decode(&v); err != nil {
				return errors.Wrap(err, "decoding rule option")
			}
			out.Options = append(out.Options, v)
		}
		*s = out
		return nil
	default:
		return invalidNode(n, "rule setting must be a severity or a list")
	}
}

func (s RuleSetting) encoded() any {
	if len(s.Options) == 0 {
		return string(s.Severity)
	}
	return append([]any{string(s.Severity)}, s.Options...)
}

// MarshalYAML encodes a bare severity when there are no options.
func (s RuleSetting) MarshalYAML() (any, error) {
	return s.encoded(), nil
}

// MarshalJSON encodes a bare severity when there are no options.
func (s RuleSetting) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.encoded())
}

// UnmarshalYAML keeps the document order of rule ids.
func (r *Rules) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return invalidNode(n, "rules must be a mapping")
	}
	*r = Rules{byID: make(map[string]RuleSetting, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		var s RuleSetting
		if err := n.Content[i+1].Decode(&s); err != nil {
			return errors.Wrapf(err, "rule %q", n.Content[i].Value)
		}
		r.Set(n.Content[i].Value, s)
	}
	return nil
}

// MarshalYAML emits rules in insertion order.
func (r *Rules) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for id, s := range r.All() {
		var v yaml.Node
		if err := v.Encode(s); err != nil {
			return nil, errors.Wrapf(err, "encoding rule %q", id)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: id}, &v)
	}
	return node, nil
}

// MarshalJSON emits rules in insertion order.
func (r *Rules) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for id, s := range r.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(s)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding rule %q", id)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML reads a plugin given by its module specifier.
func (p *Plugin) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != tagStr {
		return invalidNode(n, "plugin must be a module name")
	}
	*p = Plugin{Module: n.Value}
	return nil
}

// MarshalYAML writes the module specifier.
func (p Plugin) MarshalYAML() (any, error) {
	return p.Module, nil
}

// MarshalJSON writes the module specifier.
func (p Plugin) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Module)
}

// UnmarshalYAML accepts a boolean or an integer width.
func (s *Space) UnmarshalYAML(n *yaml.Node) error {
	switch n.ShortTag() {
	case tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		*s = SpaceEnabled(b)
	case tagInt:
		var w int
		if err := n.Decode(&w); err != nil {
			return err
		}
		*s = SpaceWidth(w)
	default:
		return invalidNode(n, "space must be a boolean or a number, got %q", n.Value)
	}
	return nil
}

// MarshalYAML writes the width when numeric, else the boolean.
func (s Space) MarshalYAML() (any, error) {
	if w, ok := s.Width(); ok {
		return w, nil
	}
	return s.enabled, nil
}

// UnmarshalYAML accepts true, false or "compat".
func (m *PrettierMode) UnmarshalYAML(n *yaml.Node) error {
	switch {
	case n.ShortTag() == tagBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		if b {
			*m = PrettierEnabled
		} else {
			*m = PrettierDisabled
		}
	case n.ShortTag() == tagStr && n.Value == string(PrettierCompat):
		*m = PrettierCompat
	default:
		return invalidNode(n, "prettier must be a boolean or \"compat\", got %q", n.Value)
	}
	return nil
}

// MarshalYAML writes the mode the way it is declared.
func (m PrettierMode) MarshalYAML() (any, error) {
	switch m {
	case PrettierEnabled:
		return true, nil
	case PrettierDisabled:
		return false, nil
	}
	return string(m), nil
}

// UnmarshalYAML decodes an override block, recording every declared key.
// Keys set to null are declared but carry no value.
func (o *OverrideBlock) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return invalidNode(n, "override block must be a mapping")
	}
	*o = OverrideBlock{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, val := n.Content[i], n.Content[i+1]
		key := keyNode.Value
		if !slices.Contains(overrideKeys, key) {
			return invalidNode(keyNode, "unknown key %q", key)
		}
		o.Declare(key)
		if val.ShortTag() == tagNull {
			continue
		}
		if err := o.decodeField(key, val); err != nil {
			return errors.Wrapf(err, "decoding %q", key)
		}
	}
	return nil
}

func (o *OverrideBlock) decodeField(key string, val *yaml.Node) error {
	switch key {
	case KeyName:
		return val.Decode(&o.Name)
	case KeyFiles:
		return val.Decode(&o.Files)
	case KeyIgnores:
		return val.Decode(&o.Ignores)
	case KeyRules:
		return val.Decode(&o.Rules)
	case KeyPlugins:
		if val.Kind != yaml.MappingNode {
			return invalidNode(val, "plugins must be a mapping")
		}
		return val.Decode(&o.Plugins)
	case KeySpace:
		var s Space
		if err := val.Decode(&s); err != nil {
			return err
		}
		o.Space = &s
	case KeySemicolon, KeyReact:
		if val.ShortTag() != tagBool {
			return invalidNode(val, "%s must be a boolean", key)
		}
		var b bool
		if err := val.Decode(&b); err != nil {
			return err
		}
		if key == KeySemicolon {
			o.Semicolon = &b
		} else {
			o.React = &b
		}
	case KeyPrettier:
		var m PrettierMode
		if err := val.Decode(&m); err != nil {
			return err
		}
		o.Prettier = &m
	}
	return nil
}

// MarshalYAML writes the declared keys; keys declared as null are written as
// null.
func (o OverrideBlock) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range o.Keys() {
		var v yaml.Node
		if o.DeclaredNull(key) {
			v = yaml.Node{Kind: yaml.ScalarNode, Tag: tagNull, Value: "null"}
		} else if err := v.Encode(o.fieldValue(key)); err != nil {
			return nil, errors.Wrapf(err, "encoding %q", key)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: tagStr, Value: key}, &v)
	}
	return node, nil
}

func (o OverrideBlock) fieldValue(key string) any {
	switch key {
	case KeyName:
		return o.Name
	case KeyFiles:
		return []string(o.Files)
	case KeyIgnores:
		return []string(o.Ignores)
	case KeyRules:
		return o.Rules
	case KeyPlugins:
		return o.Plugins
	case KeySpace:
		return *o.Space
	case KeySemicolon:
		return *o.Semicolon
	case KeyPrettier:
		return *o.Prettier
	case KeyReact:
		return *o.React
	}
	return nil
}
