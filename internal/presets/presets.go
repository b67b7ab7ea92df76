// Package presets supplies the built-in configuration templates the merger
// expands symbolic options into: the base configuration, the React preset,
// the formatter compatibility preset and the formatter plugin.
//
// Templates are embedded YAML parsed once. Every accessor returns a copy, so
// callers may modify what they get without affecting later calls. Plugin
// handles are the exception: the same module always yields the same handle.
package presets

import (
	"bytes"
	"embed"
	"io/fs"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
)

// Preset names accepted by Lookup.
const (
	NameBase           = "base"
	NameReact          = "react"
	NamePrettierCompat = "prettier-compat"
	NamePrettier       = "prettier"
)

// PrettierPluginID is the id the formatter plugin is registered under.
const PrettierPluginID = "prettier"

// File names a preset directory must contain.
const (
	baseFile     = "base.yaml"
	reactFile    = "react.yaml"
	compatFile   = "prettier-compat.yaml"
	prettierFile = "prettier.yaml"
)

//go:embed data/*.yaml
var embedded embed.FS

// Handle is the reference carried by plugins loaded from presets.
type Handle struct {
	Module string
}

// Set is one loaded collection of templates.
type Set struct {
	base                []lintconfig.Block
	react               lintconfig.Block
	compat              lintconfig.Block
	prettier            lintconfig.Plugin
	prettierRecommended *lintconfig.Rules
}

var builtin = sync.OnceValues(func() (*Set, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, errors.Wrap(err, "opening embedded presets")
	}
	return Load(sub)
})

// Builtin returns the templates shipped with flatlint.
func Builtin() *Set {
	s, err := builtin()
	if err != nil {
		// embedded data is covered by tests
		panic(err)
	}
	return s
}

// Names lists the preset names accepted by Lookup.
func Names() []string {
	return []string{NameBase, NameReact, NamePrettierCompat, NamePrettier}
}

type prettierFileData struct {
	Plugin      string            `yaml:"plugin"`
	Recommended *lintconfig.Rules `yaml:"recommended"`
}

// Load parses a preset directory. It must contain base.yaml, react.yaml,
// prettier-compat.yaml and prettier.yaml.
func Load(fsys fs.FS) (*Set, error) {
	handles := make(map[string]*Handle)
	s := &Set{}

	if err := decodeFile(fsys, baseFile, &s.base); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, reactFile, &s.react); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, compatFile, &s.compat); err != nil {
		return nil, err
	}
	var p prettierFileData
	if err := decodeFile(fsys, prettierFile, &p); err != nil {
		return nil, err
	}
	if p.Plugin == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%s: plugin is required", prettierFile)
	}
	s.prettier = handleFor(handles, p.Plugin)
	s.prettierRecommended = p.Recommended
	if s.prettierRecommended == nil {
		s.prettierRecommended = lintconfig.NewRules()
	}

	for i := range s.base {
		bindHandles(handles, &s.base[i])
	}
	bindHandles(handles, &s.react)
	bindHandles(handles, &s.compat)

	return s, nil
}

// LoadDir parses a preset directory on disk.
func LoadDir(dir string) (*Set, error) {
	return Load(os.DirFS(dir))
}

func decodeFile(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return errors.Wrapf(err, "reading preset %s", name)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return errors.Wrapf(errors.Mark(err, errors.ErrInvalidConfig), "parsing preset %s", name)
	}
	return nil
}

func handleFor(handles map[string]*Handle, module string) lintconfig.Plugin {
	h, ok := handles[module]
	if !ok {
		h = &Handle{Module: module}
		handles[module] = h
	}
	return lintconfig.NewPlugin(module, h)
}

func bindHandles(handles map[string]*Handle, b *lintconfig.Block) {
	for id, p := range b.Plugins {
		b.Plugins[id] = handleFor(handles, p.Module)
	}
}

// Base returns the base configuration list.
func (s *Set) Base() []lintconfig.Block {
	return lintconfig.CloneBlocks(s.base)
}

// React returns the React preset block. It has no name or file matcher; the
// merger assigns both.
func (s *Set) React() lintconfig.Block {
	return s.react.Clone()
}

// PrettierCompat returns the block that disables formatter-conflicting rules.
func (s *Set) PrettierCompat() lintconfig.Block {
	return s.compat.Clone()
}

// PrettierPlugin returns the formatter plugin handle.
func (s *Set) PrettierPlugin() lintconfig.Plugin {
	return s.prettier
}

// PrettierRecommended returns the formatter plugin's recommended rules.
func (s *Set) PrettierRecommended() *lintconfig.Rules {
	return s.prettierRecommended.Clone()
}

// BaseRule returns the last setting of id across the base list.
func (s *Set) BaseRule(id string) (lintconfig.RuleSetting, bool) {
	return LastRule(s.base, id)
}

// LastRule returns the last setting of id in blocks, in list order.
func LastRule(blocks []lintconfig.Block, id string) (lintconfig.RuleSetting, bool) {
	for _, b := range slices.Backward(blocks) {
		if s, ok := b.Rules.Get(id); ok {
			return s.Clone(), true
		}
	}
	return lintconfig.RuleSetting{}, false
}

// Lookup returns the named preset as a block list.
func (s *Set) Lookup(name string) ([]lintconfig.Block, error) {
	switch name {
	case NameBase:
		return s.Base(), nil
	case NameReact:
		return []lintconfig.Block{s.React()}, nil
	case NamePrettierCompat:
		return []lintconfig.Block{s.PrettierCompat()}, nil
	case NamePrettier:
		return []lintconfig.Block{{
			Plugins: map[string]lintconfig.Plugin{PrettierPluginID: s.PrettierPlugin()},
			Rules:   s.PrettierRecommended(),
		}}, nil
	}
	return nil, errors.Wrapf(errors.ErrUnknownPreset, "%q (valid: %v)", name, Names())
}
