package lintconfig

import (
	"iter"
	"maps"
	"slices"
	"strconv"
)

// Severity is the enforcement level of a rule.
type Severity string

// Severity values understood by the rule engine.
const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true
	}
	return false
}

// RuleSetting is a rule's severity plus its ordered options.
type RuleSetting struct {
	Severity Severity
	Options  []any
}

// Rule builds a RuleSetting.
func Rule(severity Severity, options ...any) RuleSetting {
	return RuleSetting{Severity: severity, Options: options}
}

// Off is shorthand for a disabled rule.
func Off() RuleSetting {
	return RuleSetting{Severity: SeverityOff}
}

// Clone returns a copy whose option slice can be modified independently.
// Option values themselves are shared.
func (s RuleSetting) Clone() RuleSetting {
	return RuleSetting{Severity: s.Severity, Options: slices.Clone(s.Options)}
}

// Rules is an insertion-ordered mapping from rule id to setting.
//
// Setting an id that is already present replaces its value without moving it,
// a new id is appended. A nil *Rules means "no rules key".
type Rules struct {
	ids  []string
	byID map[string]RuleSetting
}

// NewRules returns an empty rule map.
func NewRules() *Rules {
	return &Rules{byID: make(map[string]RuleSetting)}
}

// RulesOf builds a rule map from entries, preserving their order.
func RulesOf(entries ...RuleEntry) *Rules {
	r := NewRules()
	for _, e := range entries {
		r.Set(e.ID, e.Setting)
	}
	return r
}

// RuleEntry is one id/setting pair.
type RuleEntry struct {
	ID      string
	Setting RuleSetting
}

// Set assigns a setting to id.
func (r *Rules) Set(id string, setting RuleSetting) {
	if r.byID == nil {
		r.byID = make(map[string]RuleSetting)
	}
	if _, ok := r.byID[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.byID[id] = setting
}

// Get returns the setting for id.
func (r *Rules) Get(id string) (RuleSetting, bool) {
	if r == nil {
		return RuleSetting{}, false
	}
	s, ok := r.byID[id]
	return s, ok
}

// Len returns the number of rules. It is safe on a nil receiver.
func (r *Rules) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ids)
}

// IDs returns the rule ids in insertion order.
func (r *Rules) IDs() []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.ids)
}

// All iterates rules in insertion order.
func (r *Rules) All() iter.Seq2[string, RuleSetting] {
	return func(yield func(string, RuleSetting) bool) {
		if r == nil {
			return
		}
		for _, id := range r.ids {
			if !yield(id, r.byID[id]) {
				return
			}
		}
	}
}

// Last returns the most recently inserted rule.
func (r *Rules) Last() (string, RuleSetting, bool) {
	if r.Len() == 0 {
		return "", RuleSetting{}, false
	}
	id := r.ids[len(r.ids)-1]
	return id, r.byID[id], true
}

// Merge sets every rule of other onto r in other's order.
func (r *Rules) Merge(other *Rules) {
	for id, s := range other.All() {
		r.Set(id, s)
	}
}

// Clone returns a deep copy of the map structure. Nil stays nil.
func (r *Rules) Clone() *Rules {
	if r == nil {
		return nil
	}
	out := &Rules{
		ids:  slices.Clone(r.ids),
		byID: make(map[string]RuleSetting, len(r.byID)),
	}
	for id, s := range r.byID {
		out.byID[id] = s.Clone()
	}
	return out
}

// Patterns is an ordered set of glob patterns used as a file matcher.
// A nil Patterns means the matcher is absent.
type Patterns []string

// Clone copies the pattern list, keeping nil as nil.
func (p Patterns) Clone() Patterns {
	if p == nil {
		return nil
	}
	return slices.Clone(p)
}

// Plugin is an opaque handle to a rule-engine plugin. Module names the
// package that provides it; the reference is carried but never inspected.
type Plugin struct {
	Module string
	ref    any
}

// NewPlugin returns a handle for module carrying ref.
func NewPlugin(module string, ref any) Plugin {
	return Plugin{Module: module, ref: ref}
}

// Ref returns the opaque reference supplied to NewPlugin.
func (p Plugin) Ref() any {
	return p.ref
}

// DefaultIndentWidth is the indent used when space is enabled without a width.
const DefaultIndentWidth = 2

// Space is the value of the space style option: a boolean or an explicit
// indent width.
type Space struct {
	enabled bool
	width   int
	numeric bool
}

// SpaceEnabled returns a boolean space option.
func SpaceEnabled(on bool) Space {
	return Space{enabled: on}
}

// SpaceWidth returns a numeric space option.
func SpaceWidth(n int) Space {
	return Space{enabled: n != 0, width: n, numeric: true}
}

// Truthy reports whether spaces are requested. A numeric zero is not truthy.
func (s Space) Truthy() bool {
	return s.enabled
}

// Disabled reports whether space was explicitly set to false.
func (s Space) Disabled() bool {
	return !s.numeric && !s.enabled
}

// Width returns the explicit width and whether one was given.
func (s Space) Width() (int, bool) {
	return s.width, s.numeric
}

// IndentWidth returns the explicit width, or DefaultIndentWidth.
func (s Space) IndentWidth() int {
	if s.numeric {
		return s.width
	}
	return DefaultIndentWidth
}

func (s Space) String() string {
	if s.numeric {
		return strconv.Itoa(s.width)
	}
	return strconv.FormatBool(s.enabled)
}

// PrettierMode selects how the external formatter is integrated.
type PrettierMode string

// Formatter integration modes.
const (
	// PrettierDisabled turns the formatter invocation rule off.
	PrettierDisabled PrettierMode = "false"
	// PrettierEnabled runs the formatter as a rule.
	PrettierEnabled PrettierMode = "true"
	// PrettierCompat only disables rules that fight the formatter.
	PrettierCompat PrettierMode = "compat"
)

// Truthy reports whether the formatter is in use in any mode.
func (m PrettierMode) Truthy() bool {
	return m == PrettierEnabled || m == PrettierCompat
}

// Block keys shared by override blocks and primitive blocks.
const (
	KeyName      = "name"
	KeyFiles     = "files"
	KeyIgnores   = "ignores"
	KeyRules     = "rules"
	KeyPlugins   = "plugins"
	KeySpace     = "space"
	KeySemicolon = "semicolon"
	KeyPrettier  = "prettier"
	KeyReact     = "react"
)

// overrideKeys is the canonical key order used by OverrideBlock.Keys.
var overrideKeys = []string{
	KeyName, KeyFiles, KeyIgnores, KeyRules, KeyPlugins,
	KeySpace, KeySemicolon, KeyPrettier, KeyReact,
}

// OverrideBlock is one layered, user-facing directive.
type OverrideBlock struct {
	Name      string
	Files     Patterns
	Ignores   Patterns
	Rules     *Rules
	Plugins   map[string]Plugin
	Space     *Space
	Semicolon *bool
	Prettier  *PrettierMode
	React     *bool

	// declared records keys present in the decoded document, including
	// keys whose value was null.
	declared map[string]bool
}

// Declare marks key as present even when its value is absent.
func (o *OverrideBlock) Declare(key string) {
	if o.declared == nil {
		o.declared = make(map[string]bool)
	}
	o.declared[key] = true
}

// Keys returns the declared keys in canonical order.
func (o OverrideBlock) Keys() []string {
	var keys []string
	for _, k := range overrideKeys {
		if o.has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// DeclaredNull reports whether key was present with no value.
func (o OverrideBlock) DeclaredNull(key string) bool {
	return o.declared[key] && !o.hasValue(key)
}

func (o OverrideBlock) has(key string) bool {
	return o.declared[key] || o.hasValue(key)
}

func (o OverrideBlock) hasValue(key string) bool {
	switch key {
	case KeyName:
		return o.Name != ""
	case KeyFiles:
		return o.Files != nil
	case KeyIgnores:
		return o.Ignores != nil
	case KeyRules:
		return o.Rules != nil
	case KeyPlugins:
		return o.Plugins != nil
	case KeySpace:
		return o.Space != nil
	case KeySemicolon:
		return o.Semicolon != nil
	case KeyPrettier:
		return o.Prettier != nil
	case KeyReact:
		return o.React != nil
	}
	return false
}

// IsGlobalIgnore reports whether the block declares only ignores, optionally
// with a name.
func (o OverrideBlock) IsGlobalIgnore() bool {
	keys := o.Keys()
	if !slices.Contains(keys, KeyIgnores) {
		return false
	}
	for _, k := range keys {
		if k != KeyIgnores && k != KeyName {
			return false
		}
	}
	return true
}

// Block is a primitive, fully-resolved configuration unit.
type Block struct {
	Name    string            `yaml:"name,omitempty" json:"name,omitempty"`
	Files   Patterns          `yaml:"files,omitempty" json:"files,omitempty"`
	Ignores Patterns          `yaml:"ignores,omitempty" json:"ignores,omitempty"`
	Rules   *Rules            `yaml:"rules,omitempty" json:"rules,omitempty"`
	Plugins map[string]Plugin `yaml:"plugins,omitempty" json:"plugins,omitempty"`
}

// Keys returns the keys the block carries.
func (b Block) Keys() []string {
	var keys []string
	if b.Name != "" {
		keys = append(keys, KeyName)
	}
	if b.Files != nil {
		keys = append(keys, KeyFiles)
	}
	if b.Ignores != nil {
		keys = append(keys, KeyIgnores)
	}
	if b.Rules != nil {
		keys = append(keys, KeyRules)
	}
	if b.Plugins != nil {
		keys = append(keys, KeyPlugins)
	}
	return keys
}

// IsEmpty reports whether the block carries no keys.
func (b Block) IsEmpty() bool {
	return len(b.Keys()) == 0
}

// IsGlobalIgnore reports whether b carries only ignores and an optional name.
func (b Block) IsGlobalIgnore() bool {
	return b.Ignores != nil && b.Files == nil && b.Rules == nil && b.Plugins == nil
}

// Clone returns a copy sharing only plugin handles with b.
func (b Block) Clone() Block {
	out := Block{
		Name:    b.Name,
		Files:   b.Files.Clone(),
		Ignores: b.Ignores.Clone(),
		Rules:   b.Rules.Clone(),
	}
	if b.Plugins != nil {
		out.Plugins = maps.Clone(b.Plugins)
	}
	return out
}

// CloneBlocks copies every block of a list.
func CloneBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

// FormatterOptions are caller-supplied options for the external formatter.
// Unset fields take defaults derived from the style options.
type FormatterOptions struct {
	SingleQuote     *bool   `yaml:"singleQuote,omitempty" json:"singleQuote,omitempty" mapstructure:"single_quote"`
	BracketSpacing  *bool   `yaml:"bracketSpacing,omitempty" json:"bracketSpacing,omitempty" mapstructure:"bracket_spacing"`
	BracketSameLine *bool   `yaml:"bracketSameLine,omitempty" json:"bracketSameLine,omitempty" mapstructure:"bracket_same_line"`
	TrailingComma   *string `yaml:"trailingComma,omitempty" json:"trailingComma,omitempty" mapstructure:"trailing_comma"`
	TabWidth        *int    `yaml:"tabWidth,omitempty" json:"tabWidth,omitempty" mapstructure:"tab_width"`
	UseTabs         *bool   `yaml:"useTabs,omitempty" json:"useTabs,omitempty" mapstructure:"use_tabs"`
	Semi            *bool   `yaml:"semi,omitempty" json:"semi,omitempty" mapstructure:"semi"`

	// Extra holds options flatlint does not interpret. They are passed to
	// the formatter unchanged.
	Extra map[string]any `yaml:",inline" json:"-" mapstructure:"-"`
}

// Overlay writes every set option into m using the formatter's own keys.
func (o *FormatterOptions) Overlay(m map[string]any) {
	if o == nil {
		return
	}
	maps.Copy(m, o.Extra)
	if o.SingleQuote != nil {
		m["singleQuote"] = *o.SingleQuote
	}
	if o.BracketSpacing != nil {
		m["bracketSpacing"] = *o.BracketSpacing
	}
	if o.BracketSameLine != nil {
		m["bracketSameLine"] = *o.BracketSameLine
	}
	if o.TrailingComma != nil {
		m["trailingComma"] = *o.TrailingComma
	}
	if o.TabWidth != nil {
		m["tabWidth"] = *o.TabWidth
	}
	if o.UseTabs != nil {
		m["useTabs"] = *o.UseTabs
	}
	if o.Semi != nil {
		m["semi"] = *o.Semi
	}
}

// MergeFormatterOptions returns base with every field set in top applied on
// top of it. Either argument may be nil.
func MergeFormatterOptions(base, top *FormatterOptions) *FormatterOptions {
	if base == nil && top == nil {
		return nil
	}
	out := &FormatterOptions{}
	for _, o := range []*FormatterOptions{base, top} {
		if o == nil {
			continue
		}
		if len(o.Extra) > 0 {
			if out.Extra == nil {
				out.Extra = make(map[string]any, len(o.Extra))
			}
			maps.Copy(out.Extra, o.Extra)
		}
		if o.SingleQuote != nil {
			out.SingleQuote = o.SingleQuote
		}
		if o.BracketSpacing != nil {
			out.BracketSpacing = o.BracketSpacing
		}
		if o.BracketSameLine != nil {
			out.BracketSameLine = o.BracketSameLine
		}
		if o.TrailingComma != nil {
			out.TrailingComma = o.TrailingComma
		}
		if o.TabWidth != nil {
			out.TabWidth = o.TabWidth
		}
		if o.UseTabs != nil {
			out.UseTabs = o.UseTabs
		}
		if o.Semi != nil {
			out.Semi = o.Semi
		}
	}
	return out
}
