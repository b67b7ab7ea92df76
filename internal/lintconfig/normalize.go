package lintconfig

import "maps"

// Normalize converts an override block into a primitive block ready for
// symbolic-option expansion.
//
// The file matcher is copied when present and omitted when absent or declared
// null. Rules always come back non-nil: a copy of the block's own rules, or an
// empty map. Style options are not interpreted here.
func Normalize(o OverrideBlock) Block {
	b := Block{
		Name:    o.Name,
		Files:   o.Files.Clone(),
		Ignores: o.Ignores.Clone(),
		Rules:   o.Rules.Clone(),
	}
	if b.Rules == nil {
		b.Rules = NewRules()
	}
	if o.Plugins != nil {
		b.Plugins = maps.Clone(o.Plugins)
	}
	return b
}

// GlobalIgnore builds the terminal global-ignore block for an override that
// declares only ignores and an optional name.
func GlobalIgnore(o OverrideBlock) Block {
	ignores := o.Ignores.Clone()
	if ignores == nil {
		ignores = Patterns{}
	}
	return Block{Name: o.Name, Ignores: ignores}
}
