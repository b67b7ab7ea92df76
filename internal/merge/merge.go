// Package merge folds a user's override list onto a base configuration and
// produces the resolved, ordered block list a rule engine consumes.
//
// A merge runs in three phases. Plugins declared by the user are collected
// first. Each override is then expanded into primitive blocks through a fixed
// pipeline (semicolon, space, react, prettier). Finally every plugin
// registration is hoisted into one leading block, with the user's plugins
// reapplied on top so they win over anything a preset injected.
package merge

import (
	"log/slog"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/logging"
	"github.com/thoreinstein/flatlint/internal/presets"
)

// Names given to preset-derived blocks.
const (
	ReactBlockName          = "flatlint/react"
	PrettierCompatBlockName = "flatlint/prettier-compat"
)

// Rule ids the style options expand into.
const (
	RuleSemi            = "@stylistic/semi"
	RuleSemiSpacing     = "@stylistic/semi-spacing"
	RuleIndent          = "@stylistic/indent"
	RuleIndentBinaryOps = "@stylistic/indent-binary-ops"
	RulePrettier        = "prettier/prettier"
)

// PresetSource supplies the templates symbolic options expand into.
// Implementations must return copies the merger may modify.
type PresetSource interface {
	React() lintconfig.Block
	PrettierCompat() lintconfig.Block
	PrettierPlugin() lintconfig.Plugin
	PrettierRecommended() *lintconfig.Rules
}

// Merger performs merges. The zero value is not usable; use New.
type Merger struct {
	presets PresetSource
	logger  *slog.Logger
}

// Option configures a Merger.
type Option func(*Merger)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(m *Merger) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPresets replaces the built-in templates.
func WithPresets(p PresetSource) Option {
	return func(m *Merger) {
		if p != nil {
			m.presets = p
		}
	}
}

// New returns a Merger using the built-in presets and a discarding logger.
func New(opts ...Option) *Merger {
	m := &Merger{
		presets: presets.Builtin(),
		logger:  logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge resolves overrides against base with the built-in presets.
func Merge(base []lintconfig.Block, overrides []lintconfig.OverrideBlock, opts *lintconfig.FormatterOptions) ([]lintconfig.Block, error) {
	return New().Merge(base, overrides, opts)
}

// Merge folds overrides onto base and returns the resolved list.
//
// base and overrides are not modified. opts may be nil. When a block enables
// the formatter and opts contradicts its style options the merge fails with
// an error matching lintconfig.ErrConfigConflict and no list is returned.
func (m *Merger) Merge(base []lintconfig.Block, overrides []lintconfig.OverrideBlock, opts *lintconfig.FormatterOptions) ([]lintconfig.Block, error) {
	userPlugins := lintconfig.CollectPluginOverrides(overrides)

	out := lintconfig.CloneBlocks(base)
	for i, o := range overrides {
		if len(o.Keys()) == 0 {
			m.logger.Debug("skipping empty override", "index", i)
			continue
		}

		if o.IsGlobalIgnore() {
			m.logger.Debug("adding global ignores", "index", i, "patterns", len(o.Ignores))
			out = append(out, lintconfig.GlobalIgnore(o))
			continue
		}

		blocks, err := m.expand(base, o, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "override %d", i)
		}
		out = append(out, blocks...)
	}

	resolved := lintconfig.HoistPlugins(out, userPlugins)
	m.logger.Debug("merged configuration",
		"base", len(base), "overrides", len(overrides), "blocks", len(resolved))
	return resolved, nil
}
