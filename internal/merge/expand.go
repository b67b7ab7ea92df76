package merge

import (
	"context"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/logging"
	"github.com/thoreinstein/flatlint/internal/presets"
)

// expansion is the state one override block is expanded in.
type expansion struct {
	base     []lintconfig.Block
	override lintconfig.OverrideBlock
	opts     *lintconfig.FormatterOptions

	// block is the normalized override being edited.
	block lintconfig.Block
	// derived holds preset blocks, emitted ahead of block.
	derived []lintconfig.Block
}

type stage struct {
	name string
	run  func(m *Merger, x *expansion) error
}

// pipeline order is significant: the formatter stage layers its rules over
// whatever the earlier stages set.
var pipeline = []stage{
	{"semicolon", (*Merger).expandSemicolon},
	{"space", (*Merger).expandSpace},
	{"react", (*Merger).expandReact},
	{"prettier", (*Merger).expandPrettier},
}

func (m *Merger) expand(base []lintconfig.Block, o lintconfig.OverrideBlock, opts *lintconfig.FormatterOptions) ([]lintconfig.Block, error) {
	x := &expansion{
		base:     base,
		override: o,
		opts:     opts,
		block:    lintconfig.Normalize(o),
	}
	for _, s := range pipeline {
		if err := s.run(m, x); err != nil {
			return nil, errors.Wrapf(err, "expanding %s", s.name)
		}
	}

	out := x.derived
	if x.block.IsEmpty() {
		m.logger.Debug("dropping block left empty by expansion", "name", o.Name)
		return out, nil
	}
	return append(out, x.block), nil
}

func (m *Merger) setRule(x *expansion, id string, s lintconfig.RuleSetting) {
	m.logger.Log(context.Background(), logging.LevelTrace, "set rule", "rule", id, "severity", s.Severity)
	x.block.Rules.Set(id, s)
}

func (m *Merger) expandSemicolon(x *expansion) error {
	if x.override.Semicolon == nil || *x.override.Semicolon {
		return nil
	}
	m.setRule(x, RuleSemi, lintconfig.Rule(lintconfig.SeverityError, "never"))
	m.setRule(x, RuleSemiSpacing, lintconfig.Rule(lintconfig.SeverityError,
		map[string]any{"before": false, "after": true}))
	return nil
}

func (m *Merger) expandSpace(x *expansion) error {
	space := x.override.Space
	switch {
	case space == nil:
	case space.Truthy():
		width := space.IndentWidth()
		m.setRule(x, RuleIndent, lintconfig.Rule(lintconfig.SeverityError,
			width, map[string]any{"SwitchCase": 1}))
		m.setRule(x, RuleIndentBinaryOps, lintconfig.Rule(lintconfig.SeverityError, width))
	case space.Disabled():
		// a narrower block opting back out of a width set by a broader one
		for _, id := range []string{RuleIndent, RuleIndentBinaryOps} {
			if s, ok := presets.LastRule(x.base, id); ok {
				m.setRule(x, id, s)
			}
		}
	}
	return nil
}

func (m *Merger) expandReact(x *expansion) error {
	if x.override.React == nil || !*x.override.React {
		return nil
	}
	b := m.presets.React()
	b.Name = ReactBlockName
	b.Files = x.block.Files.Clone()
	m.logger.Debug("expanding preset", "preset", presets.NameReact, "files", b.Files)
	x.derived = append(x.derived, b)
	return nil
}

func (m *Merger) expandPrettier(x *expansion) error {
	if x.override.Prettier == nil {
		return nil
	}
	switch *x.override.Prettier {
	case lintconfig.PrettierCompat:
		b := m.presets.PrettierCompat()
		b.Name = PrettierCompatBlockName
		b.Files = x.block.Files.Clone()
		m.logger.Debug("expanding preset", "preset", presets.NamePrettierCompat, "files", b.Files)
		x.derived = append(x.derived, b)

	case lintconfig.PrettierEnabled:
		if err := lintconfig.ValidateFormatter(x.override, x.opts); err != nil {
			return err
		}
		if x.block.Plugins == nil {
			x.block.Plugins = make(map[string]lintconfig.Plugin)
		}
		x.block.Plugins[presets.PrettierPluginID] = m.presets.PrettierPlugin()

		rules := x.block.Rules.Clone()
		rules.Merge(m.presets.PrettierRecommended())
		rules.Set(RulePrettier, lintconfig.Rule(lintconfig.SeverityError, FormatterInvocation(x.override, x.opts)))
		// the compat rules go last so they beat the invocation's own opinions
		rules.Merge(m.presets.PrettierCompat().Rules)
		x.block.Rules = rules

	case lintconfig.PrettierDisabled:
		m.setRule(x, RulePrettier, lintconfig.Off())
	}
	return nil
}

// FormatterInvocation returns the options the formatter rule is configured
// with for o: the house style derived from o's style options, overridden by
// every option set in opts.
//
// An explicit numeric space always becomes tabWidth, including zero and
// negative values; zero still selects tabs because it is not truthy.
func FormatterInvocation(o lintconfig.OverrideBlock, opts *lintconfig.FormatterOptions) map[string]any {
	width := lintconfig.DefaultIndentWidth
	if o.Space != nil {
		if w, ok := o.Space.Width(); ok {
			width = w
		}
	}
	m := map[string]any{
		"singleQuote":     true,
		"bracketSpacing":  false,
		"bracketSameLine": false,
		"trailingComma":   "all",
		"tabWidth":        width,
		"useTabs":         !lintconfig.SpaceTruthy(o),
		"semi":            lintconfig.SemicolonSense(o),
	}
	opts.Overlay(m)
	return m
}
