// Package lintconfig defines the configuration types flatlint reads and
// produces, and the pure transformations between them.
//
// # Override Blocks
//
// An [OverrideBlock] is one entry of the user-authored list. Besides the
// primitive keys (name, files, ignores, rules, plugins) it carries symbolic
// style options that the merger expands into rules:
//
//	- files: ["**/*.ts"]
//	  space: 4          # true, false or an explicit indent width
//	  semicolon: false
//	  prettier: compat  # true, false or "compat"
//	  react: true
//
// The block remembers which keys were declared, so an explicit null (for
// example `files: null`) is distinguishable from an absent key. See
// [OverrideBlock.DeclaredNull].
//
// # Blocks
//
// A [Block] is the fully resolved unit the rule engine consumes. It only has
// primitive keys. [Normalize] turns an override into the block its
// expansion starts from. [GlobalIgnore] handles entries that only carry
// ignores and an optional name.
//
// # Rules
//
// [Rules] is an insertion-ordered map from rule id to [RuleSetting].
// Replacing an existing id keeps its position, so output order follows the
// order rules were first declared:
//
//	r := lintconfig.RulesOf(
//	    lintconfig.RuleEntry{ID: "semi", Setting: lintconfig.Off()},
//	)
//	r.Set("curly", lintconfig.Rule(lintconfig.SeverityError, "all"))
//
// A nil *Rules means the block has no rules key. Its methods are safe on a
// nil receiver.
//
// # Plugin Hoisting
//
// Plugins are opaque handles. [HoistPlugins] moves every registration into
// one block named [PluginsBlockName] at the head of the list. Registrations
// accumulate in list order, and the map from [CollectPluginOverrides] is
// applied last, so user declarations always win over presets. Blocks without
// plugins pass through untouched. A block that loses its plugins is dropped
// only when no other key remains. Inputs are never modified.
//
// # Formatter Conflicts
//
// [ValidateFormatter] compares caller formatter options with a block's style
// options and returns a [*ConflictError] matching ErrConfigConflict on the
// first contradiction. [FormatterConflicts] reports all of them.
package lintconfig
