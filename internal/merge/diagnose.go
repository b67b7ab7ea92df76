package merge

import (
	"fmt"
	"maps"
	"slices"

	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/validator"
)

// Diagnose checks an override list without merging it.
//
// Unlike Merge it does not stop at the first formatter conflict: every
// conflict is an error, and settings that merge but are likely mistakes are
// reported as warnings or notes.
func Diagnose(overrides []lintconfig.OverrideBlock, opts *lintconfig.FormatterOptions) *validator.Result {
	result := &validator.Result{}
	declaredBy := make(map[string]string)

	for i, o := range overrides {
		field := fmt.Sprintf("overrides[%d]", i)

		if len(o.Keys()) == 0 {
			result.AddInfo(field, "empty block has no effect", nil)
			continue
		}

		if o.IsGlobalIgnore() {
			if len(o.Ignores) == 0 {
				result.AddWarning(field+".ignores", "global ignore list is empty", nil)
			}
			continue
		}

		if o.DeclaredNull(lintconfig.KeyFiles) {
			result.AddWarning(field+".files", "files is null; the block applies to every file", nil)
		}

		if o.Space != nil {
			if w, ok := o.Space.Width(); ok && w == 0 {
				result.AddWarning(field+".space", "space 0 counts as false; no indent rules are set and the formatter uses tabs", w)
			} else if ok && w < 0 {
				result.AddWarning(field+".space", "indent width is negative; the indent rules receive it unchanged", w)
			}
		}

		if o.React != nil && *o.React && o.Files == nil {
			result.AddInfo(field+".react", "the react preset applies to every file", nil)
		}

		if o.Prettier != nil && *o.Prettier == lintconfig.PrettierEnabled {
			for _, c := range lintconfig.FormatterConflicts(o, opts) {
				result.Add(validator.Issue{
					Severity: validator.SeverityError,
					Field:    field + ".prettier",
					Message:  c.Error(),
					Context: map[string]string{
						"formatter_option": c.FormatterOption,
						"option":           c.Option,
					},
				})
			}
		}

		for _, id := range slices.Sorted(maps.Keys(o.Plugins)) {
			p := o.Plugins[id]
			if prev, ok := declaredBy[id]; ok && prev != p.Module {
				result.Add(validator.Issue{
					Severity: validator.SeverityInfo,
					Field:    fmt.Sprintf("%s.plugins.%s", field, id),
					Message:  "plugin redeclared; the last declaration wins",
					Value:    p.Module,
					Context:  map[string]string{"previous": prev},
				})
			}
			declaredBy[id] = p.Module
		}
	}
	return result
}
