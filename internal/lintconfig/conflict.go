package lintconfig

import (
	"fmt"

	"github.com/thoreinstein/flatlint/internal/errors"
)

// ErrConfigConflict is matched by every ConflictError.
var ErrConfigConflict = errors.ErrConfigConflict

// ConflictError describes a formatter option that contradicts a style option.
type ConflictError struct {
	// FormatterOption is the formatter's key, e.g. "semi".
	FormatterOption string
	// FormatterValue is the caller-supplied formatter value.
	FormatterValue any
	// Option is the style option key, e.g. "semicolon".
	Option string
	// Value is the style option's effective value.
	Value any
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("the formatter option %q is %v while %q is %v",
		e.FormatterOption, e.FormatterValue, e.Option, e.Value)
}

// Unwrap lets errors.Is match ErrConfigConflict.
func (e *ConflictError) Unwrap() error {
	return ErrConfigConflict
}

// SemicolonSense is the effective semicolon setting of a block. An unset
// option keeps the base configuration's semicolons.
func SemicolonSense(o OverrideBlock) bool {
	return o.Semicolon == nil || *o.Semicolon
}

// SpaceTruthy reports whether the block asks for space indentation.
func SpaceTruthy(o OverrideBlock) bool {
	return o.Space != nil && o.Space.Truthy()
}

// FormatterConflicts returns every contradiction between opts and the style
// options of o, in the order semi, useTabs, tabWidth.
func FormatterConflicts(o OverrideBlock, opts *FormatterOptions) []*ConflictError {
	if opts == nil {
		return nil
	}
	var out []*ConflictError

	semi := SemicolonSense(o)
	if opts.Semi != nil && *opts.Semi != semi {
		out = append(out, &ConflictError{
			FormatterOption: "semi", FormatterValue: *opts.Semi,
			Option: KeySemicolon, Value: semi,
		})
	}

	space := SpaceTruthy(o)
	if opts.UseTabs != nil && *opts.UseTabs == space {
		out = append(out, &ConflictError{
			FormatterOption: "useTabs", FormatterValue: *opts.UseTabs,
			Option: KeySpace, Value: spaceValue(o),
		})
	}

	if o.Space != nil && opts.TabWidth != nil {
		if w, ok := o.Space.Width(); ok && w != *opts.TabWidth {
			out = append(out, &ConflictError{
				FormatterOption: "tabWidth", FormatterValue: *opts.TabWidth,
				Option: KeySpace, Value: w,
			})
		}
	}
	return out
}

// ValidateFormatter returns the first conflict between opts and o, or nil.
func ValidateFormatter(o OverrideBlock, opts *FormatterOptions) error {
	if conflicts := FormatterConflicts(o, opts); len(conflicts) > 0 {
		return conflicts[0]
	}
	return nil
}

func spaceValue(o OverrideBlock) any {
	if o.Space == nil {
		return "unset"
	}
	return o.Space.String()
}
