package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/render"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrUnsupportedVersion indicates a version newer than this build understands.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidFormatter indicates a formatter option outside its domain.
	ErrInvalidFormatter = errors.New("invalid formatter option")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// trailingCommaValues are the values the formatter accepts.
var trailingCommaValues = []string{"all", "es5", "none"}

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	switch {
	case cfg.Version < 1:
		errs = append(errs, ErrVersionTooLow)
	case cfg.Version > CurrentVersion:
		errs = append(errs, &FieldError{Field: KeyVersion, Value: cfg.Version, Err: ErrUnsupportedVersion})
	}

	if _, err := render.ParseFormat(cfg.OutputFormat); err != nil {
		errs = append(errs, &FieldError{Field: KeyOutputFormat, Value: cfg.OutputFormat, Err: ErrInvalidFormat})
	}

	if w := cfg.Formatter.TabWidth; w != nil && *w < 1 {
		errs = append(errs, &FieldError{Field: "formatter.tab_width", Value: *w, Err: ErrInvalidFormatter})
	}
	if tc := cfg.Formatter.TrailingComma; tc != nil && !slices.Contains(trailingCommaValues, *tc) {
		errs = append(errs, &FieldError{Field: "formatter.trailing_comma", Value: *tc, Err: ErrInvalidFormatter})
	}

	if err := validatePath(cfg.OverridesFile); err != nil {
		errs = append(errs, &FieldError{Field: KeyOverridesFile, Value: cfg.OverridesFile, Err: err})
	}
	if err := validatePath(cfg.PresetsDir); err != nil {
		errs = append(errs, &FieldError{Field: KeyPresetsDir, Value: cfg.PresetsDir, Err: err})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError reports an invalid value for one config key.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v: %#v", e.Field, e.Err, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

