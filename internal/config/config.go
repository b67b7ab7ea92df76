// Package config provides configuration management for flatlint using Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/paths"
	"github.com/thoreinstein/flatlint/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix prefixes every environment variable flatlint reads.
const EnvPrefix = "FLATLINT"

// EnvConfigDir overrides the directory the config file is searched in.
const EnvConfigDir = EnvPrefix + "_CONFIG_DIR"

// CurrentVersion is the only config schema version understood.
const CurrentVersion = 1

// Config keys.
const (
	KeyVersion       = "version"
	KeyOutputFormat  = "output_format"
	KeyOverridesFile = "overrides_file"
	KeyPresetsDir    = "presets_dir"
	KeyFormatter     = "formatter"
)

// formatterKeys are the nested formatter keys, bound to environment
// variables such as FLATLINT_FORMATTER_TAB_WIDTH.
var formatterKeys = []string{
	"semi", "use_tabs", "tab_width", "single_quote",
	"bracket_spacing", "bracket_same_line", "trailing_comma",
}

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`
	// OutputFormat is the default format of resolved configurations.
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	// OverridesFile is used when no file argument is given and none is
	// discovered from the working directory.
	OverridesFile string `mapstructure:"overrides_file" yaml:"overrides_file,omitempty"`
	// PresetsDir replaces the built-in preset templates when set.
	PresetsDir string `mapstructure:"presets_dir" yaml:"presets_dir,omitempty"`
	// Formatter holds default formatter options. Options read from a
	// project's formatter file are layered on top.
	Formatter lintconfig.FormatterOptions `mapstructure:"formatter" yaml:"-"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
// Calling it again discards earlier state.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		viper.AddConfigPath(dir)
	} else {
		viper.AddConfigPath(paths.ConfigDir())
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for _, k := range formatterKeys {
		_ = viper.BindEnv(KeyFormatter + "." + k)
	}

	viper.SetDefault(KeyVersion, CurrentVersion)
	viper.SetDefault(KeyOutputFormat, "json")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists.
// The result is validated; the first problem found is returned as an error.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load without a file uses defaults
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrNotFound)
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
	}

	return Current()
}

// Current decodes and validates the settings held in memory, including
// values changed with viper.Set since the last Load.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Keys lists every setting in dotted form.
func Keys() []string {
	keys := []string{KeyVersion, KeyOutputFormat, KeyOverridesFile, KeyPresetsDir}
	for _, k := range formatterKeys {
		keys = append(keys, KeyFormatter+"."+k)
	}
	return keys
}

// Path returns the config file in use, or the default location when none
// was read.
func Path() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, paths.ConfigFileName)
	}
	return paths.ConfigFile()
}

// Settings returns every known setting as a nested map, as it would be
// written to the config file.
func Settings() map[string]any {
	return viper.AllSettings()
}

// Save writes the current settings to path, creating its directory.
func Save(path string) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, Settings(), 0o600); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

