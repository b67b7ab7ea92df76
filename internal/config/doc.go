// Package config provides configuration management for the flatlint CLI.
//
// This package handles the tool's own settings. Override lists and formatter
// options belonging to a project are read by the loader package instead.
//
// # Configuration File
//
// The default configuration file location is ~/.config/flatlint/config.yaml
// (or $FLATLINT_CONFIG_DIR/config.yaml). A config.yaml in the working
// directory takes precedence:
//
//	version: 1
//	output_format: yaml          # json, yaml or toml
//	overrides_file: ./lint.yaml  # optional
//	presets_dir: ~/presets       # optional, replaces built-in templates
//	formatter:                   # optional defaults for the formatter rule
//	  trailing_comma: es5
//	  tab_width: 2
//
// Every key can be set through the environment with the FLATLINT_ prefix,
// e.g. FLATLINT_OUTPUT_FORMAT=toml or FLATLINT_FORMATTER_SEMI=false.
//
// # Loading Configuration
//
// Call [Init] once, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return errors.Wrap(err, "loading config")
//	}
//
// [Load] validates the result and returns the first problem found. Use
// [Validate] directly to get all of them.
package config
