package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/flatlint/internal/config"
	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/loader"
	"github.com/thoreinstein/flatlint/internal/logging"
	"github.com/thoreinstein/flatlint/internal/paths"
	"github.com/thoreinstein/flatlint/internal/presets"
)

// stdinArg reads the override document from standard input.
const stdinArg = "-"

// inputFlags are shared by every command that reads an override document.
type inputFlags struct {
	inputFormat    string
	prettierConfig string
	presetsDir     string
}

func (f *inputFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.inputFormat, "input-format", "",
		"format of the override document: yaml, json, toml (default: from the file extension)")
	c.Flags().StringVar(&f.prettierConfig, "prettier-config", "",
		"formatter options file (default: nearest .prettierrc)")
	c.Flags().StringVar(&f.presetsDir, "presets-dir", "",
		"directory of preset templates replacing the built-in ones")
}

// source describes where a document came from, for messages.
func source(doc *loader.Document, args []string) string {
	switch {
	case doc != nil && doc.Path != "":
		return doc.Path
	case len(args) == 1 && args[0] == stdinArg:
		return "<stdin>"
	}
	return "<none>"
}

// parseInputFormat resolves --input-format; an empty name returns ok=false.
func parseInputFormat(name string) (loader.Format, bool, error) {
	switch loader.Format(name) {
	case "":
		return "", false, nil
	case loader.FormatYAML, "yml":
		return loader.FormatYAML, true, nil
	case loader.FormatJSON, loader.FormatTOML:
		return loader.Format(name), true, nil
	}
	return "", false, errors.NewUserError(
		errors.Newf("invalid input format %q", name),
		"Use --input-format yaml, json or toml")
}

// loadDocument reads the override document named by args, or discovers
// one. With nothing to read it returns an empty document.
func (f *inputFlags) loadDocument(cmd *cobra.Command, args []string, cfg *config.Config) (*loader.Document, error) {
	logger := logging.FromContext(cmd.Context())

	format, explicit, err := parseInputFormat(f.inputFormat)
	if err != nil {
		return nil, err
	}

	if len(args) == 1 && args[0] == stdinArg {
		if !explicit {
			format = loader.FormatYAML
		}
		logger.Debug("reading overrides from stdin", "format", format)
		doc, err := loader.Read(cmd.InOrStdin(), format)
		return doc, inputError(err, "<stdin>")
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.NewSystemError(errors.Wrap(err, "getting working directory"), "")
		}
		found, err := loader.Discover(wd)
		switch {
		case err == nil:
			path = found
		case errors.Is(err, paths.ErrNoMatch):
			path = cfg.OverridesFile
		default:
			return nil, errors.NewSystemError(err, "")
		}
	}

	if path == "" {
		logger.Info("no override file found, resolving the base configuration alone")
		return &loader.Document{}, nil
	}

	logger.Debug("loading overrides", "path", path)
	var doc *loader.Document
	if explicit {
		doc, err = loadFileAs(path, format)
	} else {
		doc, err = loader.LoadFile(path)
	}
	if err != nil {
		return nil, inputError(err, path)
	}
	logger.Info("loaded overrides", "path", path, "blocks", len(doc.Overrides))
	return doc, nil
}

func loadFileAs(path string, format loader.Format) (*loader.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	defer f.Close()
	doc, err := loader.Read(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	doc.Path = path
	return doc, nil
}

// inputError maps a load failure to the exit code and hint users see.
func inputError(err error, src string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrInvalidConfig):
		return errors.NewUserError(err, "Fix the override document "+src)
	case errors.Is(err, os.ErrNotExist):
		return errors.NewUserError(err, "Check the path, or run flatlint without a file to discover one")
	}
	return errors.NewSystemError(err, "")
}

// formatterOptions layers the caller's formatter options: config defaults,
// then the formatter file, then the document's own prettier section.
func (f *inputFlags) formatterOptions(cmd *cobra.Command, doc *loader.Document, cfg *config.Config) (*lintconfig.FormatterOptions, error) {
	logger := logging.FromContext(cmd.Context())
	opts := lintconfig.MergeFormatterOptions(&cfg.Formatter, nil)

	path := f.prettierConfig
	if path == "" {
		dir := "."
		if doc.Path != "" {
			dir = filepath.Dir(doc.Path)
		}
		found, err := loader.DiscoverFormatter(dir)
		switch {
		case err == nil:
			path = found
		case errors.Is(err, paths.ErrNoMatch):
		default:
			return nil, errors.NewSystemError(err, "")
		}
	}

	if path != "" {
		logger.Debug("loading formatter options", "path", path)
		fileOpts, err := loader.LoadFormatterFile(path)
		if err != nil {
			return nil, inputError(err, path)
		}
		opts = lintconfig.MergeFormatterOptions(opts, fileOpts)
	}

	return lintconfig.MergeFormatterOptions(opts, doc.Formatter), nil
}

// presetSet returns the templates in --presets-dir or the config's
// presets_dir, falling back to the built-in set.
func (f *inputFlags) presetSet(cmd *cobra.Command, cfg *config.Config) (*presets.Set, error) {
	dir := f.presetsDir
	if dir == "" {
		dir = cfg.PresetsDir
	}
	if dir == "" {
		return presets.Builtin(), nil
	}
	logging.FromContext(cmd.Context()).Debug("loading presets", "dir", dir)
	set, err := presets.LoadDir(dir)
	if err != nil {
		return nil, inputError(err, dir)
	}
	return set, nil
}

