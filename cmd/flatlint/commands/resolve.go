package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/flatlint/internal/config"
	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/logging"
	"github.com/thoreinstein/flatlint/internal/merge"
	"github.com/thoreinstein/flatlint/internal/render"
)

var (
	resolveInput  inputFlags
	resolveFormat string
	resolveOutput string
)

func init() {
	resolveInput.register(resolveCmd)
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "",
		"output format: json, yaml, toml (default: from --output, then the config)")
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "",
		"write the resolved configuration to a file instead of stdout")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [file|-]",
	Short: "Print the resolved configuration",
	Long: `Merge an override document onto the base configuration and print the
resolved block list.

The document is either a list of override blocks or a mapping with an
"overrides" list and an optional "prettier" section of formatter options.
Pass - to read it from standard input. Without an argument the nearest
flatlint.config.* or .flatlintrc.* is used, then overrides_file from the
config. With no document at all the base configuration is printed.

Formatter options are layered in this order, later entries winning:
the formatter section of the config, the nearest .prettierrc (or
--prettier-config), and the document's own prettier section.`,
	Example: `  # Resolve the discovered override file
  flatlint resolve

  # Resolve a file to YAML
  flatlint resolve flatlint.config.json --format yaml

  # Read from stdin and write TOML to a file
  cat overrides.yaml | flatlint resolve - -o resolved.toml

See Also: flatlint check, flatlint presets`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	logger := logging.FromContext(cmd.Context())

	format, err := outputFormat(resolveFormat, resolveOutput, cfg)
	if err != nil {
		return err
	}

	doc, err := resolveInput.loadDocument(cmd, args, cfg)
	if err != nil {
		return err
	}
	opts, err := resolveInput.formatterOptions(cmd, doc, cfg)
	if err != nil {
		return err
	}
	set, err := resolveInput.presetSet(cmd, cfg)
	if err != nil {
		return err
	}

	m := merge.New(merge.WithLogger(logger), merge.WithPresets(set))
	blocks, err := m.Merge(set.Base(), doc.Overrides, opts)
	if err != nil {
		if errors.Is(err, errors.ErrConfigConflict) {
			return errors.NewUserError(err, "Run: flatlint check "+source(doc, args))
		}
		return errors.NewSystemError(err, "")
	}

	if resolveOutput != "" {
		if err := render.WriteFile(resolveOutput, blocks, format); err != nil {
			return errors.NewSystemError(err, "")
		}
		logger.Info("wrote resolved configuration", "path", resolveOutput, "blocks", len(blocks))
		return nil
	}
	return render.Write(cmd.OutOrStdout(), blocks, format)
}

// outputFormat picks the output format: the flag, the output file's
// extension, then the config default.
func outputFormat(flag, output string, cfg *config.Config) (render.Format, error) {
	name := flag
	if name == "" && output != "" {
		if f, ok := render.FormatForPath(output); ok {
			return f, nil
		}
	}
	if name == "" {
		name = cfg.OutputFormat
	}
	if name == "" {
		return render.FormatJSON, nil
	}
	f, err := render.ParseFormat(name)
	if err != nil {
		names := make([]string, 0, len(render.Formats()))
		for _, f := range render.Formats() {
			names = append(names, string(f))
		}
		return "", errors.NewUserError(err, "Use --format "+strings.Join(names, ", "))
	}
	return f, nil
}
