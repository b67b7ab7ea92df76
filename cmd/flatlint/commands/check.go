package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/logging"
	"github.com/thoreinstein/flatlint/internal/merge"
	"github.com/thoreinstein/flatlint/internal/validator"
)

var (
	checkInput  inputFlags
	checkFormat string
)

func init() {
	checkInput.register(checkCmd)
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", string(validator.FormatText),
		"report format: text, json")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [file|-]",
	Short: "Check an override document for conflicts and mistakes",
	Long: `Check an override document without printing the resolved configuration.

Every block is inspected. Formatter options that contradict a block's
space or semicolon setting are errors; settings that merge but are likely
mistakes, such as a space width of 0, are warnings or notes.

The command exits with status 1 when any error is found. Document and
formatter discovery work as for resolve.`,
	Example: `  # Check the discovered override file
  flatlint check

  # Check a file and print a JSON report
  flatlint check flatlint.config.yaml --format json

See Also: flatlint resolve`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()

	format := validator.Format(checkFormat)
	if format != validator.FormatText && format != validator.FormatJSON {
		return errors.NewUserError(errors.Newf("invalid report format %q", checkFormat),
			"Use --format text or --format json")
	}

	doc, err := checkInput.loadDocument(cmd, args, cfg)
	if err != nil {
		return err
	}
	opts, err := checkInput.formatterOptions(cmd, doc, cfg)
	if err != nil {
		return err
	}

	result := merge.Diagnose(doc.Overrides, opts)
	logging.FromContext(cmd.Context()).Debug("checked overrides",
		"source", source(doc, args), "issues", len(result.Issues))

	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return errors.NewSystemError(err, "")
	}
	if result.HasErrors() {
		return errors.NewExitError(nil, errors.ExitUser)
	}
	return nil
}
