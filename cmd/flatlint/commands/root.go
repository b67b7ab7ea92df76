// Package commands implements the CLI commands for flatlint.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/flatlint/cmd"
	"github.com/thoreinstein/flatlint/internal/config"
	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/logging"
)

// envDebug raises the log level when no -v flag is given.
const envDebug = config.EnvPrefix + "_DEBUG"

// annotationSkipConfigCheck marks commands, and their subcommands, that
// run even when the config file cannot be loaded.
const annotationSkipConfigCheck = "flatlint/skip-config-check"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// appConfig is the loaded application config, nil when loading failed.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ~/.config/flatlint/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("flatlint version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	appConfig, configLoadErr = config.Load(configFile)
}

// currentConfig returns the loaded config, or the defaults when none was
// loaded.
func currentConfig() *config.Config {
	if appConfig != nil {
		return appConfig
	}
	return &config.Config{Version: config.CurrentVersion, OutputFormat: "json"}
}

var rootCmd = &cobra.Command{
	Use:   "flatlint",
	Short: "Resolve layered linter overrides into a flat configuration",
	Long: `flatlint folds a list of override blocks onto a base linter
configuration and prints the resolved, ordered block list.

Override blocks may use symbolic options on top of plain rules:

  space      indent with spaces (true, or a width)
  semicolon  require (true) or forbid (false) semicolons
  react      add the React preset
  prettier   run the formatter as a rule (true), only disable
             conflicting rules ("compat"), or turn it off (false)

Without a file argument the nearest flatlint.config.* or .flatlintrc.*
above the working directory is used.`,
	Example: `  # Resolve the overrides found from the working directory
  flatlint resolve

  # Resolve a specific file as YAML
  flatlint resolve overrides.yaml --format yaml

  # Check an override list for conflicts
  flatlint check

  See Also: flatlint presets, flatlint config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfigLoaded(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(envDebug); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("invalid log format %q", logFormat),
			"Use --log-format text or --log-format json")
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfigLoaded reports a broken config file before any command that
// depends on it runs.
func checkConfigLoaded(cmd *cobra.Command) error {
	// Skip validation for help and version commands
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipConfigCheck] != "" {
			return nil
		}
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}

// ReportError prints err with its suggestion, if any, and returns the exit
// code to use. An ExitError without an underlying error prints nothing.
func ReportError(w io.Writer, err error) int {
	code := errors.ExitUser
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Err == nil && exitErr.Suggestion == "" {
			return code
		}
		if exitErr.Err != nil {
			fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintf(w, "%s\n", color.YellowString(exitErr.Suggestion))
		}
		return code
	}
	fmt.Fprintf(w, "%s %v\n", color.RedString("Error:"), err)
	return code
}
