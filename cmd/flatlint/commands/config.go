package commands

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/config"
	"github.com/thoreinstein/flatlint/internal/editor"
	"github.com/thoreinstein/flatlint/internal/errors"
)

// configInitForce holds the value of the config init --force flag.
var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false,
		"overwrite an existing config file")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage flatlint configuration",
	Long: `Manage flatlint configuration stored in ~/.config/flatlint/config.yaml.

Every setting can also come from the environment, e.g. FLATLINT_OUTPUT_FORMAT
or FLATLINT_FORMATTER_TAB_WIDTH.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  flatlint config

  # Get a specific value
  flatlint config get output_format

  # Set a value
  flatlint config set formatter.single_quote false

See Also: flatlint resolve`,
	Annotations: map[string]string{annotationSkipConfigCheck: "true"},
	RunE:        runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys such as formatter.tab_width.`,
	Example: `  # Get the default output format
  flatlint config get output_format

See Also: flatlint config set, flatlint config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

Values are read as YAML scalars, so 4 is a number and false a boolean.
The resulting configuration is validated before it is written.`,
	Example: `  # Emit YAML by default
  flatlint config set output_format yaml

  # Default formatter indentation
  flatlint config set formatter.tab_width 4

See Also: flatlint config get, flatlint config list`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration",
	Long:  `List all configuration values in YAML format.`,
	Example: `  # List all configuration
  flatlint config list

See Also: flatlint config get, flatlint config set`,
	RunE: runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Long:  `Print the config file in use, or where one would be written.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Path())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default values",
	Long: `Write the current configuration, defaults included, to the config file.

Fails if the file exists unless --force is given.`,
	Example: `  # Create ~/.config/flatlint/config.yaml
  flatlint config init

See Also: flatlint config set`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your editor.

Uses $VISUAL, then $EDITOR, falling back to nano or vi. A file with
default values is written first if none exists. The file is validated
after the editor exits.`,
	Example: `  # Open config in default editor
  flatlint config edit

  # Open with specific editor
  EDITOR=nano flatlint config edit

See Also: flatlint config list, flatlint config init`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(out, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case map[string]any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshaling config")
		}
		fmt.Fprint(out, string(data))
	default:
		fmt.Fprintln(out, viper.GetString(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := strings.ToLower(args[0]), args[1]

	if !slices.Contains(config.Keys(), key) {
		return errors.NewUserError(errors.Newf("unknown config key %q", key),
			"Valid keys: "+strings.Join(config.Keys(), ", "))
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
		value = raw
	}
	viper.Set(key, value)

	if _, err := config.Current(); err != nil {
		return errors.NewUserError(err, "")
	}
	if err := config.Save(config.Path()); err != nil {
		return errors.NewSystemError(err, "Check the permissions of "+config.Path())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(config.Settings())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := config.Path()
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path),
			"Use --force to overwrite it")
	}
	if err := config.Save(path); err != nil {
		return errors.NewSystemError(err, "Check the permissions of "+path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.Save(path); err != nil {
			return errors.NewSystemError(err, "Check the permissions of "+path)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	err := editor.Open(cmd.Context(), path, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your editor")
	}

	config.Init()
	if _, err := config.Load(path); err != nil {
		return errors.NewUserError(err, "Run: flatlint config edit")
	}
	return nil
}
