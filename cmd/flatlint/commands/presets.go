package commands

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
	"github.com/thoreinstein/flatlint/internal/presets"
	"github.com/thoreinstein/flatlint/internal/render"
)

var (
	presetsInput      inputFlags
	presetsShowFormat string
)

func init() {
	presetsCmd.PersistentFlags().StringVar(&presetsInput.presetsDir, "presets-dir", "",
		"directory of preset templates replacing the built-in ones")
	presetsShowCmd.Flags().StringVarP(&presetsShowFormat, "format", "f", "",
		"output format: json, yaml, toml (default: from the config)")
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Inspect the preset templates",
	Long: `Inspect the templates symbolic options expand into.

Without a subcommand, lists every preset.`,
	Example: `  # List presets
  flatlint presets

  # Print the React preset as YAML
  flatlint presets show react --format yaml

See Also: flatlint resolve`,
	RunE: runPresetsList,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	Long:  `List every preset with its block, rule and plugin counts.`,
	Args:  cobra.NoArgs,
	RunE:  runPresetsList,
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset as a block list",
	Long: fmt.Sprintf(`Print one preset as a block list.

Valid names: %s.`, strings.Join(presets.Names(), ", ")),
	Args:      cobra.ExactArgs(1),
	ValidArgs: presets.Names(),
	RunE:      runPresetsShow,
}

func runPresetsList(cmd *cobra.Command, _ []string) error {
	set, err := presetsInput.presetSet(cmd, currentConfig())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(presets.Names()))
	for _, name := range presets.Names() {
		blocks, err := set.Lookup(name)
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		rules, plugins := countPreset(blocks)
		rows = append(rows, []string{
			name,
			strconv.Itoa(len(blocks)),
			strconv.Itoa(rules),
			strings.Join(plugins, ", "),
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Preset", "Blocks", "Rules", "Plugins"},
		rows,
		[]text.Align{text.AlignLeft, text.AlignRight, text.AlignRight, text.AlignLeft},
	))
	return nil
}

func runPresetsShow(cmd *cobra.Command, args []string) error {
	cfg := currentConfig()
	set, err := presetsInput.presetSet(cmd, cfg)
	if err != nil {
		return err
	}
	blocks, err := set.Lookup(args[0])
	if err != nil {
		return errors.NewUserError(err, "Run: flatlint presets list")
	}
	format, err := outputFormat(presetsShowFormat, "", cfg)
	if err != nil {
		return err
	}
	return render.Write(cmd.OutOrStdout(), blocks, format)
}

// countPreset returns the number of rules across blocks and the sorted
// plugin ids they register.
func countPreset(blocks []lintconfig.Block) (int, []string) {
	rules := 0
	plugins := make(map[string]bool)
	for _, b := range blocks {
		rules += b.Rules.Len()
		for id := range b.Plugins {
			plugins[id] = true
		}
	}
	return rules, slices.Sorted(maps.Keys(plugins))
}

func renderTable(headers []string, rows [][]string, aligns []text.Align) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
