package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
)

func sampleBlocks() []lintconfig.Block {
	return []lintconfig.Block{
		{
			Name:    lintconfig.PluginsBlockName,
			Plugins: map[string]lintconfig.Plugin{"prettier": lintconfig.NewPlugin("eslint-plugin-prettier", nil)},
		},
		{Ignores: lintconfig.Patterns{"dist/**"}},
		{
			Files: lintconfig.Patterns{"**/*.{ts,tsx}"},
			Rules: lintconfig.RulesOf(
				lintconfig.RuleEntry{ID: "zeta", Setting: lintconfig.Off()},
				lintconfig.RuleEntry{ID: "@stylistic/indent", Setting: lintconfig.Rule(lintconfig.SeverityError, 4, map[string]any{"SwitchCase": 1})},
				lintconfig.RuleEntry{ID: "alpha", Setting: lintconfig.Rule(lintconfig.SeverityWarn)},
			),
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{"toml", FormatTOML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFormatForPath(t *testing.T) {
	f, ok := FormatForPath("out/eslint.config.yml")
	assert.True(t, ok)
	assert.Equal(t, FormatYAML, f)

	_, ok = FormatForPath("eslint.config.mjs")
	assert.False(t, ok)
	_, ok = FormatForPath("Makefile")
	assert.False(t, ok)
}

func TestMarshal_JSON(t *testing.T) {
	data, err := Marshal(sampleBlocks(), FormatJSON)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"**/*.{ts,tsx}"`)
	zeta := bytes.Index(data, []byte(`"zeta"`))
	indent := bytes.Index(data, []byte(`"@stylistic/indent"`))
	alpha := bytes.Index(data, []byte(`"alpha"`))
	assert.True(t, zeta < indent && indent < alpha, "rule order lost:\n%s", data)

	var back []map[string]any
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 3)
	assert.Equal(t, map[string]any{"prettier": "eslint-plugin-prettier"}, back[0]["plugins"])
	assert.Equal(t, []any{"error", float64(4), map[string]any{"SwitchCase": float64(1)}},
		back[2]["rules"].(map[string]any)["@stylistic/indent"])
}

func TestMarshal_EmptyList(t *testing.T) {
	data, err := Marshal(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	data, err = Marshal(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestMarshal_YAML(t *testing.T) {
	data, err := Marshal(sampleBlocks(), FormatYAML)
	require.NoError(t, err)

	var back []struct {
		Name    string    `yaml:"name"`
		Files   []string  `yaml:"files"`
		Ignores []string  `yaml:"ignores"`
		Rules   yaml.Node `yaml:"rules"`
	}
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Len(t, back, 3)
	assert.Equal(t, lintconfig.PluginsBlockName, back[0].Name)
	assert.Equal(t, []string{"dist/**"}, back[1].Ignores)

	var ids []string
	for i := 0; i < len(back[2].Rules.Content); i += 2 {
		ids = append(ids, back[2].Rules.Content[i].Value)
	}
	assert.Equal(t, []string{"zeta", "@stylistic/indent", "alpha"}, ids)
}

func TestMarshal_TOML(t *testing.T) {
	data, err := Marshal(sampleBlocks(), FormatTOML)
	require.NoError(t, err)

	var back struct {
		Configs []map[string]any `toml:"configs"`
	}
	require.NoError(t, toml.Unmarshal(data, &back), "output:\n%s", data)
	require.Len(t, back.Configs, 3)
	assert.Equal(t, []any{"dist/**"}, back.Configs[1]["ignores"])
	rules := back.Configs[2]["rules"].(map[string]any)
	assert.Equal(t, "off", rules["zeta"])
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := Marshal(sampleBlocks(), Format("ini"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleBlocks(), FormatYAML))
	assert.Contains(t, buf.String(), "name: flatlint/plugins")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build", "eslint.json")
	require.NoError(t, WriteFile(path, sampleBlocks(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := Marshal(sampleBlocks(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(data))
}
