package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/flatlint/internal/errors"
)

func TestConfigList(t *testing.T) {
	setupCLI(t)

	for _, args := range [][]string{{"config"}, {"config", "list"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			out, err := execute(t, "", args...)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(out), &got))
			assert.Equal(t, 1, got["version"])
			assert.Equal(t, "json", got["output_format"])
		})
	}
}

func TestConfigSetGet(t *testing.T) {
	_, configDir := setupCLI(t)

	out, err := execute(t, "", "config", "set", "output_format", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "Set output_format = yaml\n", out)

	out, err = execute(t, "", "config", "set", "formatter.tab_width", "4")
	require.NoError(t, err)
	assert.Equal(t, "Set formatter.tab_width = 4\n", out)

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "yaml", saved["output_format"])
	assert.Equal(t, map[string]any{"tab_width": 4}, saved["formatter"])

	// each execution reloads the file
	out, err = execute(t, "", "config", "get", "output_format")
	require.NoError(t, err)
	assert.Equal(t, "yaml\n", out)

	out, err = execute(t, "", "config", "get", "formatter.tab_width")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestConfigGet_NotSet(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "", "config", "get", "presets_dir")
	require.NoError(t, err)
	assert.Equal(t, "not set\n", out)
}

func TestConfigSet_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "set", "default_presets", "react"}},
		{"invalid format", []string{"config", "set", "output_format", "xml"}},
		{"invalid tab width", []string{"config", "set", "formatter.tab_width", "0"}},
		{"invalid trailing comma", []string{"config", "set", "formatter.trailing_comma", "some"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, configDir := setupCLI(t)

			_, err := execute(t, "", tt.args...)
			requireExitCode(t, err, errors.ExitUser)
			_, statErr := os.Stat(filepath.Join(configDir, "config.yaml"))
			assert.True(t, os.IsNotExist(statErr), "nothing should be written")
		})
	}
}

func TestConfigInit(t *testing.T) {
	_, configDir := setupCLI(t)
	path := filepath.Join(configDir, "config.yaml")

	out, err := execute(t, "", "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	_, err = execute(t, "", "config", "init")
	exitErr := requireExitCode(t, err, errors.ExitUser)
	assert.Contains(t, exitErr.Suggestion, "--force")

	_, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigPath(t *testing.T) {
	_, configDir := setupCLI(t)

	out, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "config.yaml")+"\n", out)
}

func TestConfig_WorksWithBrokenFile(t *testing.T) {
	_, configDir := setupCLI(t)
	writeFile(t, configDir, "config.yaml", "version: 1\noutput_format: xml\n")

	out, err := execute(t, "", "config", "set", "output_format", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "toml")

	_, err = execute(t, "", "resolve")
	require.NoError(t, err)
}

func TestConfigEdit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}
	_, configDir := setupCLI(t)
	path := filepath.Join(configDir, "config.yaml")

	// the mock editor rewrites the file with another output format
	script := writeFile(t, t.TempDir(), "edit.sh", "#!/bin/sh\nprintf 'version: 1\\noutput_format: yaml\\n' > \"$1\"\n")
	require.NoError(t, os.Chmod(script, 0o755))
	t.Setenv("VISUAL", script)

	out, err := execute(t, "", "config", "edit")
	require.NoError(t, err)
	assert.Contains(t, out, "Location: "+path)

	out, err = execute(t, "", "config", "get", "output_format")
	require.NoError(t, err)
	assert.Equal(t, "yaml\n", out)
}

func TestConfigEdit_InvalidResult(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}
	setupCLI(t)

	script := writeFile(t, t.TempDir(), "edit.sh", "#!/bin/sh\nprintf 'version: 1\\noutput_format: xml\\n' > \"$1\"\n")
	require.NoError(t, os.Chmod(script, 0o755))
	t.Setenv("VISUAL", script)

	_, err := execute(t, "", "config", "edit")
	requireExitCode(t, err, errors.ExitUser)
}
