package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/validator"
)

func TestCheck_Clean(t *testing.T) {
	dir, _ := setupCLI(t)
	path := writeFile(t, dir, "flatlint.config.yaml", "- space: 2\n  semicolon: false\n")

	out, err := execute(t, "", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No problems found")
}

func TestCheck_ReportsConflicts(t *testing.T) {
	dir, _ := setupCLI(t)
	path := writeFile(t, dir, "flatlint.config.yaml", `
overrides:
  - files: "**/*.ts"
    prettier: true
    space: 4
    semicolon: false
prettier:
  useTabs: true
  tabWidth: 2
  semi: true
`)

	out, err := execute(t, "", "check", path, "--format", "json")
	exitErr := requireExitCode(t, err, errors.ExitUser)
	assert.Nil(t, exitErr.Err, "the report itself is the output")

	var result validator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Len(t, result.Errors(), 3)
	for _, issue := range result.Errors() {
		assert.Equal(t, "overrides[0].prettier", issue.Field)
	}
}

func TestCheck_WarningsDoNotFail(t *testing.T) {
	dir, _ := setupCLI(t)
	path := writeFile(t, dir, "flatlint.config.yaml", "- files: null\n  rules:\n    semi: \"off\"\n")

	out, err := execute(t, "", "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "overrides[0].files")
}

func TestCheck_Stdin(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, "- {}\n", "check", "-", "-f", "json")
	require.NoError(t, err)

	var result validator.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	require.Len(t, result.Infos(), 1)
	assert.Equal(t, "overrides[0]", result.Infos()[0].Field)
}

func TestCheck_InvalidReportFormat(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, "", "check", "--format", "sarif")
	requireExitCode(t, err, errors.ExitUser)
}
