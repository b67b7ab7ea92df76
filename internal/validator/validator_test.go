package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(SeverityWarning)
	require.NoError(t, err)
	assert.JSONEq(t, `"warning"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"info"`), &s))
	assert.Equal(t, SeverityInfo, s)

	assert.Error(t, json.Unmarshal([]byte(`"fatal"`), &s))
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name string
		i    Issue
		want string
	}{
		{
			name: "field and value",
			i:    Issue{Severity: SeverityError, Field: "overrides[0].space", Message: "indent width must be positive", Value: -2},
			want: `error: field "overrides[0].space": indent width must be positive (got -2)`,
		},
		{
			name: "message only",
			i:    Issue{Severity: SeverityInfo, Message: "empty block has no effect"},
			want: "info: empty block has no effect",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.i.Error())
		})
	}
}

func TestResult_Partitions(t *testing.T) {
	r := &Result{}
	r.AddInfo("overrides[0]", "empty block has no effect", nil)
	r.AddWarning("overrides[1].files", "null file matcher applies the block to every file", nil)
	r.AddError("overrides[2].prettier", "semi conflicts with semicolon", false)
	r.AddError("overrides[3].prettier", "useTabs conflicts with space", true)

	assert.True(t, r.HasErrors())
	assert.True(t, r.HasWarnings())
	assert.Len(t, r.Errors(), 2)
	assert.Len(t, r.Warnings(), 1)
	assert.Len(t, r.Infos(), 1)
	assert.Equal(t, "overrides[2].prettier", r.Errors()[0].Field)
}

func TestResult_Nil(t *testing.T) {
	var r *Result
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())
	assert.Nil(t, r.Errors())
	assert.Nil(t, r.Infos())
}
