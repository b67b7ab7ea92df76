package presets

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/flatlint/internal/errors"
	"github.com/thoreinstein/flatlint/internal/lintconfig"
)

func TestBuiltin_Base(t *testing.T) {
	base := Builtin().Base()
	require.Len(t, base, 3)

	assert.True(t, base[0].IsGlobalIgnore())
	assert.Contains(t, base[0].Ignores, "**/node_modules/**")

	semi, ok := Builtin().BaseRule("@stylistic/semi")
	require.True(t, ok)
	assert.Equal(t, lintconfig.Rule(lintconfig.SeverityError, "always"), semi)

	indent, ok := Builtin().BaseRule("@stylistic/indent")
	require.True(t, ok)
	assert.Equal(t, lintconfig.SeverityError, indent.Severity)
	assert.Equal(t, "tab", indent.Options[0])
}

func TestBuiltin_React(t *testing.T) {
	react := Builtin().React()
	assert.Empty(t, react.Name)
	assert.Nil(t, react.Files)
	assert.Contains(t, react.Plugins, "react")
	assert.Contains(t, react.Plugins, "react-hooks")

	id, setting, ok := react.Rules.Last()
	require.True(t, ok)
	assert.Equal(t, "react-hooks/exhaustive-deps", id)
	assert.Equal(t, lintconfig.SeverityWarn, setting.Severity)
}

func TestBuiltin_PrettierCompat(t *testing.T) {
	compat := Builtin().PrettierCompat()
	assert.Nil(t, compat.Plugins)
	for _, id := range []string{"@stylistic/semi", "semi", "@stylistic/indent", "curly"} {
		s, ok := compat.Rules.Get(id)
		require.True(t, ok, id)
		assert.Equal(t, lintconfig.SeverityOff, s.Severity, id)
	}
	for id, s := range compat.Rules.All() {
		assert.Equal(t, lintconfig.SeverityOff, s.Severity, "compat rule %s", id)
	}
}

func TestBuiltin_Prettier(t *testing.T) {
	s := Builtin()
	assert.Equal(t, "eslint-plugin-prettier", s.PrettierPlugin().Module)

	rec := s.PrettierRecommended()
	got, ok := rec.Get("prettier/prettier")
	require.True(t, ok)
	assert.Equal(t, lintconfig.SeverityError, got.Severity)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := Builtin()

	react := s.React()
	react.Rules.Set("react/jsx-key", lintconfig.Off())
	react.Plugins["extra"] = lintconfig.NewPlugin("x", nil)
	react.Files = lintconfig.Patterns{"*.jsx"}

	fresh := s.React()
	got, _ := fresh.Rules.Get("react/jsx-key")
	assert.Equal(t, lintconfig.SeverityError, got.Severity)
	assert.NotContains(t, fresh.Plugins, "extra")
	assert.Nil(t, fresh.Files)

	base := s.Base()
	base[1].Rules.Set("eqeqeq", lintconfig.Off())
	eq, _ := s.BaseRule("eqeqeq")
	assert.Equal(t, lintconfig.SeverityError, eq.Severity)

	rec := s.PrettierRecommended()
	rec.Set("prettier/prettier", lintconfig.Off())
	got, _ = s.PrettierRecommended().Get("prettier/prettier")
	assert.Equal(t, lintconfig.SeverityError, got.Severity)
}

func TestPluginHandlesAreShared(t *testing.T) {
	s := Builtin()
	a := s.React().Plugins["react"]
	b := s.React().Plugins["react"]
	assert.Same(t, a.Ref(), b.Ref())

	h, ok := a.Ref().(*Handle)
	require.True(t, ok)
	assert.Equal(t, "eslint-plugin-react", h.Module)
}

func TestLookup(t *testing.T) {
	s := Builtin()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			blocks, err := s.Lookup(name)
			require.NoError(t, err)
			assert.NotEmpty(t, blocks)
		})
	}

	prettier, err := s.Lookup(NamePrettier)
	require.NoError(t, err)
	assert.Contains(t, prettier[0].Plugins, PrettierPluginID)

	_, err = s.Lookup("vue")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownPreset))
}

func TestLastRule(t *testing.T) {
	blocks := []lintconfig.Block{
		{Rules: lintconfig.RulesOf(lintconfig.RuleEntry{ID: "a", Setting: lintconfig.Rule(lintconfig.SeverityError)})},
		{Ignores: lintconfig.Patterns{"x"}},
		{Rules: lintconfig.RulesOf(lintconfig.RuleEntry{ID: "a", Setting: lintconfig.Off()})},
	}
	got, ok := LastRule(blocks, "a")
	require.True(t, ok)
	assert.Equal(t, lintconfig.SeverityOff, got.Severity)

	_, ok = LastRule(blocks, "missing")
	assert.False(t, ok)
}

func validFS() fstest.MapFS {
	return fstest.MapFS{
		baseFile:     {Data: []byte("- name: base\n  rules:\n    semi: error\n")},
		reactFile:    {Data: []byte("plugins:\n  react: eslint-plugin-react\n")},
		compatFile:   {Data: []byte("rules:\n  semi: \"off\"\n")},
		prettierFile: {Data: []byte("plugin: eslint-plugin-prettier\n")},
	}
}

func TestLoad(t *testing.T) {
	s, err := Load(validFS())
	require.NoError(t, err)
	assert.Len(t, s.Base(), 1)
	assert.Zero(t, s.PrettierRecommended().Len())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(fstest.MapFS)
		invalid bool
	}{
		{"missing file", func(m fstest.MapFS) { delete(m, reactFile) }, false},
		{"unknown field", func(m fstest.MapFS) { m[reactFile] = &fstest.MapFile{Data: []byte("extends: x\n")} }, true},
		{"bad severity", func(m fstest.MapFS) { m[compatFile] = &fstest.MapFile{Data: []byte("rules:\n  semi: loud\n")} }, true},
		{"no formatter plugin", func(m fstest.MapFS) { m[prettierFile] = &fstest.MapFile{Data: []byte("recommended: {}\n")} }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := validFS()
			tt.mutate(fsys)
			_, err := Load(fsys)
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, errors.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for name, f := range validFS() {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), f.Data, 0o644))
	}
	s, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "eslint-plugin-react", s.React().Plugins["react"].Module)
}
