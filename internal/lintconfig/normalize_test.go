package lintconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("files from a single pattern", func(t *testing.T) {
		b := Normalize(decodeOverride(t, `{files: "*.ts", space: true}`))
		assert.Equal(t, Patterns{"*.ts"}, b.Files)
		require.NotNil(t, b.Rules)
		assert.Zero(t, b.Rules.Len())
	})

	t.Run("absent files stay absent", func(t *testing.T) {
		b := Normalize(decodeOverride(t, `{semicolon: false}`))
		assert.Nil(t, b.Files)
		assert.Equal(t, []string{KeyRules}, b.Keys())
	})

	t.Run("null files with other keys", func(t *testing.T) {
		b := Normalize(decodeOverride(t, `{files: null, rules: {eqeqeq: error}}`))
		assert.Nil(t, b.Files)
		assert.Equal(t, []string{"eqeqeq"}, b.Rules.IDs())
	})

	t.Run("name plugins and scoped ignores carried", func(t *testing.T) {
		b := Normalize(decodeOverride(t, `{name: n, files: a, ignores: a/gen/**, plugins: {x: mod}}`))
		assert.Equal(t, "n", b.Name)
		assert.Equal(t, Patterns{"a/gen/**"}, b.Ignores)
		assert.Equal(t, "mod", b.Plugins["x"].Module)
	})

	t.Run("does not alias the override", func(t *testing.T) {
		o := decodeOverride(t, `{files: [a], rules: {r: error}, plugins: {x: mod}}`)
		b := Normalize(o)
		b.Files[0] = "z"
		b.Rules.Set("other", Off())
		b.Plugins["y"] = NewPlugin("y", nil)

		assert.Equal(t, Patterns{"a"}, o.Files)
		assert.Equal(t, 1, o.Rules.Len())
		assert.Len(t, o.Plugins, 1)
	})
}

func TestGlobalIgnore(t *testing.T) {
	b := GlobalIgnore(decodeOverride(t, `{name: generated, ignores: "gen/**"}`))
	assert.Equal(t, Block{Name: "generated", Ignores: Patterns{"gen/**"}}, b)
	assert.True(t, b.IsGlobalIgnore())
}
