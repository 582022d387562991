package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "stripts.json",
		`{"jsx": true, "jsxPragma": "h", "outDir": "dist", "extension": ".mjs"}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.JSX)
	assert.True(t, *cfg.JSX)
	require.NotNil(t, cfg.JSXPragma)
	assert.Equal(t, "h", *cfg.JSXPragma)
	assert.Equal(t, "dist", cfg.OutputDir())
	assert.Equal(t, ".mjs", cfg.OutputExtension())
}

func TestLoadFilePartial(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "stripts.json", `{"jsx": true}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.JSXPragma)
	assert.Equal(t, "", cfg.OutputDir())
	assert.Equal(t, ".js", cfg.OutputExtension())
}

func TestLoadFileInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "stripts.json", `{not json`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "stripts.json", `{"jsxPragma": "h"}`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := Load(nested)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, filepath.Join(root, "stripts.json"), path)
	assert.Equal(t, "h", *cfg.JSXPragma)
}

func TestLoadPrefersStriptsJSON(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "stripts.json", `{"jsxPragma": "a"}`)
	writeConfig(t, dir, ".striptsrc", `{"jsxPragma": "b"}`)

	cfg, path, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "stripts.json"), path)
	assert.Equal(t, "a", *cfg.JSXPragma)
}

func TestLoadNotFound(t *testing.T) {
	cfg, path, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Equal(t, "", path)
}

func TestToOptions(t *testing.T) {
	jsx := true
	pragma := "h"
	cfg := &Config{JSX: &jsx, JSXPragma: &pragma}
	opts := cfg.ToOptions()
	assert.True(t, opts.JSX)
	assert.Equal(t, "h", opts.JSXPragma)
}

func TestMerge(t *testing.T) {
	filePragma := "fromFile"
	cliPragma := "fromCLI"
	jsx := true

	cfg := &Config{JSXPragma: &filePragma, JSX: &jsx}
	merged := Merge(cfg, MergeOptions{JSXPragma: &cliPragma})

	assert.Equal(t, "fromCLI", *merged.JSXPragma)
	assert.True(t, *merged.JSX)
}

func TestMergeNilConfig(t *testing.T) {
	out := "build"
	merged := Merge(nil, MergeOptions{OutDir: &out})
	assert.Equal(t, "build", merged.OutputDir())
}
