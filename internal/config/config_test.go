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

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "trellis.yaml", `baseUrl: src
include:
  - "src/**/*.ts"
exclude:
  - "**/*.spec.ts"
`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, p.Path)
	assert.Equal(t, dir, p.RootDir)
	assert.Equal(t, filepath.Join(dir, "src"), p.BaseURL)
	assert.Equal(t, []string{"src/**/*.ts"}, p.Include)
	assert.Equal(t, []string{"**/*.spec.ts"}, p.Exclude)
}

func TestLoad_TSConfigJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "tsconfig.json", `{
  "compilerOptions": {"baseUrl": "app"},
  "include": ["app/**/*.ts"]
}`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app"), p.BaseURL)
	assert.Equal(t, []string{"app/**/*.ts"}, p.Include)
}

func TestLoad_AbsoluteBaseURLKept(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "trellis.yaml", "baseUrl: /opt/src\n")

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/src", p.BaseURL)
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "trellis.yaml", "include: {not: [valid\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFind_WalksParents(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "trellis.yaml", "baseUrl: src\n")
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, root, p.RootDir)
}

func TestFind_PrefersNearestConfig(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "trellis.yaml", "baseUrl: outer\n")
	inner := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	writeConfig(t, inner, "tsconfig.json", `{"compilerOptions": {"baseUrl": "inner"}}`)

	p, err := Find(inner)
	require.NoError(t, err)
	assert.Equal(t, inner, p.RootDir)
	assert.Equal(t, filepath.Join(inner, "inner"), p.BaseURL)
}

func TestFind_NoConfig(t *testing.T) {
	_, err := Find(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConfigRoot)
}

func TestMatch(t *testing.T) {
	p := &Project{
		Include: []string{"src/**/*.ts"},
		Exclude: []string{"**/*.spec.ts"},
	}

	assert.True(t, p.Match("src/app/widget.ts"))
	assert.False(t, p.Match("lib/widget.ts"))
	assert.False(t, p.Match("src/app/widget.spec.ts"))
}

func TestMatch_EmptyIncludeAdmitsAll(t *testing.T) {
	p := Default(t.TempDir())
	assert.True(t, p.Match("anything/at/all.ts"))

	p.Exclude = []string{"skip/**"}
	assert.True(t, p.Match("keep/file.ts"))
	assert.False(t, p.Match("skip/file.ts"))
}
