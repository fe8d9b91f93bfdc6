package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoader_DefaultsWithoutFiles(t *testing.T) {
	work := t.TempDir()
	l := NewLoader(nil)
	l.HomeDir = t.TempDir()
	l.WorkDir = work

	c, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Docs, c.Docs)
	assert.Equal(t, work, c.Root)
}

func TestLoader_Precedence(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	nested := filepath.Join(project, "services", "api")
	require.NoError(t, os.MkdirAll(nested, 0755))

	writeYAML(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
docs:
  timeout: 30s
  concurrency: 2
logging:
  level: info
`)
	writeYAML(t, filepath.Join(project, ProjectDir, ProjectConfigFile), `
docs:
  concurrency: 6
corpus:
  paths:
    - runbooks/*.md
`)

	l := NewLoader(nil)
	l.HomeDir = home
	l.WorkDir = nested

	c, err := l.Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, c.Docs.Timeout, "user value kept")
	assert.Equal(t, 6, c.Docs.Concurrency, "project overrides user")
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, []string{"runbooks/*.md"}, c.Corpus.Paths)
	assert.Equal(t, project, c.Root)
}

func TestLoader_ExplicitPathReplacesProjectConfig(t *testing.T) {
	project := t.TempDir()
	writeYAML(t, filepath.Join(project, ProjectDir, ProjectConfigFile), "docs:\n  concurrency: 6\n")
	explicit := filepath.Join(t.TempDir(), "custom.yaml")
	writeYAML(t, explicit, "docs:\n  concurrency: 3\n")

	l := NewLoader(nil)
	l.HomeDir = t.TempDir()
	l.WorkDir = project

	c, err := l.Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Docs.Concurrency)
}

func TestLoader_MissingExplicitPathFails(t *testing.T) {
	l := NewLoader(nil)
	l.HomeDir = t.TempDir()
	l.WorkDir = t.TempDir()

	_, err := l.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoader_InvalidMergedConfig(t *testing.T) {
	project := t.TempDir()
	writeYAML(t, filepath.Join(project, ProjectDir, ProjectConfigFile), "logging:\n  level: shouting\n")

	l := NewLoader(nil)
	l.HomeDir = t.TempDir()
	l.WorkDir = project

	_, err := l.Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnsureProjectConfig(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureProjectConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectDir, ProjectConfigFile), path)

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Output, loaded.Output)

	// Existing files are left alone.
	require.NoError(t, os.WriteFile(path, []byte("output:\n  width: 100\n"), 0644))
	_, err = EnsureProjectConfig(dir)
	require.NoError(t, err)
	loaded, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 100, loaded.Output.Width)
}
