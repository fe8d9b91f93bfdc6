package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sardesh/srebuddy/internal/template"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaultCorpusParses(t *testing.T) {
	templates := template.Parse(Default())
	require.NotEmpty(t, templates)

	commands := make(map[string]bool)
	for _, tpl := range templates {
		commands[tpl.Command] = true
		assert.NotEmpty(t, tpl.Examples, "template for %s has no examples", tpl.Command)
		assert.NotEmpty(t, tpl.Body, "template for %s has no body", tpl.Command)
	}

	for _, command := range []string{"implement", "configure", "monitor", "deploy", "troubleshoot", "docs"} {
		assert.True(t, commands[command], "embedded corpus has no %s template", command)
	}
}

func TestSource_LoadConcatenatesInPatternOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "team", "b.md"), "B")
	writeFile(t, filepath.Join(root, "team", "a.md"), "A")
	writeFile(t, filepath.Join(root, "team", "nested", "c.md"), "C")
	writeFile(t, filepath.Join(root, "team", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "first.md"), "FIRST")

	s := NewSource(root, []string{"first.md", "team/**/*.md", "team/a.md"}, false, nil)
	c := s.Load()

	assert.Equal(t, "FIRST\n\nA\n\nB\n\nC", c.Text)
	assert.Equal(t, []string{
		filepath.Join(root, "first.md"),
		filepath.Join(root, "team", "a.md"),
		filepath.Join(root, "team", "b.md"),
		filepath.Join(root, "team", "nested", "c.md"),
	}, c.Files)
	assert.False(t, c.Embedded())
}

func TestSource_FallsBackToEmbedded(t *testing.T) {
	s := NewSource(t.TempDir(), []string{"missing.md", "nothing/**/*.md"}, false, nil)
	c := s.Load()

	assert.True(t, c.Embedded())
	assert.Equal(t, Default(), c.Text)
}

func TestSource_EmbeddedDisabled(t *testing.T) {
	s := NewSource(t.TempDir(), []string{"missing.md"}, true, nil)
	c := s.Load()

	assert.False(t, c.Embedded())
	assert.Empty(t, c.Text)
	assert.Empty(t, template.Parse(c.Text))
}

func TestSource_AbsolutePatterns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abs.md")
	writeFile(t, path, "ABS")

	s := NewSource("/somewhere/else", []string{path}, true, nil)
	assert.Equal(t, "ABS", s.Load().Text)
}

func TestSource_WatchDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "prompts.md"), "x")
	writeFile(t, filepath.Join(root, "lib", "deep", "y.md"), "y")

	s := NewSource(root, []string{"prompts.md", "lib/**/*.md", "absent/*.md"}, false, nil)

	assert.Equal(t, []string{
		root,
		filepath.Join(root, "lib"),
		filepath.Join(root, "lib", "deep"),
	}, s.WatchDirs())
}

func TestSource_Matches(t *testing.T) {
	root := t.TempDir()
	s := NewSource(root, []string{"prompts.md", "lib/**/*.md"}, false, nil)

	assert.True(t, s.Matches(filepath.Join(root, "prompts.md")))
	assert.True(t, s.Matches(filepath.Join(root, "lib", "x", "y.md")))
	assert.False(t, s.Matches(filepath.Join(root, "lib", "x", "y.txt")))
	assert.False(t, s.Matches(filepath.Join(root, "other.md")))
}
