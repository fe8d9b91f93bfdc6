package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupTestDir(t *testing.T) {
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	t.Run("changes into a fresh directory", func(t *testing.T) {
		dir := SetupTestDir(t)

		cwd, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if cwd != dir {
			t.Errorf("expected cwd %q, got %q", dir, cwd)
		}
		if home := os.Getenv("HOME"); home == "" || home == dir {
			t.Errorf("expected HOME to point at a separate temp dir, got %q", home)
		}
	})

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if cwd != original {
		t.Errorf("expected cwd restored to %q, got %q", original, cwd)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := WriteFile(t, dir, filepath.Join("a", "b", "c.md"), "hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("got %q, want %q", data, "hello")
	}
}
