package handoff

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestToClipboard(t *testing.T) {
	original := clipboardWriteAll
	defer func() { clipboardWriteAll = original }()

	var copied string
	clipboardWriteAll = func(text string) error {
		copied = text
		return nil
	}

	if err := ToClipboard("prompt text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copied != "prompt text" {
		t.Errorf("got %q, want %q", copied, "prompt text")
	}

	clipboardWriteAll = func(string) error { return errors.New("no xclip") }
	if err := ToClipboard("x"); err == nil {
		t.Error("expected error when clipboard fails")
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "prompt.md")

	if err := ToFile(path, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != "hello\n" {
		t.Errorf("got %q, want %q", data, "hello\n")
	}
}

func TestToWriter(t *testing.T) {
	var buf bytes.Buffer
	if err := ToWriter(&buf, "already\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "already\n" {
		t.Errorf("got %q", buf.String())
	}
}
