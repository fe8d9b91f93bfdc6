// Package handoff delivers composed prompts to where they will be used.
package handoff

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardWriteAll is replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

// ClipboardAvailable reports whether a system clipboard can be used.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}

// ToClipboard copies text to the system clipboard.
func ToClipboard(text string) error {
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

// ToFile writes text to path, creating parent directories.
func ToFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(ensureNewline(text)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ToWriter writes text followed by a newline.
func ToWriter(w io.Writer, text string) error {
	_, err := io.WriteString(w, ensureNewline(text))
	return err
}

func ensureNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
