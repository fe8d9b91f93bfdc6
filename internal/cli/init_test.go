package cli

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sardesh/srebuddy/internal/config"
	"github.com/sardesh/srebuddy/internal/corpus"
	"github.com/sardesh/srebuddy/internal/testutil"
)

func TestRunInit(t *testing.T) {
	t.Run("creates project directory, config and starter corpus", func(t *testing.T) {
		dir := testutil.SetupTestDir(t)
		var out bytes.Buffer

		if err := runInit(dir, &out); err != nil {
			t.Fatalf("runInit failed: %v", err)
		}

		for _, d := range []string{".srebuddy", filepath.Join(".srebuddy", "plans")} {
			info, err := os.Stat(filepath.Join(dir, d))
			if err != nil {
				t.Fatalf("expected %s to exist, got error: %v", d, err)
			}
			if !info.IsDir() {
				t.Errorf("expected %s to be a directory", d)
			}
		}

		cfg, err := config.LoadFromFile(filepath.Join(dir, ".srebuddy", "config.yaml"))
		if err != nil {
			t.Fatalf("expected a readable config, got: %v", err)
		}
		if len(cfg.Corpus.Paths) == 0 {
			t.Error("expected config to list corpus paths")
		}

		prompts, err := os.ReadFile(filepath.Join(dir, ".srebuddy", "prompts.md"))
		if err != nil {
			t.Fatalf("expected prompts.md to exist, got error: %v", err)
		}
		if string(prompts) != corpus.Default() {
			t.Error("expected prompts.md to hold the default corpus")
		}

		if !strings.Contains(out.String(), "Next steps") {
			t.Errorf("expected next steps in output, got: %s", out.String())
		}
	})

	t.Run("inside a git repo the log is ignored", func(t *testing.T) {
		if _, err := exec.LookPath("git"); err != nil {
			t.Skip("git not installed")
		}
		dir := testutil.SetupTestDir(t)
		if err := exec.Command("git", "init").Run(); err != nil {
			t.Fatalf("failed to init git repo: %v", err)
		}

		if err := runInit(dir, &bytes.Buffer{}); err != nil {
			t.Fatalf("runInit failed: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
		if err != nil {
			t.Fatalf("expected .gitignore to exist, got error: %v", err)
		}
		if string(content) != ".srebuddy/*.log\n" {
			t.Errorf("expected .gitignore to contain the log pattern, got %q", string(content))
		}
	})

	t.Run("outside a git repo no .gitignore is written", func(t *testing.T) {
		dir := testutil.SetupTestDir(t)

		if err := runInit(dir, &bytes.Buffer{}); err != nil {
			t.Fatalf("runInit failed: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, ".gitignore")); !os.IsNotExist(err) {
			t.Errorf("expected no .gitignore, got err=%v", err)
		}
	})

	t.Run("second init fails", func(t *testing.T) {
		dir := testutil.SetupTestDir(t)

		if err := runInit(dir, &bytes.Buffer{}); err != nil {
			t.Fatalf("first init failed: %v", err)
		}

		err := runInit(dir, &bytes.Buffer{})
		if err == nil {
			t.Fatal("expected error on second init, got nil")
		}
		if !strings.Contains(err.Error(), "already initialized") {
			t.Errorf("expected 'already initialized' error, got: %v", err)
		}
	})
}
