package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sardesh/srebuddy/internal/config"
	"github.com/sardesh/srebuddy/internal/corpus"
	"github.com/sardesh/srebuddy/internal/git"
)

const (
	starterCorpusFile = "prompts.md"
	logIgnorePattern  = config.ProjectDir + "/*.log"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize srebuddy in the current directory",
		Long:  "Creates a .srebuddy/ folder with a default config, a starter prompt corpus, and a plans directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			return runInit(dir, cmd.OutOrStdout())
		},
	}
}

func runInit(dir string, out io.Writer) error {
	// Check prerequisites first
	if err := checkPrerequisites(dir); err != nil {
		return err
	}

	if IsInitialized(dir) {
		return fmt.Errorf("srebuddy is already initialized in this directory")
	}

	projectDir := filepath.Join(dir, config.ProjectDir)
	dirs := []string{
		projectDir,
		filepath.Join(projectDir, "plans"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}

	configPath, err := config.EnsureProjectConfig(dir)
	if err != nil {
		return err
	}

	corpusPath := filepath.Join(projectDir, starterCorpusFile)
	if err := os.WriteFile(corpusPath, []byte(corpus.Default()), 0644); err != nil {
		return fmt.Errorf("failed to write starter corpus: %w", err)
	}

	fmt.Fprintln(out, "Initialized srebuddy in", config.ProjectDir)
	fmt.Fprintln(out, "  config:", relTo(dir, configPath))
	fmt.Fprintln(out, "  corpus:", relTo(dir, corpusPath))

	// Logs stay local; config and corpus are meant to be committed
	if git.IsRepo(dir) {
		changed, err := git.EnsureIgnored(dir, logIgnorePattern)
		if err != nil {
			return err
		}
		if changed {
			fmt.Fprintln(out, "  .gitignore: added", logIgnorePattern)
		}
	}
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Edit the corpus to add templates for your stack")
	fmt.Fprintln(out, `  2. Run: srebuddy prompt "implement dynatrace in production kubernetes"`)
	return nil
}

func relTo(base, path string) string {
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
