package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/docs"
	"github.com/sardesh/srebuddy/internal/handoff"
	"github.com/sardesh/srebuddy/internal/pipeline"
	"github.com/sardesh/srebuddy/internal/report"
)

type promptOptions struct {
	command  string
	corpus   []string
	docFiles []string
	docURLs  []string
	copy     bool
	out      string
	explain  bool
}

func newPromptCmd(a *app) *cobra.Command {
	opts := &promptOptions{}

	cmd := &cobra.Command{
		Use:   "prompt <request...>",
		Short: "Compose an LLM prompt for a request",
		Long: `Matches the request against the template corpus and prints the composed prompt.

Reference documentation from --docs-file and --docs-url is converted to Markdown
and appended to the prompt. HTML pages are converted automatically.`,
		Example: `  srebuddy prompt "implement dynatrace in production kubernetes"
  srebuddy prompt --command monitor --docs-url https://prometheus.io/docs/alerting/latest/overview/ "alert on checkout latency"
  srebuddy prompt --copy "deploy payments-api to staging"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := requestFromArgs(args)
			if err != nil {
				return err
			}
			return runPrompt(cmd, a, opts, input)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.command, "command", "c", "", "Template command (default: derived from the request type)")
	f.StringSliceVar(&opts.corpus, "corpus", nil, "Corpus files or globs (replaces the configured paths)")
	f.StringArrayVar(&opts.docFiles, "docs-file", nil, "Documentation file to include (repeatable)")
	f.StringArrayVar(&opts.docURLs, "docs-url", nil, "Documentation URL to fetch and include (repeatable)")
	f.BoolVar(&opts.copy, "copy", false, "Copy the prompt to the clipboard")
	f.StringVarP(&opts.out, "out", "O", "", "Write the prompt to a file")
	f.BoolVar(&opts.explain, "explain", false, "Show which template was used along with the prompt")
	return cmd
}

func runPrompt(cmd *cobra.Command, a *app, opts *promptOptions, input string) error {
	patterns, err := absPatterns(opts.corpus)
	if err != nil {
		return err
	}

	engine := a.rt.Engine(a.rt.CorpusSource(patterns))
	result, err := engine.Run(cmd.Context(), pipeline.Request{
		Input:   input,
		Command: opts.command,
		Docs:    docs.Request{Files: opts.docFiles, URLs: opts.docURLs},
	})
	if err != nil {
		return err
	}

	a.logger().Info("Composed prompt",
		zap.String("request_id", result.RequestID),
		zap.String("command", result.Command),
		zap.String("source", string(result.Source)),
		zap.Int("docs", len(result.Docs)))

	stderr := cmd.ErrOrStderr()
	delivered := false

	if opts.out != "" {
		if err := handoff.ToFile(opts.out, result.Prompt); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Wrote prompt to %s\n", opts.out)
		delivered = true
	}

	if opts.copy {
		if !handoff.ClipboardAvailable() {
			return fmt.Errorf("no clipboard is available on this system; use --out instead")
		}
		if err := handoff.ToClipboard(result.Prompt); err != nil {
			return err
		}
		fmt.Fprintln(stderr, "Copied prompt to clipboard")
		delivered = true
	}

	if opts.explain {
		return writeMarkdown(cmd, a, report.PromptDocument(report.PromptInfo{
			Command: result.Command,
			Source:  result.Source,
			Score:   result.Score.Total,
			Prompt:  result.Prompt,
		}), false)
	}

	if delivered {
		return nil
	}
	return handoff.ToWriter(cmd.OutOrStdout(), result.Prompt)
}

// absPatterns makes command-line corpus paths relative to the working
// directory rather than the project root.
func absPatterns(patterns []string) ([]string, error) {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid corpus path %q: %w", p, err)
		}
		out = append(out, abs)
	}
	return out, nil
}
