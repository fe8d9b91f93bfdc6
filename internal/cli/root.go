package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/version"
)

// app holds the state shared by commands for one invocation.
type app struct {
	configPath string
	verbose    bool

	rt *Runtime
}

func (a *app) logger() *zap.Logger {
	if a.rt == nil {
		return zap.NewNop()
	}
	return a.rt.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "srebuddy",
		Short: "Turn SRE requests into implementation plans and LLM prompts",
		Long: `srebuddy classifies a free-text operational request, synthesizes an implementation
plan for it, and composes a prompt for a language model from a corpus of
example-tagged templates.

Run without arguments to start the interactive interface.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, err := LoadRuntime(RuntimeOptions{
				ConfigPath: a.configPath,
				Verbose:    a.verbose,
			})
			if err != nil {
				return err
			}
			a.rt = rt
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.rt != nil {
				a.rt.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file (replaces the project config)")
	rootCmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(a),
		newClassifyCmd(a),
		newPlanCmd(a),
		newPromptCmd(a),
		newTemplatesCmd(a),
	)

	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the root command with args, writing to stdout and
// stderr. Errors are printed as "Error: ..." on stderr.
func ExecuteArgs(args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}
