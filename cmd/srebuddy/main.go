package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/cli"
	"github.com/sardesh/srebuddy/internal/report"
	"github.com/sardesh/srebuddy/internal/tui"
	"github.com/sardesh/srebuddy/internal/version"
)

func main() {
	args := os.Args[1:]

	// Subcommands route to the CLI; no args or flags only launch the TUI
	if !isInteractive(args) {
		if err := cli.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	res, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if res.ShowHelp {
		fmt.Fprint(os.Stdout, res.HelpText)
		return
	}
	if res.ShowVersion {
		fmt.Fprintf(os.Stdout, "srebuddy version %s\n", version.String())
		return
	}

	if err := runTUI(res.Options); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(opts launchOptions) error {
	rt, err := cli.LoadRuntime(cli.RuntimeOptions{
		ConfigPath: opts.ConfigPath,
		Verbose:    opts.Verbose,
		LogToFile:  true,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	var renderer *report.Renderer
	if r, err := rt.Renderer(); err != nil {
		rt.Logger.Warn("Markdown styling disabled", zap.Error(err))
	} else {
		renderer = r
	}

	source := rt.CorpusSource(nil)
	return tui.Run(tui.Options{
		Engine:   rt.Engine(source),
		Source:   source,
		Renderer: renderer,
		Logger:   rt.Logger,
		Command:  opts.Command,
	})
}
