package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// launchOptions configure the interactive interface.
type launchOptions struct {
	ConfigPath string
	Verbose    bool
	Command    string
}

type parseResult struct {
	Options     launchOptions
	ShowHelp    bool
	ShowVersion bool
	HelpText    string
}

// valueFlags take a separate value argument unless written as --flag=value.
var valueFlags = map[string]bool{"config": true, "command": true}

// isInteractive reports whether args start the interactive interface rather
// than a subcommand: no args, or flags only.
func isInteractive(args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return false
		}
		name := strings.TrimLeft(arg, "-")
		if valueFlags[name] {
			i++
		}
	}
	return true
}

func parseArgs(args []string) (parseResult, error) {
	fs := flag.NewFlagSet("srebuddy", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	configPath := fs.String("config", "", "Path to a config file (replaces the project config)")
	verbose := fs.Bool("verbose", false, "Enable debug logging to .srebuddy/srebuddy.log")
	command := fs.String("command", "", "Preselect the template command (e.g. implement, monitor)")
	showVersion := fs.Bool("version", false, "Show version information")
	showVersionShort := fs.Bool("v", false, "Show version information")

	usage := func() string {
		var b strings.Builder
		fmt.Fprintln(&b, "Usage: srebuddy [flags]")
		fmt.Fprintln(&b, "       srebuddy <command> [args]")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "srebuddy turns SRE requests into implementation plans and LLM prompts.")
		fmt.Fprintln(&b, "Without a command it starts the interactive interface.")
		fmt.Fprintln(&b, "Run 'srebuddy help' for the list of commands.")
		fmt.Fprintln(&b, "")
		fmt.Fprintln(&b, "Flags:")
		fs.SetOutput(&b)
		fs.PrintDefaults()
		fs.SetOutput(io.Discard)
		return b.String()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return parseResult{ShowHelp: true, HelpText: usage()}, nil
		}
		return parseResult{}, fmt.Errorf("%v\n\n%s", err, usage())
	}

	if fs.NArg() > 0 {
		return parseResult{}, fmt.Errorf("positional args are not supported\n\n%s", usage())
	}

	if *showVersion || *showVersionShort {
		return parseResult{ShowVersion: true}, nil
	}

	return parseResult{
		Options: launchOptions{
			ConfigPath: *configPath,
			Verbose:    *verbose,
			Command:    strings.ToLower(strings.TrimSpace(*command)),
		},
	}, nil
}
