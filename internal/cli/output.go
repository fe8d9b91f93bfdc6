package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var errEmptyRequest = errors.New("a request is required, e.g. srebuddy plan \"implement dynatrace in production\"")

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// requestFromArgs joins positional arguments into the request text.
func requestFromArgs(args []string) (string, error) {
	input := strings.TrimSpace(strings.Join(args, " "))
	if input == "" {
		return "", errEmptyRequest
	}
	return input, nil
}

// writeMarkdown prints a Markdown document, styled when stdout is a terminal
// and raw otherwise.
func writeMarkdown(cmd *cobra.Command, a *app, markdown string, raw bool) error {
	out := cmd.OutOrStdout()
	if raw || a.rt == nil || !isTerminal(out) {
		_, err := fmt.Fprint(out, markdown)
		return err
	}

	r, err := a.rt.Renderer()
	if err != nil {
		return err
	}
	styled, err := r.Render(markdown)
	if err != nil {
		a.logger().Warn("Falling back to plain output")
		_, err = fmt.Fprint(out, markdown)
		return err
	}
	_, err = fmt.Fprint(out, styled)
	return err
}
