package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sardesh/srebuddy/internal/util"
)

func newTemplatesCmd(a *app) *cobra.Command {
	var (
		command string
		corpus  []string
	)

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the templates in the corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, err := absPatterns(corpus)
			if err != nil {
				return err
			}

			templates, c := a.rt.Engine(a.rt.CorpusSource(patterns)).Templates()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Corpus: %s\n\n", strings.Join(c.Files, ", "))

			t := table.New().
				Border(lipgloss.HiddenBorder()).
				Headers("COMMAND", "EXAMPLES", "TAGS", "FIRST EXAMPLE")

			shown := 0
			for _, tpl := range templates {
				if command != "" && !strings.EqualFold(tpl.Command, command) {
					continue
				}
				first := ""
				if len(tpl.Examples) > 0 {
					first = util.Truncate(tpl.Examples[0], 50)
				}
				t.Row(tpl.Command, strconv.Itoa(len(tpl.Examples)), strings.Join(tpl.Tags, ","), first)
				shown++
			}

			if shown == 0 {
				fmt.Fprintln(out, "No templates found.")
				return nil
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "Only list templates for this command")
	cmd.Flags().StringSliceVar(&corpus, "corpus", nil, "Corpus files or globs (replaces the configured paths)")
	return cmd
}
