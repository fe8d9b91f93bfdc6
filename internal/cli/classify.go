package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sardesh/srebuddy/internal/task"
)

// Output formats for classify.
const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

func newClassifyCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "classify <request...>",
		Short: "Show how a request is classified",
		Example: `  srebuddy classify "urgent: deploy payments-api to production"
  srebuddy classify --output json "configure grafana in staging"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := requestFromArgs(args)
			if err != nil {
				return err
			}
			d := task.Parse(input)
			a.logger().Debug("Classified request",
				zap.String("type", string(d.Type)),
				zap.String("target", d.Target))
			return writeDescriptor(cmd.OutOrStdout(), d, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format: text|yaml|json")
	return cmd
}

func writeDescriptor(w io.Writer, d task.Descriptor, format string) error {
	switch format {
	case outputText, "":
		fmt.Fprintf(w, "Type:        %s\n", d.Type)
		fmt.Fprintf(w, "Target:      %s\n", d.Target)
		fmt.Fprintf(w, "Environment: %s\n", d.EnvironmentOr("-"))
		fmt.Fprintf(w, "Urgency:     %s\n", orDash(string(d.Urgency)))
		if d.Parameters.Len() > 0 {
			fmt.Fprintln(w, "Parameters:")
			for _, p := range d.Parameters {
				fmt.Fprintf(w, "  %s: %s\n", p.Key, p.Value)
			}
		}
		return nil
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode descriptor: %w", err)
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode descriptor: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, yaml or json)", format)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
