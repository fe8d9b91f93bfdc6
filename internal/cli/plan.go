package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/plan"
	"github.com/sardesh/srebuddy/internal/report"
	"github.com/sardesh/srebuddy/internal/task"
)

func newPlanCmd(a *app) *cobra.Command {
	var (
		save bool
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "plan <request...>",
		Short: "Synthesize an implementation plan for a request",
		Long: `Classifies the request and prints a step-by-step implementation plan with
prerequisites, risk, validation checks and rollback steps.

With --save the plan is stored under .srebuddy/plans/<id>-<name>/.`,
		Example: `  srebuddy plan "implement dynatrace in production kubernetes"
  srebuddy plan --save "set up prometheus alerting for checkout in staging"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := requestFromArgs(args)
			if err != nil {
				return err
			}

			d := task.Parse(input)
			p := plan.Generate(d)
			document := report.PlanDocument(d, p)

			a.logger().Info("Generated plan",
				zap.String("target", d.Target),
				zap.Int("steps", len(p.Steps)),
				zap.String("risk", string(p.RiskLevel)))

			if err := writeMarkdown(cmd, a, document, raw); err != nil {
				return err
			}

			if save {
				path, err := savePlan(a, d, p, document)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved plan to %s\n", relTo(a.rt.Config.Root, path))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the plan under .srebuddy/plans")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print Markdown without terminal styling")
	return cmd
}

func savePlan(a *app, d task.Descriptor, p *plan.ImplementationPlan, document string) (string, error) {
	if err := RequireInitialized(a.rt.Config.Root); err != nil {
		return "", err
	}

	store := a.rt.PlanStore()
	sp, err := store.NewSavedPlan(d, p)
	if err != nil {
		return "", err
	}

	path, err := store.Save(sp, document)
	if err != nil {
		return "", err
	}

	a.logger().Info("Saved plan", zap.String("id", sp.ID), zap.String("path", path))
	return path, nil
}
