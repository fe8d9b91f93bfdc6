// Package report renders plans and prompts as Markdown results documents.
package report

import (
	"fmt"
	"strings"

	"github.com/sardesh/srebuddy/internal/plan"
	"github.com/sardesh/srebuddy/internal/prompt"
	"github.com/sardesh/srebuddy/internal/task"
)

// PlanDocument renders the descriptor and its plan.
func PlanDocument(d task.Descriptor, p *plan.ImplementationPlan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", p.Summary)

	sb.WriteString("## Request\n\n")
	sb.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Type | %s |\n", d.Type)
	fmt.Fprintf(&sb, "| Target | %s |\n", d.Target)
	fmt.Fprintf(&sb, "| Environment | %s |\n", orDash(string(d.Environment)))
	fmt.Fprintf(&sb, "| Urgency | %s |\n", orDash(string(d.Urgency)))
	for _, param := range d.Parameters {
		fmt.Fprintf(&sb, "| %s | %s |\n", param.Key, escapeCell(param.Value))
	}
	fmt.Fprintf(&sb, "\n> %s\n\n", d.RawInput)

	sb.WriteString("## Assessment\n\n")
	fmt.Fprintf(&sb, "- **Risk:** %s\n", RiskBadge(p.RiskLevel))
	fmt.Fprintf(&sb, "- **Complexity:** %s\n", p.Complexity)
	fmt.Fprintf(&sb, "- **Estimated time:** %s\n\n", p.EstimatedTime)

	if len(p.Prerequisites) > 0 {
		sb.WriteString("## Prerequisites\n\n")
		for _, item := range p.Prerequisites {
			fmt.Fprintf(&sb, "- [ ] %s\n", item)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Steps\n\n")
	for _, step := range p.Steps {
		writeStep(&sb, step)
	}

	if len(p.RollbackSteps) > 0 {
		sb.WriteString("## Rollback\n\n")
		for i, item := range p.RollbackSteps {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeStep(sb *strings.Builder, step plan.Step) {
	fmt.Fprintf(sb, "### %d. %s\n\n", step.Number, step.Title)
	if step.Description != "" {
		fmt.Fprintf(sb, "%s\n\n", step.Description)
	}
	if step.CodeExample != "" {
		fmt.Fprintf(sb, "```%s\n%s\n```\n\n", codeLanguage(step.CodeExample), strings.TrimRight(step.CodeExample, "\n"))
	}
	if len(step.Documentation) > 0 {
		sb.WriteString("**Documentation**\n\n")
		for _, doc := range step.Documentation {
			fmt.Fprintf(sb, "- %s\n", doc)
		}
		sb.WriteString("\n")
	}
	if len(step.Validation) > 0 {
		sb.WriteString("**Validation**\n\n")
		for _, check := range step.Validation {
			fmt.Fprintf(sb, "- [ ] %s\n", check)
		}
		sb.WriteString("\n")
	}
}

// PromptInfo describes a composed prompt for display.
type PromptInfo struct {
	Command string
	Source  prompt.Source
	Score   float64
	Prompt  string
}

// PromptDocument renders a composed prompt with a short provenance header.
// The prompt text itself is placed in a fenced block so it is shown
// exactly as it will be handed off.
func PromptDocument(info PromptInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Prompt: %s\n\n", info.Command)

	switch info.Source {
	case prompt.SourceTemplate:
		fmt.Fprintf(&sb, "Matched a corpus template (score %.2f).\n\n", info.Score)
	case prompt.SourceFallback:
		sb.WriteString("No corpus template matched; using the built-in prompt for this command.\n\n")
	default:
		sb.WriteString("No template or built-in prompt exists for this command; using the generic outline.\n\n")
	}

	fence := "```"
	for strings.Contains(info.Prompt, fence) {
		fence += "`"
	}
	fmt.Fprintf(&sb, "%smarkdown\n%s\n%s\n", fence, info.Prompt, fence)
	return sb.String()
}

// RiskBadge labels a risk level for display.
func RiskBadge(level plan.RiskLevel) string {
	switch level {
	case plan.RiskHigh:
		return "HIGH"
	case plan.RiskMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func codeLanguage(code string) string {
	trimmed := strings.TrimSpace(code)
	switch {
	case strings.HasPrefix(trimmed, "apiVersion:"), strings.HasPrefix(trimmed, "---"):
		return "yaml"
	case strings.HasPrefix(trimmed, "{"):
		return "json"
	default:
		return "bash"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
