// Package prompt composes the final instruction document handed to a
// language model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sardesh/srebuddy/internal/task"
	"github.com/sardesh/srebuddy/internal/template"
)

// Source identifies which branch produced a prompt body.
type Source string

const (
	SourceTemplate Source = "template"
	SourceFallback Source = "fallback"
	SourceGeneric  Source = "generic"
)

// UnspecifiedEnvironment replaces {environment} when the request named none.
const UnspecifiedEnvironment = "not specified"

const (
	additionalContextHeader = "## Additional Context"
	referenceDocsHeader     = "## Reference Documentation"
	referenceDocsPreamble   = "The documentation below was retrieved for this request. " +
		"Treat it as authoritative: when it conflicts with your general knowledge, follow the documentation."
)

// Compose builds the prompt for d. The body comes from tpl when it is
// non-nil, otherwise from the built-in fallback for command, otherwise from
// a generic outline. Parameters and non-blank external context are appended
// as extra sections in every case.
func Compose(tpl *template.Template, command string, d task.Descriptor, external string) string {
	body, _ := Body(tpl, command, d)
	return finish(body, d, external)
}

// Body resolves and fills the prompt body without the trailing sections and
// reports which branch produced it.
func Body(tpl *template.Template, command string, d task.Descriptor) (string, Source) {
	command = strings.ToLower(strings.TrimSpace(command))

	if tpl != nil && strings.TrimSpace(tpl.Body) != "" {
		return Fill(tpl.Body, d), SourceTemplate
	}
	if body, ok := fallbackBodies[command]; ok {
		return Fill(body, d), SourceFallback
	}
	return genericBody(command, d), SourceGeneric
}

// Generic composes the generic outline prompt, with the same trailing
// sections as Compose.
func Generic(command string, d task.Descriptor, external string) string {
	return finish(genericBody(strings.ToLower(strings.TrimSpace(command)), d), d, external)
}

// Fill replaces every {target}, {environment}, {rawInput} and {type}
// placeholder in body.
func Fill(body string, d task.Descriptor) string {
	r := strings.NewReplacer(
		"{target}", d.Target,
		"{environment}", d.EnvironmentOr(UnspecifiedEnvironment),
		"{rawInput}", d.RawInput,
		"{type}", string(d.Type),
	)
	return r.Replace(body)
}

// CommandFor returns the default command for a task type.
func CommandFor(t task.Type) string {
	if t == "" {
		return string(task.TypeImplement)
	}
	return string(t)
}

func genericBody(command string, d task.Descriptor) string {
	if command == "" {
		command = CommandFor(d.Type)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a senior site reliability engineer. Help with the following %s request.\n\n", command)
	fmt.Fprintf(&sb, "Request: %s\n", d.RawInput)
	fmt.Fprintf(&sb, "Target: %s\n", d.Target)
	fmt.Fprintf(&sb, "Environment: %s\n\n", d.EnvironmentOr(UnspecifiedEnvironment))
	sb.WriteString("Respond with:\n")
	fmt.Fprintf(&sb, "1. A short assessment of what \"%s\" involves for %s\n", command, d.Target)
	sb.WriteString("2. Prerequisites and required access\n")
	sb.WriteString("3. Step-by-step instructions with exact commands\n")
	fmt.Fprintf(&sb, "4. Considerations specific to the %s environment\n", d.EnvironmentOr(UnspecifiedEnvironment))
	sb.WriteString("5. How to validate the result\n")
	sb.WriteString("6. How to roll back")
	return sb.String()
}

func finish(body string, d task.Descriptor, external string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(body, "\n"))

	if d.Parameters.Len() > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(additionalContextHeader)
		sb.WriteString("\n")
		for _, p := range d.Parameters {
			fmt.Fprintf(&sb, "\n- %s: %s", p.Key, p.Value)
		}
	}

	if strings.TrimSpace(external) != "" {
		sb.WriteString("\n\n")
		sb.WriteString(referenceDocsHeader)
		sb.WriteString("\n\n")
		sb.WriteString(referenceDocsPreamble)
		sb.WriteString("\n\n")
		sb.WriteString(external)
	}

	return sb.String()
}
