// Package plan synthesizes implementation plans from classified requests and
// stores them on disk.
package plan

import (
	"fmt"
	"strings"

	"github.com/sardesh/srebuddy/internal/task"
)

// complexTools are targets whose rollout is always treated as high complexity.
var complexTools = map[string]bool{
	"dynatrace":     true,
	"kubernetes":    true,
	"istio":         true,
	"terraform":     true,
	"elasticsearch": true,
	"opentelemetry": true,
	"splunk":        true,
}

// clusterTargets run on, or are, a container platform.
var clusterTargets = map[string]bool{
	"kubernetes":    true,
	"helm":          true,
	"istio":         true,
	"argocd":        true,
	"dynatrace":     true,
	"prometheus":    true,
	"grafana":       true,
	"jaeger":        true,
	"opentelemetry": true,
}

// saasTargets need a vendor account before anything can be installed.
var saasTargets = map[string]bool{
	"dynatrace": true,
	"datadog":   true,
	"newrelic":  true,
	"splunk":    true,
}

var cloudTargets = map[string]bool{
	"aws":       true,
	"azure":     true,
	"gcp":       true,
	"terraform": true,
}

// rollbackSteps are deliberately target independent.
var rollbackSteps = []string{
	"Stop the rollout and halt any further changes",
	"Restore the previous configuration from backup",
	"Verify system stability and service health",
	"Refresh monitoring dashboards and confirm alerts have cleared",
}

// Generate builds the implementation plan for d. It is deterministic and
// total over any descriptor.
func Generate(d task.Descriptor) *ImplementationPlan {
	complexity := ClassifyComplexity(d)
	return &ImplementationPlan{
		Summary:       Summary(d),
		Steps:         numberSteps(GeneratorFor(d.Target).Steps(d)),
		Prerequisites: Prerequisites(d),
		EstimatedTime: estimateTime(complexity, d.Environment),
		Complexity:    complexity,
		RiskLevel:     AssessRisk(d),
		RollbackSteps: append([]string(nil), rollbackSteps...),
	}
}

// Summary returns "<Type> <target>[ in <environment>]".
func Summary(d task.Descriptor) string {
	summary := fmt.Sprintf("%s %s", capitalize(string(d.Type)), d.Target)
	if d.HasEnvironment() {
		summary += " in " + string(d.Environment)
	}
	return summary
}

// Prerequisites lists what must be in place before starting. The result is
// ordered and free of duplicates.
func Prerequisites(d task.Descriptor) []string {
	var prereqs orderedSet
	prereqs.add("Administrative access to the target systems")
	prereqs.add(fmt.Sprintf("Permissions to install and configure %s", d.Target))
	prereqs.add("Network connectivity to all required endpoints")

	if clusterTargets[d.Target] {
		prereqs.add("kubectl access to the target cluster with cluster-admin rights")
		prereqs.add("Helm 3 installed locally")
	}
	if saasTargets[d.Target] {
		prereqs.add(fmt.Sprintf("Active %s account with an API token", d.Target))
	}
	if cloudTargets[d.Target] {
		prereqs.add("Cloud provider credentials with the required IAM permissions")
	}
	if d.Environment == task.EnvironmentProduction {
		prereqs.add("Change management approval for the production change")
		prereqs.add("Verified backup of the current configuration")
	}
	return prereqs.items
}

// ClassifyComplexity rates the effort of a request: complex tools are high,
// requests carrying more than two parameters are medium, the rest low.
func ClassifyComplexity(d task.Descriptor) Complexity {
	switch {
	case complexTools[d.Target]:
		return ComplexityHigh
	case d.Parameters.Len() > 2:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}

func estimateTime(c Complexity, env task.Environment) EstimatedTime {
	switch c {
	case ComplexityHigh:
		if env == task.EnvironmentProduction {
			return TimeExtended
		}
		return TimeLong
	case ComplexityMedium:
		return TimeMedium
	default:
		return TimeShort
	}
}

// AssessRisk is the single risk policy used everywhere a risk level is shown:
// production work is high risk, urgent work elsewhere is medium, the rest low.
func AssessRisk(d task.Descriptor) RiskLevel {
	switch {
	case d.Environment == task.EnvironmentProduction:
		return RiskHigh
	case d.Urgency == task.UrgencyHigh:
		return RiskMedium
	default:
		return RiskLow
	}
}

func numberSteps(steps []Step) []Step {
	for i := range steps {
		steps[i].Number = i + 1
	}
	return steps
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

type orderedSet struct {
	items []string
	seen  map[string]bool
}

func (s *orderedSet) add(item string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[item] {
		return
	}
	s.seen[item] = true
	s.items = append(s.items, item)
}
