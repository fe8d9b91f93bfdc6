package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sardesh/srebuddy/internal/task"
)

func TestGenerate_Summary(t *testing.T) {
	tests := []struct {
		name     string
		d        task.Descriptor
		expected string
	}{
		{
			name:     "with environment",
			d:        task.Descriptor{Type: task.TypeImplement, Target: "dynatrace", Environment: task.EnvironmentProduction},
			expected: "Implement dynatrace in production",
		},
		{
			name:     "without environment",
			d:        task.Descriptor{Type: task.TypeMonitor, Target: "prometheus"},
			expected: "Monitor prometheus",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Generate(tc.d).Summary)
		})
	}
}

func TestGenerate_ProductionIsHighRisk(t *testing.T) {
	inputs := []string{
		"implement dynatrace agent in production kubernetes",
		"install vault in prod whenever",
		"configure nginx on live servers",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p := Generate(task.Parse(input))
			assert.Equal(t, RiskHigh, p.RiskLevel)
			assert.Contains(t, p.Prerequisites, "Change management approval for the production change")
			assert.Contains(t, p.Prerequisites, "Verified backup of the current configuration")
		})
	}
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		name     string
		d        task.Descriptor
		expected RiskLevel
	}{
		{"production beats urgency", task.Descriptor{Environment: task.EnvironmentProduction, Urgency: task.UrgencyLow}, RiskHigh},
		{"urgent staging", task.Descriptor{Environment: task.EnvironmentStaging, Urgency: task.UrgencyHigh}, RiskMedium},
		{"urgent without environment", task.Descriptor{Urgency: task.UrgencyHigh}, RiskMedium},
		{"relaxed dev", task.Descriptor{Environment: task.EnvironmentDevelopment, Urgency: task.UrgencyMedium}, RiskLow},
		{"nothing known", task.Descriptor{}, RiskLow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AssessRisk(tc.d))
		})
	}
}

func TestClassifyComplexityAndTime(t *testing.T) {
	threeParams := task.Parameters{{Key: "version", Value: "1"}, {Key: "port", Value: "80"}, {Key: "namespace", Value: "x"}}
	twoParams := threeParams[:2]

	tests := []struct {
		name       string
		d          task.Descriptor
		complexity Complexity
		time       EstimatedTime
	}{
		{"complex tool", task.Descriptor{Target: "istio"}, ComplexityHigh, TimeLong},
		{"complex tool in production", task.Descriptor{Target: "kubernetes", Environment: task.EnvironmentProduction}, ComplexityHigh, TimeExtended},
		{"many parameters", task.Descriptor{Target: "redis", Parameters: threeParams}, ComplexityMedium, TimeMedium},
		{"two parameters", task.Descriptor{Target: "redis", Parameters: twoParams}, ComplexityLow, TimeShort},
		{"simple", task.Descriptor{Target: "nginx"}, ComplexityLow, TimeShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.d.Type = task.TypeImplement
			p := Generate(tc.d)
			assert.Equal(t, tc.complexity, p.Complexity)
			assert.Equal(t, tc.time, p.EstimatedTime)
		})
	}
}

func TestGenerate_GenericFallbackHasFourSteps(t *testing.T) {
	p := Generate(task.Parse("set up vault for secrets"))

	require.Len(t, p.Steps, 4)
	for i, step := range p.Steps {
		assert.Equal(t, i+1, step.Number)
		assert.NotEmpty(t, step.Title)
	}
	assert.Contains(t, p.Steps[0].Title, "Research")
	assert.Contains(t, p.Steps[3].Title, "Validate")
}

func TestGenerate_SpecializedGenerators(t *testing.T) {
	for _, target := range SpecializedTargets() {
		t.Run(target, func(t *testing.T) {
			d := task.Descriptor{Type: task.TypeImplement, Target: target}
			p := Generate(d)

			generic := genericSteps(d)
			assert.NotEqual(t, len(generic), 0)
			assert.NotEqual(t, generic[0].Title, p.Steps[0].Title)
			for i, step := range p.Steps {
				assert.Equal(t, i+1, step.Number)
			}
		})
	}
}

func TestGenerate_NamespaceSubstitution(t *testing.T) {
	p := Generate(task.Parse("implement dynatrace in namespace observability"))

	var manifest string
	for _, step := range p.Steps {
		if strings.Contains(step.CodeExample, "kind: DynaKube") {
			manifest = step.CodeExample
		}
	}
	require.NotEmpty(t, manifest, "expected a DynaKube manifest step")
	assert.Contains(t, manifest, "namespace: observability")

	p = Generate(task.Parse("implement dynatrace"))
	assert.Contains(t, p.Steps[1].CodeExample, "kubectl create namespace dynatrace")
}

func TestGenerate_PrometheusVersion(t *testing.T) {
	p := Generate(task.Parse("install prometheus version 55.0.0"))
	assert.Contains(t, p.Steps[1].CodeExample, "--version 55.0.0")

	p = Generate(task.Parse("install prometheus"))
	assert.NotContains(t, p.Steps[1].CodeExample, "--version")
}

func TestPrerequisites_TargetCategories(t *testing.T) {
	p := Prerequisites(task.Descriptor{Target: "kubernetes"})
	assert.Contains(t, p, "kubectl access to the target cluster with cluster-admin rights")
	assert.NotContains(t, p, "Change management approval for the production change")

	p = Prerequisites(task.Descriptor{Target: "datadog"})
	assert.Contains(t, p, "Active datadog account with an API token")

	p = Prerequisites(task.Descriptor{Target: "terraform"})
	assert.Contains(t, p, "Cloud provider credentials with the required IAM permissions")

	p = Prerequisites(task.Descriptor{Target: "vault"})
	assert.Len(t, p, 3)
}

func TestPrerequisites_NoDuplicates(t *testing.T) {
	p := Prerequisites(task.Descriptor{Target: "dynatrace", Environment: task.EnvironmentProduction})

	seen := make(map[string]bool)
	for _, item := range p {
		assert.False(t, seen[item], "duplicate prerequisite %q", item)
		seen[item] = true
	}
}

func TestGenerate_RollbackIsFixed(t *testing.T) {
	a := Generate(task.Parse("deploy kafka"))
	b := Generate(task.Parse("monitor grafana in staging"))

	assert.Equal(t, a.RollbackSteps, b.RollbackSteps)
	require.Len(t, a.RollbackSteps, 4)

	// Callers must not be able to mutate the shared list.
	a.RollbackSteps[0] = "changed"
	assert.NotEqual(t, "changed", Generate(task.Parse("deploy kafka")).RollbackSteps[0])
}

func TestGenerate_Deterministic(t *testing.T) {
	d := task.Parse("urgent deploy prometheus on port 9091 namespace metrics")
	assert.Equal(t, Generate(d), Generate(d))
}
