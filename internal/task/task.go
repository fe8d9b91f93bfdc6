// Package task classifies free-text operational requests into structured
// descriptors.
package task

// Type is the category of operational work a request asks for.
type Type string

// Task type constants
const (
	TypeImplement    Type = "implement"
	TypeConfigure    Type = "configure"
	TypeMonitor      Type = "monitor"
	TypeDeploy       Type = "deploy"
	TypeDocs         Type = "docs"
	TypeTroubleshoot Type = "troubleshoot"
)

// Environment is the deployment environment a request targets.
// The empty value means the request did not name one.
type Environment string

// Environment constants
const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentDevelopment Environment = "development"
	EnvironmentTesting     Environment = "testing"
)

// Urgency is how soon the requester needs the work done.
// The empty value means no urgency was expressed.
type Urgency string

// Urgency constants
const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// DefaultTarget is used when no target can be extracted from the request.
const DefaultTarget = "unknown"

// Descriptor is the structured result of classifying a request.
// Type and Target are always set.
type Descriptor struct {
	Type        Type        `json:"type" yaml:"type"`
	Target      string      `json:"target" yaml:"target"`
	Parameters  Parameters  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Environment Environment `json:"environment,omitempty" yaml:"environment,omitempty"`
	Urgency     Urgency     `json:"urgency,omitempty" yaml:"urgency,omitempty"`
	RawInput    string      `json:"rawInput" yaml:"rawInput"`
}

// HasEnvironment reports whether the request named an environment.
func (d Descriptor) HasEnvironment() bool {
	return d.Environment != ""
}

// EnvironmentOr returns the environment, or fallback when none was named.
func (d Descriptor) EnvironmentOr(fallback string) string {
	if d.Environment == "" {
		return fallback
	}
	return string(d.Environment)
}

// MatchText is the text templates are scored against: the raw input
// followed by the resolved target.
func (d Descriptor) MatchText() string {
	return d.RawInput + " " + d.Target
}
