package plan

// Step is a single ordered action in an implementation plan.
type Step struct {
	Number        int      `json:"number"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	CodeExample   string   `json:"codeExample,omitempty"`
	Documentation []string `json:"documentation,omitempty"`
	Validation    []string `json:"validation,omitempty"`
}

// RiskLevel is the assessed risk of carrying out a request.
type RiskLevel string

// Risk level constants
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Complexity is the classified effort of a request.
type Complexity string

// Complexity constants
const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// EstimatedTime is one of four fixed human-readable time ranges.
type EstimatedTime string

// Estimated time buckets
const (
	TimeShort    EstimatedTime = "30-60 minutes"
	TimeMedium   EstimatedTime = "1-2 hours"
	TimeLong     EstimatedTime = "2-4 hours"
	TimeExtended EstimatedTime = "4-8 hours"
)

// ImplementationPlan is the guided plan synthesized for a task descriptor.
type ImplementationPlan struct {
	Summary       string        `json:"summary"`
	Steps         []Step        `json:"steps"`
	Prerequisites []string      `json:"prerequisites"`
	EstimatedTime EstimatedTime `json:"estimatedTime"`
	Complexity    Complexity    `json:"complexity"`
	RiskLevel     RiskLevel     `json:"riskLevel"`
	RollbackSteps []string      `json:"rollbackSteps"`
}
