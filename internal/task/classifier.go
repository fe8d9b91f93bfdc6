package task

import (
	"regexp"
	"strings"
)

// rule pairs a label with the pattern that selects it. Rule tables are
// ordered slices: the first matching rule wins, so table order is the
// tie-break between overlapping patterns.
type rule[T ~string] struct {
	label   T
	pattern *regexp.Regexp
}

// typeRules are tested in priority order. An input that mentions both
// monitoring and implementation resolves to TypeMonitor.
var typeRules = []rule[Type]{
	{TypeMonitor, regexp.MustCompile(`(?i)\b(monitor|monitoring|observe|observability|alerts?|alerting|dashboards?|metrics?)\b`)},
	{TypeImplement, regexp.MustCompile(`(?i)\b(implement|install|set\s*up|integrate|onboard|add|create|build|enable)\b`)},
	{TypeConfigure, regexp.MustCompile(`(?i)\b(configure|config|configuration|customi[sz]e|tune|adjust)\b`)},
	{TypeDeploy, regexp.MustCompile(`(?i)\b(deploy|deployment|roll\s*out|release|ship|upgrade|promote)\b`)},
	{TypeDocs, regexp.MustCompile(`(?i)\b(docs?|documentation|explain|guide|tutorial|how\s+(do|to)|what\s+is)\b`)},
	{TypeTroubleshoot, regexp.MustCompile(`(?i)\b(troubleshoot|troubleshooting|debug|fix|diagnose|investigate|errors?|failing|failed|broken|issue|crash|crashing|not\s+working)\b`)},
}

// toolRules map tool signatures to canonical target names. More specific
// products come before the platforms they usually run on, so "dynatrace on
// kubernetes" resolves to dynatrace.
var toolRules = []rule[string]{
	{"dynatrace", regexp.MustCompile(`(?i)\bdynatrace\b`)},
	{"prometheus", regexp.MustCompile(`(?i)\bprometheus\b`)},
	{"grafana", regexp.MustCompile(`(?i)\bgrafana\b`)},
	{"datadog", regexp.MustCompile(`(?i)\bdata\s*dog\b`)},
	{"newrelic", regexp.MustCompile(`(?i)\bnew\s*relic\b`)},
	{"splunk", regexp.MustCompile(`(?i)\bsplunk\b`)},
	{"elasticsearch", regexp.MustCompile(`(?i)\b(elastic\s*search|elastic|elk)\b`)},
	{"kibana", regexp.MustCompile(`(?i)\bkibana\b`)},
	{"jaeger", regexp.MustCompile(`(?i)\bjaeger\b`)},
	{"opentelemetry", regexp.MustCompile(`(?i)\b(open\s*telemetry|otel)\b`)},
	{"kubernetes", regexp.MustCompile(`(?i)\b(kubernetes|k8s|kubectl)\b`)},
	{"helm", regexp.MustCompile(`(?i)\bhelm\b`)},
	{"terraform", regexp.MustCompile(`(?i)\bterraform\b`)},
	{"ansible", regexp.MustCompile(`(?i)\bansible\b`)},
	{"docker", regexp.MustCompile(`(?i)\bdocker\b`)},
	{"jenkins", regexp.MustCompile(`(?i)\bjenkins\b`)},
	{"argocd", regexp.MustCompile(`(?i)\bargo\s*cd\b`)},
	{"istio", regexp.MustCompile(`(?i)\bistio\b`)},
	{"nginx", regexp.MustCompile(`(?i)\bnginx\b`)},
	{"redis", regexp.MustCompile(`(?i)\bredis\b`)},
	{"postgres", regexp.MustCompile(`(?i)\b(postgres|postgresql|psql)\b`)},
	{"kafka", regexp.MustCompile(`(?i)\bkafka\b`)},
	{"aws", regexp.MustCompile(`(?i)\b(aws|amazon\s+web\s+services)\b`)},
	{"azure", regexp.MustCompile(`(?i)\bazure\b`)},
	{"gcp", regexp.MustCompile(`(?i)\b(gcp|google\s+cloud)\b`)},
}

var environmentRules = []rule[Environment]{
	{EnvironmentProduction, regexp.MustCompile(`(?i)\b(production|prod|live)\b`)},
	{EnvironmentStaging, regexp.MustCompile(`(?i)\b(staging|stage|uat)\b`)},
	{EnvironmentDevelopment, regexp.MustCompile(`(?i)\b(development|dev|local)\b`)},
	{EnvironmentTesting, regexp.MustCompile(`(?i)\b(testing|test|qa)\b`)},
}

var urgencyRules = []rule[Urgency]{
	{UrgencyHigh, regexp.MustCompile(`(?i)\b(urgent|urgently|asap|critical|emergency|immediately|p0|p1|high\s+priority)\b`)},
	{UrgencyMedium, regexp.MustCompile(`(?i)\b(soon|p2|medium\s+priority|this\s+week)\b`)},
	{UrgencyLow, regexp.MustCompile(`(?i)\b(whenever|eventually|p3|p4|low\s+priority|no\s+rush)\b`)},
}

// paramProbe extracts one parameter. Patterns are alternatives tried in
// order; the first capture wins.
type paramProbe struct {
	key      string
	patterns []*regexp.Regexp
}

// paramProbes are independent: each sets its key only when it matches.
// Their order is the insertion order of the resulting Parameters.
var paramProbes = []paramProbe{
	{"version", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bversion\s+v?(\d[\w.-]*)`),
		regexp.MustCompile(`(?i)\bv(\d+(?:\.\d+)*)\b`),
	}},
	{"port", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bport\s+(\d+)`),
		// host:port or ip:port, not clock times
		regexp.MustCompile(`(?i)(?:[a-z][\w-]*|\d{1,3}(?:\.\d{1,3}){3}):(\d{2,5})\b`),
	}},
	{"namespace", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bnamespace\s+([\w.-]+)`),
	}},
}

// stopwords are skipped when falling back to the first meaningful word as
// the target. Words of three letters or fewer are skipped regardless.
var stopwords = map[string]bool{
	"with": true, "from": true, "into": true, "onto": true, "this": true,
	"that": true, "these": true, "those": true, "please": true, "using": true,
	"need": true, "want": true, "should": true, "could": true, "would": true,
	"help": true, "some": true, "across": true, "within": true,
	"implement": true, "install": true, "setup": true, "configure": true,
	"deploy": true, "monitor": true, "troubleshoot": true, "debug": true,
	"production": true, "staging": true, "development": true, "testing": true,
}

// Parse classifies a free-text request. It never fails: unrecognized input
// yields TypeImplement with a best-effort target.
func Parse(input string) Descriptor {
	return Descriptor{
		Type:        resolveType(input),
		Target:      resolveTarget(input),
		Parameters:  extractParameters(input),
		Environment: firstMatch(environmentRules, input),
		Urgency:     firstMatch(urgencyRules, input),
		RawInput:    input,
	}
}

// firstMatch returns the label of the first rule whose pattern matches, or
// the zero label when none do.
func firstMatch[T ~string](rules []rule[T], input string) T {
	for _, r := range rules {
		if r.pattern.MatchString(input) {
			return r.label
		}
	}
	var zero T
	return zero
}

func resolveType(input string) Type {
	if t := firstMatch(typeRules, input); t != "" {
		return t
	}
	return TypeImplement
}

func resolveTarget(input string) string {
	if name := firstMatch(toolRules, input); name != "" {
		return name
	}

	for _, field := range strings.Fields(strings.ToLower(input)) {
		word := strings.Trim(field, `.,;:!?"'()[]{}`)
		if len(word) <= 3 || stopwords[word] {
			continue
		}
		return word
	}
	return DefaultTarget
}

func extractParameters(input string) Parameters {
	var params Parameters
	for _, probe := range paramProbes {
		for _, re := range probe.patterns {
			if m := re.FindStringSubmatch(input); m != nil {
				params.Set(probe.key, m[1])
				break
			}
		}
	}
	return params
}

// KnownTools returns the canonical names of all recognized tools in
// resolution order.
func KnownTools() []string {
	names := make([]string, len(toolRules))
	for i, r := range toolRules {
		names[i] = r.label
	}
	return names
}

// Types returns every task type in classification priority order.
func Types() []Type {
	types := make([]Type, len(typeRules))
	for i, r := range typeRules {
		types[i] = r.label
	}
	return types
}
