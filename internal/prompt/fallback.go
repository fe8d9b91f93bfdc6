package prompt

// fallbackBodies are used when no corpus template matches a request. They
// use the same placeholders as corpus templates.
var fallbackBodies = map[string]string{
	"implement": `You are a senior site reliability engineer. Produce a step-by-step implementation guide for {target} in the {environment} environment.

Request: {rawInput}

Cover:
1. Prerequisites and required access
2. Installation and initial configuration of {target}
3. Integration with existing infrastructure
4. Validation that {target} is working as intended
5. Rollback procedure if the change must be reverted

Include exact commands and configuration snippets. Call out anything that differs in {environment}.`,

	"configure": `You are a senior site reliability engineer. Explain how to configure {target} for the {environment} environment.

Request: {rawInput}

Cover:
1. The configuration files or resources involved and where they live
2. The recommended settings for this request, with the reasoning for each
3. How to apply the change safely
4. How to confirm the new configuration is active
5. How to restore the previous configuration`,

	"monitor": `You are a senior site reliability engineer focused on observability. Design monitoring for {target} in the {environment} environment.

Request: {rawInput}

Cover:
1. Key metrics and the signals they indicate (latency, traffic, errors, saturation)
2. Alert rules with thresholds and severities
3. Dashboard layout
4. Log and trace collection relevant to {target}
5. Runbook notes for the most likely alerts`,

	"deploy": `You are a senior site reliability engineer. Plan a deployment of {target} to the {environment} environment.

Request: {rawInput}

Cover:
1. Pre-deployment checks
2. The rollout strategy (rolling, blue/green, or canary) and why it fits
3. Exact deployment commands or manifests
4. Post-deployment verification
5. Rollback triggers and the rollback procedure`,

	"troubleshoot": `You are a senior site reliability engineer on call. Help diagnose a problem with {target} in the {environment} environment.

Report: {rawInput}

Work through:
1. Clarifying the symptoms and their scope
2. The most likely causes, ordered by probability
3. Commands and queries to confirm or rule out each cause
4. Mitigation to restore service quickly
5. Follow-up actions to prevent recurrence`,
}

// HasFallback reports whether command has a built-in fallback body.
func HasFallback(command string) bool {
	_, ok := fallbackBodies[command]
	return ok
}
