package plan

import (
	"fmt"

	"github.com/sardesh/srebuddy/internal/task"
)

// StepGenerator produces the ordered steps for a descriptor. Step numbers are
// assigned by Generate.
type StepGenerator interface {
	Steps(d task.Descriptor) []Step
}

// StepGeneratorFunc adapts a function to StepGenerator.
type StepGeneratorFunc func(d task.Descriptor) []Step

// Steps implements StepGenerator.
func (f StepGeneratorFunc) Steps(d task.Descriptor) []Step {
	return f(d)
}

type registration struct {
	target    string
	generator StepGenerator
}

// registry holds the specialized generators for frequently requested
// targets. Anything else gets genericSteps.
var registry = []registration{
	{"dynatrace", StepGeneratorFunc(dynatraceSteps)},
	{"prometheus", StepGeneratorFunc(prometheusSteps)},
	{"grafana", StepGeneratorFunc(grafanaSteps)},
	{"kubernetes", StepGeneratorFunc(kubernetesSteps)},
	{"datadog", StepGeneratorFunc(datadogSteps)},
}

// GeneratorFor returns the step generator registered for target, or the
// generic four-step generator.
func GeneratorFor(target string) StepGenerator {
	for _, r := range registry {
		if r.target == target {
			return r.generator
		}
	}
	return StepGeneratorFunc(genericSteps)
}

// SpecializedTargets lists the targets with dedicated step generators.
func SpecializedTargets() []string {
	targets := make([]string, len(registry))
	for i, r := range registry {
		targets[i] = r.target
	}
	return targets
}

func genericSteps(d task.Descriptor) []Step {
	env := d.EnvironmentOr("the target environment")
	return []Step{
		{
			Title:       fmt.Sprintf("Research %s requirements", d.Target),
			Description: fmt.Sprintf("Review the official %s documentation, supported versions, and system requirements for %s.", d.Target, env),
			Documentation: []string{
				fmt.Sprintf("Official %s documentation", d.Target),
			},
			Validation: []string{
				"Requirements and supported versions are documented",
			},
		},
		{
			Title:       "Prepare the environment",
			Description: fmt.Sprintf("Confirm access, network paths, and resource capacity in %s before making changes.", env),
			Validation: []string{
				"Access to all target hosts is confirmed",
				"Resource headroom is sufficient",
			},
		},
		{
			Title:       fmt.Sprintf("%s %s", capitalize(string(d.Type)), d.Target),
			Description: fmt.Sprintf("Carry out the change following the vendor guidance for %s.", d.Target),
		},
		{
			Title:       "Validate and test",
			Description: fmt.Sprintf("Verify %s behaves as expected and monitoring reflects the change.", d.Target),
			Validation: []string{
				"Health checks pass",
				"No new errors in logs",
				"Dashboards and alerts show expected data",
			},
		},
	}
}

func dynatraceSteps(d task.Descriptor) []Step {
	ns := d.Parameters.GetOr("namespace", "dynatrace")
	return []Step{
		{
			Title:       "Create Dynatrace access tokens",
			Description: "Generate an operator token and a data ingest token in the Dynatrace web UI under Access Tokens.",
			Documentation: []string{
				"https://docs.dynatrace.com/docs/manage/access-control/access-tokens",
			},
			Validation: []string{
				"Operator token has the required scopes",
				"Data ingest token is stored in the secrets manager",
			},
		},
		{
			Title:       "Install the Dynatrace Operator",
			Description: fmt.Sprintf("Deploy the Dynatrace Operator into the %s namespace.", ns),
			CodeExample: fmt.Sprintf(`kubectl create namespace %s
kubectl apply -f https://github.com/Dynatrace/dynatrace-operator/releases/latest/download/kubernetes.yaml
kubectl -n %s wait pod --for=condition=ready --selector=app.kubernetes.io/name=dynatrace-operator --timeout=300s`, ns, ns),
			Documentation: []string{
				"https://docs.dynatrace.com/docs/ingest-from/setup-on-k8s",
			},
			Validation: []string{
				fmt.Sprintf("kubectl get pods -n %s shows the operator running", ns),
			},
		},
		{
			Title:       "Create the DynaKube resource",
			Description: "Store the tokens in a secret and apply a DynaKube custom resource describing the monitoring mode.",
			CodeExample: fmt.Sprintf(`apiVersion: dynatrace.com/v1beta1
kind: DynaKube
metadata:
  name: dynakube
  namespace: %s
spec:
  apiUrl: https://<environment-id>.live.dynatrace.com/api
  oneAgent:
    cloudNativeFullStack: {}
  activeGate:
    capabilities:
      - routing
      - kubernetes-monitoring`, ns),
			Validation: []string{
				fmt.Sprintf("kubectl get dynakube -n %s reports Running", ns),
			},
		},
		{
			Title:       "Verify OneAgent rollout",
			Description: "Confirm OneAgent pods are scheduled on every node and application pods are instrumented.",
			CodeExample: fmt.Sprintf("kubectl get pods -n %s -l app.kubernetes.io/name=oneagent -o wide", ns),
			Validation: []string{
				"One OneAgent pod per node",
				"Restarted workloads show as monitored",
			},
		},
		{
			Title:       "Validate data in Dynatrace",
			Description: "Check the Kubernetes and Hosts views in Dynatrace for incoming data.",
			Validation: []string{
				"Cluster appears in the Kubernetes view",
				"Services are detected and traced",
			},
		},
	}
}

func prometheusSteps(d task.Descriptor) []Step {
	ns := d.Parameters.GetOr("namespace", "monitoring")
	port := d.Parameters.GetOr("port", "9090")
	install := fmt.Sprintf("helm install prometheus prometheus-community/kube-prometheus-stack --namespace %s --create-namespace", ns)
	if v, ok := d.Parameters.Get("version"); ok {
		install += " --version " + v
	}
	return []Step{
		{
			Title:       "Add the Prometheus Helm repository",
			Description: "Register the prometheus-community chart repository.",
			CodeExample: "helm repo add prometheus-community https://prometheus-community.github.io/helm-charts\nhelm repo update",
			Documentation: []string{
				"https://prometheus.io/docs/introduction/overview/",
			},
		},
		{
			Title:       "Install kube-prometheus-stack",
			Description: fmt.Sprintf("Install Prometheus, Alertmanager, and the operator into the %s namespace.", ns),
			CodeExample: install,
			Validation: []string{
				fmt.Sprintf("kubectl get pods -n %s shows prometheus and alertmanager running", ns),
			},
		},
		{
			Title:       "Configure scrape targets",
			Description: "Expose application metrics through a ServiceMonitor.",
			CodeExample: fmt.Sprintf(`apiVersion: monitoring.coreos.com/v1
kind: ServiceMonitor
metadata:
  name: app-metrics
  namespace: %s
spec:
  selector:
    matchLabels:
      app: my-app
  endpoints:
    - port: metrics
      interval: 30s`, ns),
		},
		{
			Title:       "Define alerting rules",
			Description: "Create PrometheusRule resources for availability and saturation alerts and route them in Alertmanager.",
			Validation: []string{
				"Rules load without errors",
			},
		},
		{
			Title:       "Validate targets",
			Description: "Open the Prometheus UI and confirm every target is up.",
			CodeExample: fmt.Sprintf("kubectl -n %s port-forward svc/prometheus-operated %s:9090", ns, port),
			Validation: []string{
				"All targets report UP on the Targets page",
				"Test alert reaches the configured receiver",
			},
		},
	}
}

func grafanaSteps(d task.Descriptor) []Step {
	ns := d.Parameters.GetOr("namespace", "monitoring")
	return []Step{
		{
			Title:       "Add the Grafana Helm repository",
			Description: "Register the grafana chart repository.",
			CodeExample: "helm repo add grafana https://grafana.github.io/helm-charts\nhelm repo update",
			Documentation: []string{
				"https://grafana.com/docs/grafana/latest/setup-grafana/installation/helm/",
			},
		},
		{
			Title:       "Install Grafana",
			Description: fmt.Sprintf("Install Grafana into the %s namespace with persistence enabled.", ns),
			CodeExample: fmt.Sprintf("helm install grafana grafana/grafana --namespace %s --create-namespace --set persistence.enabled=true", ns),
		},
		{
			Title:       "Configure data sources",
			Description: "Provision Prometheus and log data sources through a provisioning ConfigMap.",
		},
		{
			Title:       "Import dashboards",
			Description: "Import service and infrastructure dashboards and set folder permissions.",
		},
		{
			Title:       "Validate dashboards",
			Description: "Log in and confirm panels render live data.",
			Validation: []string{
				"Data source health checks pass",
				"Dashboards render without query errors",
			},
		},
	}
}

func kubernetesSteps(d task.Descriptor) []Step {
	ns := d.Parameters.GetOr("namespace", "default")
	return []Step{
		{
			Title:       "Verify cluster access",
			Description: "Confirm the kubectl context points at the intended cluster.",
			CodeExample: "kubectl config current-context\nkubectl cluster-info",
			Documentation: []string{
				"https://kubernetes.io/docs/reference/kubectl/",
			},
		},
		{
			Title:       "Prepare the namespace",
			Description: fmt.Sprintf("Create the %s namespace with resource quotas and RBAC.", ns),
			CodeExample: fmt.Sprintf("kubectl create namespace %s --dry-run=client -o yaml | kubectl apply -f -", ns),
		},
		{
			Title:       "Apply manifests",
			Description: "Apply the workload manifests with a server-side dry run first.",
			CodeExample: fmt.Sprintf("kubectl apply -n %s -f manifests/ --dry-run=server\nkubectl apply -n %s -f manifests/", ns, ns),
		},
		{
			Title:       "Configure resources and scaling",
			Description: "Set requests, limits, and a HorizontalPodAutoscaler for each workload.",
		},
		{
			Title:       "Validate the rollout",
			Description: "Wait for the rollout and check pod health.",
			CodeExample: fmt.Sprintf("kubectl rollout status deployment -n %s --timeout=300s", ns),
			Validation: []string{
				"All pods Ready",
				"No CrashLoopBackOff or pending pods",
			},
		},
	}
}

func datadogSteps(d task.Descriptor) []Step {
	ns := d.Parameters.GetOr("namespace", "datadog")
	return []Step{
		{
			Title:       "Store the Datadog API key",
			Description: fmt.Sprintf("Create a secret holding the API key in the %s namespace.", ns),
			CodeExample: fmt.Sprintf("kubectl create secret generic datadog-secret -n %s --from-literal api-key=$DD_API_KEY", ns),
			Documentation: []string{
				"https://docs.datadoghq.com/containers/kubernetes/installation/",
			},
		},
		{
			Title:       "Install the Datadog Agent",
			Description: "Install the agent DaemonSet and cluster agent with Helm.",
			CodeExample: fmt.Sprintf("helm repo add datadog https://helm.datadoghq.com\nhelm install datadog-agent datadog/datadog -n %s --set datadog.apiKeyExistingSecret=datadog-secret", ns),
		},
		{
			Title:       "Enable APM and log collection",
			Description: "Turn on APM and container log collection in the chart values.",
		},
		{
			Title:       "Validate agent status",
			Description: "Check agent health and confirm hosts appear in Datadog.",
			Validation: []string{
				"datadog-agent status reports no errors",
				"Infrastructure list shows every node",
			},
		},
	}
}
