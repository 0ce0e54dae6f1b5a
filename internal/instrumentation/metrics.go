// Package instrumentation provides Prometheus metrics for the MCP server.
package instrumentation

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric label keys.
const (
	labelTool    = "tool"
	labelTier    = "tier"
	labelOutcome = "outcome"
	labelCheck   = "check"
)

// Metrics records operational counters for tool invocations, command
// executions and policy denials. A nil *Metrics is valid and records
// nothing, so wiring is optional throughout the codebase.
type Metrics struct {
	registry *prometheus.Registry

	toolInvocationsTotal   *prometheus.CounterVec
	commandExecutionsTotal *prometheus.CounterVec
	policyDenialsTotal     *prometheus.CounterVec
	commandDuration        prometheus.Histogram
}

// NewMetrics creates a Metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		toolInvocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mcp_tool_invocations_total",
			Help: "Total number of MCP tool invocations.",
		}, []string{labelTool, labelOutcome}),
		commandExecutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kubectl_command_executions_total",
			Help: "Total number of kubectl command execution attempts.",
		}, []string{labelTier, labelOutcome}),
		policyDenialsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kubectl_policy_denials_total",
			Help: "Total number of commands denied by the read-only policy.",
		}, []string{labelCheck}),
		commandDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kubectl_command_duration_seconds",
			Help:    "Duration of kubectl subprocess invocations in seconds.",
			Buckets: []float64{0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		}),
	}
}

// RecordToolInvocation counts one MCP tool call with its outcome
// ("success" or "error").
func (m *Metrics) RecordToolInvocation(tool, outcome string) {
	if m == nil {
		return
	}
	m.toolInvocationsTotal.WithLabelValues(tool, outcome).Inc()
}

// RecordExecution counts one executor call by tier and outcome.
func (m *Metrics) RecordExecution(tier, outcome string) {
	if m == nil {
		return
	}
	m.commandExecutionsTotal.WithLabelValues(tier, outcome).Inc()
}

// RecordPolicyDenial counts one read-only policy denial. The reason is
// reduced to the failing check to keep label cardinality bounded.
func (m *Metrics) RecordPolicyDenial(reason string) {
	if m == nil {
		return
	}
	m.policyDenialsTotal.WithLabelValues(denialCheck(reason)).Inc()
}

// ObserveCommandDuration records the wall-clock duration of a subprocess
// invocation.
func (m *Metrics) ObserveCommandDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.commandDuration.Observe(d.Seconds())
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// denialCheck maps a free-form denial reason to a low-cardinality label.
func denialCheck(reason string) string {
	switch {
	case reason == "":
		return "unknown"
	case strings.Contains(reason, "prefix"):
		return "prefix"
	case strings.Contains(reason, "compound"):
		return "compound"
	case strings.Contains(reason, "allow list"):
		return "allow_list"
	default:
		return "write_verb"
	}
}
