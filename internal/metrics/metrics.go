// Package metrics exposes Prometheus counters for tool calls and outbound
// Todo API requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool call outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeValidationError = "validation_error"
	OutcomeRemoteError     = "remote_error"
	OutcomeTransportError  = "transport_error"
)

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry       *prometheus.Registry
	ToolCalls      *prometheus.CounterVec
	RemoteRequests *prometheus.CounterVec
	RemoteLatency  *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_mcp_tool_calls_total",
				Help: "Tool invocations by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		RemoteRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_mcp_api_requests_total",
				Help: "Requests sent to the Todo API by method, route and status (0 = no response)",
			},
			[]string{"method", "route", "status"},
		),
		RemoteLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todo_mcp_api_request_duration_seconds",
				Help:    "Todo API request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(m.ToolCalls, m.RemoteRequests, m.RemoteLatency)
	return m
}

// ObserveRequest records one outbound request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RemoteRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RemoteLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveToolCall records one tool invocation.
func (m *Metrics) ObserveToolCall(tool, outcome string) {
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
