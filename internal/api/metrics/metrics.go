// Package metrics defines and registers all custom Prometheus metrics for the
// task management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry via promauto at
// package init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskapi"

// ── Authentication metrics ────────────────────────────────────────────────────

// RegistrationsTotal counts local registration attempts.
// Label:
//   - result: "ok", "duplicate" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of local registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts password login attempts.
// Label:
//   - result: "ok" or "denied"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of password login attempts, by result.",
	},
	[]string{"result"},
)

// OAuthLoginsTotal counts federated login completions per provider.
// Labels:
//   - provider: registration id ("google", "github")
//   - result: "ok", "mismatch" or "error"
var OAuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oauth_logins_total",
		Help:      "Total number of federated login completions, by provider and result.",
	},
	[]string{"provider", "result"},
)

// TokenVerificationsTotal counts bearer-token verifications at the gate.
// Label:
//   - result: "ok" or "invalid"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)
