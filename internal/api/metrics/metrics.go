// Package metrics defines and registers all custom Prometheus metrics for the
// OpenAero API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "openaero"

// ── Authorization ────────────────────────────────────────────────────────────

// AuthDecisionsTotal counts role gate decisions.
// Labels:
//   - required: the minimum role of the route (anonymous, user, creator, admin)
//   - outcome: "allowed", "unauthenticated" or "forbidden"
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of role gate decisions.",
	},
	[]string{"required", "outcome"},
)

// CronAuthTotal counts scheduler authentication attempts.
// Label:
//   - result: "ok" or "rejected"
var CronAuthTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cron_auth_total",
		Help:      "Total number of scheduled-job authentication attempts.",
	},
	[]string{"result"},
)

// ── Envelopes ────────────────────────────────────────────────────────────────

// ErrorResponsesTotal counts failure envelopes by error kind.
var ErrorResponsesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "error_responses_total",
		Help:      "Total number of failure envelopes returned, by error kind.",
	},
	[]string{"kind"},
)

// ── Jobs ─────────────────────────────────────────────────────────────────────

// SyncRunsTotal counts rating sync runs.
// Label:
//   - result: "ok", "busy" or "error"
var SyncRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Total number of scheduled rating sync runs.",
	},
	[]string{"result"},
)

// SyncDuration measures completed sync runs.
var SyncDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_duration_seconds",
		Help:      "Duration of completed rating sync runs.",
		Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
	},
)

// CreatorApplicationsTotal counts creator applications by outcome.
// Label:
//   - result: "submitted", "duplicate" or "approved"
var CreatorApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "creator_applications_total",
		Help:      "Total number of creator application events.",
	},
	[]string{"result"},
)
