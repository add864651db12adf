// Package metrics defines and registers all custom Prometheus metrics for
// the dealership service. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealership"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid", "locked"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// LockoutsTriggeredTotal counts accounts transitioning into the locked state.
var LockoutsTriggeredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_triggered_total",
		Help:      "Total number of account lockouts triggered by repeated failures.",
	},
)

// AdminUnlocksTotal counts operator unlock overrides.
var AdminUnlocksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_unlocks_total",
		Help:      "Total number of admin-forced account unlocks.",
	},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginDuration measures how long a login attempt takes end-to-end,
// including the bcrypt comparison.
// Label:
//   - result: "success", "invalid", "locked", "error"
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login handling from form bind to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the number of security events waiting in each audit
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of security events pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)
