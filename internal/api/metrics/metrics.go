// Package metrics defines and registers all custom Prometheus metrics for the
// dispatch API. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dispatch"

// ── Assignment metrics ────────────────────────────────────────────────────────

// AssignmentsTotal counts work orders successfully bound to a technician.
// Labels:
//   - mode: "manual" or "automatic"
var AssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_total",
		Help:      "Total number of work orders assigned, by assignment mode.",
	},
	[]string{"mode"},
)

// AssignmentErrorsTotal counts assignment attempts that did not bind.
// Labels:
//   - mode: "manual" or "automatic"
//   - reason: short failure description (e.g. "order_not_found", "no_candidate", "invalid_state")
var AssignmentErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignment_errors_total",
		Help:      "Total number of assignment attempts that failed, by mode and reason.",
	},
	[]string{"mode", "reason"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginFailuresTotal counts rejected authentication attempts.
var LoginFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts.",
	},
)

// LockoutsTotal counts accounts entering the locked state.
var LockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockouts_total",
		Help:      "Total number of account lockouts triggered.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts delivered assignment notifications.
// Label:
//   - channel: "email" or "sms"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of assignment notifications sent, by channel.",
	},
	[]string{"channel"},
)

// NotificationErrorsTotal counts notification sends that failed. Failures are
// logged and dropped; they never undo an assignment.
// Label:
//   - channel: "email" or "sms"
var NotificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of assignment notifications that failed to send, by channel.",
	},
	[]string{"channel"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
