// Package metrics defines and registers all custom Prometheus metrics for the
// Yala job-board API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts successful sign-ins.
// Label:
//   - method: "password", "otp"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of successful sign-ins, by method.",
	},
	[]string{"method"},
)

// SignUpsTotal counts completed signups.
// Label:
//   - type: the account type written to metadata ("blue", "white", "company")
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ups_total",
		Help:      "Total number of completed signups, by account type.",
	},
	[]string{"type"},
)

// SignUpRollbacksTotal counts signups undone because the initial profile-row
// insert failed after the auth account was created.
var SignUpRollbacksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_up_rollbacks_total",
		Help:      "Total number of signups rolled back after a profile-row insert failure.",
	},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route-guard outcomes.
// Labels:
//   - outcome: "render", "redirect_auth", "redirect_landing"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route-guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Wizard metrics ────────────────────────────────────────────────────────────

// WizardTransitionsTotal counts wizard step transitions.
// Label:
//   - direction: "next", "back", "reset"
var WizardTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_transitions_total",
		Help:      "Total number of profile-wizard step transitions, by direction.",
	},
	[]string{"direction"},
)

// WizardValidationFailuresTotal counts next() calls rejected by step
// validation (currently only the experience step can reject).
var WizardValidationFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wizard_validation_failures_total",
		Help:      "Total number of wizard next() calls rejected by step validation.",
	},
)

// ── Session broker metrics ────────────────────────────────────────────────────

// SessionEventsQueueDepth tracks the pending session events in each broker
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SessionEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_events_queue_depth",
		Help:      "Current number of session events pending in each broker worker channel.",
	},
	[]string{"worker_id"},
)

// SessionEventsDroppedTotal counts events dropped because a subscriber's
// channel was full.
var SessionEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_dropped_total",
		Help:      "Total number of session events dropped on slow subscribers.",
	},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// ResumeUploadsTotal counts resume uploads.
// Label:
//   - result: "ok", "rejected" (bad type or size), "error"
var ResumeUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resume_uploads_total",
		Help:      "Total number of resume upload attempts, by result.",
	},
	[]string{"result"},
)
