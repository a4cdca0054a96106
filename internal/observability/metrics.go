// Package observability holds the Prometheus collectors for the goal lifecycle.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/auralis/auralis/internal/model"
)

var (
	progressReports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auralis",
		Subsystem: "goals",
		Name:      "progress_reports_total",
		Help:      "Progress reports received, labeled by category and outcome (applied, no_goal, failed).",
	}, []string{"category", "outcome"})

	completions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auralis",
		Subsystem: "goals",
		Name:      "completed_total",
		Help:      "Goals transitioned to completed, labeled by category.",
	}, []string{"category"})

	overdue = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auralis",
		Subsystem: "goals",
		Name:      "overdue_total",
		Help:      "Goals transitioned to overdue by the sweeper, labeled by category.",
	}, []string{"category"})

	sweepFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "auralis",
		Subsystem: "sweeper",
		Name:      "goal_failures_total",
		Help:      "Goals the overdue sweeper failed to transition.",
	})

	sweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "auralis",
		Subsystem: "sweeper",
		Name:      "duration_seconds",
		Help:      "Time spent listing and transitioning expired goals.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	})

	notificationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auralis",
		Subsystem: "notify",
		Name:      "failures_total",
		Help:      "Notifications that could not be delivered, labeled by channel.",
	}, []string{"channel"})
)

func init() {
	prometheus.MustRegister(progressReports, completions, overdue, sweepFailures, sweepDuration, notificationFailures)
}

const (
	OutcomeApplied = "applied"
	OutcomeNoGoal  = "no_goal"
	OutcomeFailed  = "failed"
)

func RecordProgress(category model.Category, outcome string) {
	progressReports.WithLabelValues(string(category), outcome).Inc()
}

func RecordCompleted(category model.Category) {
	completions.WithLabelValues(string(category)).Inc()
}

func RecordOverdue(category model.Category) {
	overdue.WithLabelValues(string(category)).Inc()
}

// RecordSweep observes one sweep pass.
func RecordSweep(started time.Time, failures int) {
	sweepDuration.Observe(time.Since(started).Seconds())
	if failures > 0 {
		sweepFailures.Add(float64(failures))
	}
}

func RecordNotificationFailure(channel string) {
	notificationFailures.WithLabelValues(channel).Inc()
}
