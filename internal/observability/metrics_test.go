package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/auralis/auralis/internal/model"
)

func TestRecordProgress(t *testing.T) {
	before := testutil.ToFloat64(progressReports.WithLabelValues("mood", OutcomeApplied))
	RecordProgress(model.CategoryMood, OutcomeApplied)
	RecordProgress(model.CategoryMood, OutcomeApplied)
	after := testutil.ToFloat64(progressReports.WithLabelValues("mood", OutcomeApplied))
	assert.Equal(t, before+2, after)
}

func TestRecordTransitions(t *testing.T) {
	beforeCompleted := testutil.ToFloat64(completions.WithLabelValues("sleep"))
	beforeOverdue := testutil.ToFloat64(overdue.WithLabelValues("sleep"))

	RecordCompleted(model.CategorySleep)
	RecordOverdue(model.CategorySleep)
	RecordOverdue(model.CategorySleep)

	assert.Equal(t, beforeCompleted+1, testutil.ToFloat64(completions.WithLabelValues("sleep")))
	assert.Equal(t, beforeOverdue+2, testutil.ToFloat64(overdue.WithLabelValues("sleep")))
}

func TestRecordSweep(t *testing.T) {
	before := testutil.ToFloat64(sweepFailures)
	RecordSweep(time.Now(), 0)
	assert.Equal(t, before, testutil.ToFloat64(sweepFailures))

	RecordSweep(time.Now(), 3)
	assert.Equal(t, before+3, testutil.ToFloat64(sweepFailures))
}

func TestRecordNotificationFailure(t *testing.T) {
	before := testutil.ToFloat64(notificationFailures.WithLabelValues("email"))
	RecordNotificationFailure("email")
	assert.Equal(t, before+1, testutil.ToFloat64(notificationFailures.WithLabelValues("email")))
}
