package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf_MidWeek(t *testing.T) {
	// Wednesday
	w := Of(time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC), time.UTC)

	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 3, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC), w.End)
	assert.Equal(t, time.Sunday, w.Start.Weekday())
	assert.Equal(t, time.Saturday, w.End.Weekday())
}

func TestOf_SundayMapsToItself(t *testing.T) {
	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	w := Of(sunday, time.UTC)
	assert.Equal(t, sunday, w.Start)

	lastMoment := time.Date(2025, 3, 15, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	assert.Equal(t, w, Of(lastMoment, time.UTC))
}

func TestOf_CrossesYearBoundary(t *testing.T) {
	// Thursday 2026-01-01
	w := Of(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, 2026, w.End.Year())
}

func TestOf_UsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Sunday 02:00 UTC is still Saturday evening in New York.
	instant := time.Date(2025, 3, 16, 2, 0, 0, 0, time.UTC)

	utcWeek := Of(instant, time.UTC)
	nyWeek := Of(instant, ny)

	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), utcWeek.Start)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, ny), nyWeek.Start)
	assert.True(t, instant.Before(nyWeek.End))
}

func TestOf_NilLocation(t *testing.T) {
	w := Of(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), nil)
	assert.Equal(t, time.UTC, w.Start.Location())
}

func TestShift(t *testing.T) {
	w := Of(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), time.UTC)

	prev := w.Shift(-1)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), prev.Start)

	next := w.Shift(3)
	assert.Equal(t, time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC), next.Start)
}

func TestShift_AcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST starts 2025-03-09 in New York; the week still starts at local midnight.
	w := Of(time.Date(2025, 3, 5, 12, 0, 0, 0, ny), ny)
	next := w.Shift(1)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, ny), next.Start)
	assert.Equal(t, 0, next.Start.Hour())
}

func TestUTC(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	w := Of(time.Date(2025, 6, 11, 12, 0, 0, 0, ny), ny).UTC()
	assert.Equal(t, time.UTC, w.Start.Location())
	assert.Equal(t, time.Date(2025, 6, 8, 4, 0, 0, 0, time.UTC), w.Start)
}
