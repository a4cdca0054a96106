package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/repository"
)

func TestSweep_MarksExpiredGoalsOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.createUser(t, "")

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	stale := f.setGoal(t, userID, model.CategorySleep, 5, 1)
	f.clock.Set(wednesday)
	fresh := f.setGoal(t, userID, model.CategorySleep, 5, 0)

	result, err := f.sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	require.Len(t, result.Affected, 1)
	assert.Empty(t, result.Failures)
	assert.Equal(t, stale.ID, result.Affected[0].ID)
	assert.Equal(t, model.GoalStatusOverdue, result.Affected[0].Status)
	assert.Equal(t, 1, result.Affected[0].Current)

	active, err := f.goals.ActiveGoals(ctx, userID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, fresh.ID, active[0].ID)

	overdue, err := f.goals.Overdue(ctx, userID)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, stale.ID, overdue[0].ID)
	assert.Nil(t, overdue[0].CompletedAt)
	require.NotNil(t, overdue[0].OverdueAt)

	history, err := f.goals.History(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.GoalStatusOverdue, history[0].Status)

	assert.Equal(t, 1, f.notifier.overdueCount())
}

func TestSweep_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.createUser(t, "")

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	f.setGoal(t, userID, model.CategoryMood, 3, 0)
	f.clock.Set(wednesday)

	first, err := f.sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	assert.Len(t, first.Affected, 1)

	second, err := f.sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	assert.Empty(t, second.Affected)
	assert.Empty(t, second.Failures)

	assert.Equal(t, 1, f.notifier.overdueCount())
	overdue, err := f.goals.Overdue(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, overdue, 1)
}

func TestSweep_CompletedGoalStaysCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.createUser(t, "")

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	f.setGoal(t, userID, model.CategoryMood, 1, 0)
	_, err := f.reporter.ReportProgress(ctx, userID, model.CategoryMood, 1)
	require.NoError(t, err)
	f.clock.Set(wednesday)

	result, err := f.sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	assert.Empty(t, result.Affected)

	history, err := f.goals.History(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.GoalStatusCompleted, history[0].Status)
	assert.Nil(t, history[0].OverdueAt)
	assert.Equal(t, 0, f.notifier.overdueCount())
}

func TestSweep_GroupsNotificationsPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.createUser(t, "")
	ben := f.createUser(t, "")

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	f.setGoal(t, ana, model.CategoryMood, 3, 0)
	f.setGoal(t, ana, model.CategorySleep, 3, 0)
	f.setGoal(t, ben, model.CategoryWater, 3, 0)
	f.clock.Set(wednesday)

	result, err := f.sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	assert.Len(t, result.Affected, 3)

	require.Len(t, f.notifier.overdueCalls[ana], 1)
	assert.Len(t, f.notifier.overdueCalls[ana][0], 2)
	require.Len(t, f.notifier.overdueCalls[ben], 1)
	assert.Len(t, f.notifier.overdueCalls[ben][0], 1)
}

type flakyGoals struct {
	repository.GoalRepository
	failID string
}

func (g flakyGoals) MarkOverdue(ctx context.Context, goalID string, asOf, at time.Time) (*model.Goal, error) {
	if goalID == g.failID {
		return nil, errors.New("archive write failed")
	}
	return g.GoalRepository.MarkOverdue(ctx, goalID, asOf, at)
}

func TestSweep_ContinuesAfterFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.createUser(t, "")
	ben := f.createUser(t, "")

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	broken := f.setGoal(t, ana, model.CategoryMood, 3, 0)
	ok := f.setGoal(t, ben, model.CategoryMood, 3, 0)
	f.clock.Set(wednesday)

	sweeper := NewOverdueSweeper(flakyGoals{GoalRepository: f.goalRepo, failID: broken.ID}, f.notifier, nil, time.Minute)
	sweeper.now = f.clock.Now
	sweeper.batchSize = 1

	result, err := sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, broken.ID, result.Failures[0].GoalID)
	assert.Contains(t, result.Failures[0].Error, "archive write failed")
	require.Len(t, result.Affected, 1)
	assert.Equal(t, ok.ID, result.Affected[0].ID)

	// The failed goal is still active and a later sweep picks it up.
	result, err = f.sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	require.Len(t, result.Affected, 1)
	assert.Equal(t, broken.ID, result.Affected[0].ID)
}

func TestSweep_Batches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	for range 5 {
		userID := f.createUser(t, "")
		f.setGoal(t, userID, model.CategoryStress, 2, 0)
	}
	f.clock.Set(wednesday)

	f.sweeper.batchSize = 2
	result, err := f.sweeper.Sweep(ctx, wednesday)
	require.NoError(t, err)
	assert.Len(t, result.Affected, 5)
	assert.Equal(t, 5, f.notifier.overdueCount())
}

type fakeLocker struct {
	mu       sync.Mutex
	free     bool
	err      error
	acquired int
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.free {
		l.acquired++
	}
	return l.free, nil
}

func (l *fakeLocker) Release(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.released++
	return nil
}

func TestSweeperTick_RespectsLock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.createUser(t, "")

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	f.setGoal(t, userID, model.CategoryMood, 3, 0)
	f.clock.Set(wednesday)

	lock := &fakeLocker{free: false}
	f.sweeper.lock = lock

	f.sweeper.tick(ctx)
	assert.Equal(t, 0, f.notifier.overdueCount())
	assert.Equal(t, 0, lock.released)

	lock.err = errors.New("redis down")
	f.sweeper.tick(ctx)
	assert.Equal(t, 0, f.notifier.overdueCount())

	lock.err = nil
	lock.free = true
	f.sweeper.tick(ctx)
	assert.Equal(t, 1, f.notifier.overdueCount())
	assert.Equal(t, 1, lock.acquired)
	assert.Equal(t, 1, lock.released)
}

func TestSweeperRun_StopsOnCancel(t *testing.T) {
	f := newFixture(t)
	userID := f.createUser(t, "")

	f.clock.Set(wednesday.AddDate(0, 0, -7))
	f.setGoal(t, userID, model.CategoryMood, 3, 0)
	f.clock.Set(wednesday)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.sweeper.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return f.notifier.overdueCount() == 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
