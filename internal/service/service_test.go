package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/auralis/auralis/internal/db/dbtest"
	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/repository"
)

// Wednesday 2025-03-12 12:00 UTC, inside the week starting Sunday 2025-03-09.
var wednesday = time.Date(2025, 3, 12, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type recordingNotifier struct {
	mu           sync.Mutex
	completed    []*model.Goal
	overdueCalls map[string][][]*model.Goal
}

func (n *recordingNotifier) GoalCompleted(ctx context.Context, goal *model.Goal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, goal)
	return nil
}

func (n *recordingNotifier) GoalsOverdue(ctx context.Context, userID string, goals []*model.Goal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.overdueCalls == nil {
		n.overdueCalls = map[string][][]*model.Goal{}
	}
	n.overdueCalls[userID] = append(n.overdueCalls[userID], goals)
	return nil
}

func (n *recordingNotifier) completedCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.completed)
}

func (n *recordingNotifier) overdueCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, calls := range n.overdueCalls {
		for _, goals := range calls {
			total += len(goals)
		}
	}
	return total
}

type fixture struct {
	db       *sqlx.DB
	clock    *testClock
	notifier *recordingNotifier

	users    repository.UserRepository
	profiles repository.ProfileRepository
	goalRepo repository.GoalRepository
	history  repository.GoalHistoryRepository

	evaluator *CompletionEvaluator
	reporter  *ProgressReporter
	goals     *GoalService
	sweeper   *OverdueSweeper
	wellness  *WellnessService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	f := &fixture{
		db:       db,
		clock:    &testClock{t: wednesday},
		notifier: &recordingNotifier{},
		users:    repository.NewUserRepository(db),
		profiles: repository.NewProfileRepository(db),
		goalRepo: repository.NewGoalRepository(db),
		history:  repository.NewGoalHistoryRepository(db),
	}

	f.evaluator = NewCompletionEvaluator(f.goalRepo, f.history, f.notifier)
	f.evaluator.now = f.clock.Now

	f.reporter = NewProgressReporter(f.goalRepo, f.users, f.evaluator)
	f.reporter.now = f.clock.Now

	f.goals = NewGoalService(f.goalRepo, f.history, f.users, f.profiles, f.evaluator, time.UTC, 52)
	f.goals.now = f.clock.Now

	f.sweeper = NewOverdueSweeper(f.goalRepo, f.notifier, nil, time.Minute)
	f.sweeper.now = f.clock.Now

	f.wellness = NewWellnessService(repository.NewWellnessRepository(db), f.users, f.reporter)
	f.wellness.now = f.clock.Now

	return f
}

func (f *fixture) createUser(t *testing.T, timezone string) string {
	t.Helper()

	now := time.Now()
	user := &model.User{ID: uuid.New().String(), Email: uuid.New().String() + "@example.com", CreatedAt: now}
	profile := &model.Profile{ID: uuid.New().String(), Name: "Student", Timezone: timezone, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.users.Create(context.Background(), user, profile))
	return user.ID
}

func (f *fixture) setGoal(t *testing.T, userID string, category model.Category, target, current int) *model.Goal {
	t.Helper()

	goals, err := f.goals.SetGoals(context.Background(), userID, []GoalInput{
		{Name: string(category) + " goal", Category: category, Target: target, Current: current, Unit: "entries"},
	})
	require.NoError(t, err)
	require.Len(t, goals, 1)
	return goals[0]
}
