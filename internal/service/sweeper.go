package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/notify"
	"github.com/auralis/auralis/internal/observability"
	"github.com/auralis/auralis/internal/repository"
)

const defaultSweepBatchSize = 200

type SweepFailure struct {
	GoalID string `json:"goalId"`
	UserID string `json:"userId"`
	Error  string `json:"error"`
}

type SweepResult struct {
	Affected []*model.Goal  `json:"affected"`
	Failures []SweepFailure `json:"failures"`
}

// Locker guards the periodic sweep across instances.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// OverdueSweeper marks active goals whose week has ended as Overdue.
type OverdueSweeper struct {
	goals     repository.GoalRepository
	notifier  notify.Notifier
	lock      Locker
	interval  time.Duration
	batchSize int
	now       func() time.Time
}

// NewOverdueSweeper builds a sweeper. lock may be nil on single-instance deployments.
func NewOverdueSweeper(goals repository.GoalRepository, notifier notify.Notifier, lock Locker, interval time.Duration) *OverdueSweeper {
	return &OverdueSweeper{
		goals:     goals,
		notifier:  notifier,
		lock:      lock,
		interval:  interval,
		batchSize: defaultSweepBatchSize,
		now:       time.Now,
	}
}

// Sweep transitions every goal still active with week_end < asOf. A goal that
// fails is recorded and skipped. Goals completed concurrently lose nothing:
// the conditional claim leaves them Completed and they are not reported.
func (s *OverdueSweeper) Sweep(ctx context.Context, asOf time.Time) (*SweepResult, error) {
	started := time.Now()
	result := &SweepResult{Affected: []*model.Goal{}, Failures: []SweepFailure{}}
	failed := map[string]bool{}

	var sweepErr error
sweep:
	for {
		limit := s.batchSize + len(failed)
		batch, err := s.goals.Expired(ctx, asOf, limit)
		if err != nil {
			sweepErr = storageError("list expired goals", err)
			break
		}

		unseen := 0
		for _, goal := range batch {
			if failed[goal.ID] {
				continue
			}
			if ctx.Err() != nil {
				sweepErr = ctx.Err()
				break sweep
			}
			unseen++

			overdue, err := s.goals.MarkOverdue(ctx, goal.ID, asOf, s.now())
			if errors.Is(err, repository.ErrGoalNotActive) {
				continue
			}
			if err != nil {
				failed[goal.ID] = true
				result.Failures = append(result.Failures, SweepFailure{GoalID: goal.ID, UserID: goal.UserID, Error: err.Error()})
				slog.Error("failed to mark goal overdue", "error", err, "goal_id", goal.ID, "user_id", goal.UserID)
				continue
			}

			observability.RecordOverdue(overdue.Category)
			result.Affected = append(result.Affected, overdue)
		}

		// Failed goals stay active and come back in every batch, so stop once
		// a batch holds nothing new.
		if len(batch) < limit || unseen == 0 {
			break
		}
	}

	observability.RecordSweep(started, len(result.Failures))
	if len(result.Affected) > 0 || len(result.Failures) > 0 {
		slog.Info("overdue sweep finished", "affected", len(result.Affected), "failures", len(result.Failures), "as_of", asOf)
	}

	// Transitions already committed are announced even if ctx was cancelled mid-sweep.
	s.notify(context.WithoutCancel(ctx), result.Affected)
	return result, sweepErr
}

// notify sends one overdue notification per user, in the order users were first seen.
func (s *OverdueSweeper) notify(ctx context.Context, goals []*model.Goal) {
	var order []string
	byUser := map[string][]*model.Goal{}
	for _, g := range goals {
		if _, seen := byUser[g.UserID]; !seen {
			order = append(order, g.UserID)
		}
		byUser[g.UserID] = append(byUser[g.UserID], g)
	}

	for _, userID := range order {
		err := s.notifier.GoalsOverdue(ctx, userID, byUser[userID])
		if err != nil {
			slog.Warn("failed to send goals overdue notification", "error", err, "user_id", userID, "count", len(byUser[userID]))
		}
	}
}

// Run sweeps immediately and then on every interval until ctx is done.
func (s *OverdueSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("overdue sweeper started", "interval", s.interval)
	for {
		s.tick(ctx)

		select {
		case <-ctx.Done():
			slog.Info("overdue sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *OverdueSweeper) tick(ctx context.Context) {
	if s.lock != nil {
		ok, err := s.lock.Acquire(ctx)
		if err != nil {
			slog.Warn("failed to acquire sweep lock", "error", err)
			return
		}
		if !ok {
			slog.Debug("sweep lock held by another instance")
			return
		}
		defer func() {
			// Release even when ctx is already cancelled.
			err := s.lock.Release(context.WithoutCancel(ctx))
			if err != nil {
				slog.Warn("failed to release sweep lock", "error", err)
			}
		}()
	}

	_, err := s.Sweep(ctx, s.now())
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("overdue sweep failed", "error", err)
	}
}
