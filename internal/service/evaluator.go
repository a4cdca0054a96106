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

type EvaluationResult struct {
	Goal      *model.Goal
	Completed bool // true only for the call that performed the transition
}

// CompletionEvaluator moves goals that reached their target to Completed.
// Only the caller whose conditional claim succeeds notifies, so evaluating
// the same goal any number of times yields at most one notification.
type CompletionEvaluator struct {
	goals    repository.GoalRepository
	history  repository.GoalHistoryRepository
	notifier notify.Notifier
	now      func() time.Time
}

func NewCompletionEvaluator(goals repository.GoalRepository, history repository.GoalHistoryRepository, notifier notify.Notifier) *CompletionEvaluator {
	return &CompletionEvaluator{
		goals:    goals,
		history:  history,
		notifier: notifier,
		now:      time.Now,
	}
}

func (e *CompletionEvaluator) Evaluate(ctx context.Context, goal *model.Goal) (*EvaluationResult, error) {
	if !goal.IsActive() || !goal.Reached() {
		return &EvaluationResult{Goal: goal}, nil
	}

	completed, err := e.goals.Complete(ctx, goal.ID, e.now())
	if errors.Is(err, repository.ErrGoalNotActive) {
		// Someone else claimed it. Report the stored terminal state when we can.
		archived, hErr := e.history.ByID(ctx, goal.UserID, goal.ID)
		if hErr == nil {
			return &EvaluationResult{Goal: &archived.Goal}, nil
		}
		return &EvaluationResult{Goal: goal}, nil
	}
	if err != nil {
		return nil, storageError("complete goal", err)
	}

	observability.RecordCompleted(completed.Category)
	slog.Info("goal completed",
		"user_id", completed.UserID,
		"goal_id", completed.ID,
		"category", completed.Category,
		"current", completed.Current,
		"target", completed.Target,
	)

	err = e.notifier.GoalCompleted(ctx, completed)
	if err != nil {
		slog.Warn("failed to send goal completed notification", "error", err, "goal_id", completed.ID, "user_id", completed.UserID)
	}

	return &EvaluationResult{Goal: completed, Completed: true}, nil
}
