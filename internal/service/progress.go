package service

import (
	"context"
	"errors"
	"time"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/observability"
	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/validation"
)

type ProgressResult struct {
	// Goal is nil when the user has no active goal for the category this week.
	Goal           *model.Goal   `json:"goal"`
	CompletedGoals []*model.Goal `json:"completedGoals"`
}

// ProgressReporter applies one unit (or more) of progress to the user's
// current goal for a category and evaluates it for completion.
type ProgressReporter struct {
	goals     repository.GoalRepository
	users     repository.UserRepository
	evaluator *CompletionEvaluator
	now       func() time.Time
}

func NewProgressReporter(goals repository.GoalRepository, users repository.UserRepository, evaluator *CompletionEvaluator) *ProgressReporter {
	return &ProgressReporter{
		goals:     goals,
		users:     users,
		evaluator: evaluator,
		now:       time.Now,
	}
}

func (r *ProgressReporter) ReportProgress(ctx context.Context, userID string, category model.Category, amount int) (*ProgressResult, error) {
	if userID == "" {
		return nil, invalid("userId", ErrUnknownUser)
	}
	err := validation.ValidateCategory(category)
	if err != nil {
		return nil, invalid("category", err)
	}
	err = validation.ValidateAmount(amount)
	if err != nil {
		return nil, invalid("amount", err)
	}

	exists, err := r.users.Exists(ctx, userID)
	if err != nil {
		observability.RecordProgress(category, observability.OutcomeFailed)
		return nil, storageError("look up user", err)
	}
	if !exists {
		return nil, invalid("userId", ErrUnknownUser)
	}

	result := &ProgressResult{CompletedGoals: []*model.Goal{}}
	now := r.now()

	goal, err := r.goals.ActiveFor(ctx, userID, category, now)
	if errors.Is(err, repository.ErrGoalNotFound) {
		observability.RecordProgress(category, observability.OutcomeNoGoal)
		return result, nil
	}
	if err != nil {
		observability.RecordProgress(category, observability.OutcomeFailed)
		return nil, storageError("find active goal", err)
	}

	updated, err := r.goals.Increment(ctx, goal.ID, amount, now)
	if errors.Is(err, repository.ErrGoalNotActive) {
		// Turned terminal between lookup and increment.
		observability.RecordProgress(category, observability.OutcomeNoGoal)
		return result, nil
	}
	if err != nil {
		observability.RecordProgress(category, observability.OutcomeFailed)
		return nil, storageError("increment goal", err)
	}
	observability.RecordProgress(category, observability.OutcomeApplied)

	evaluation, err := r.evaluator.Evaluate(ctx, updated)
	if err != nil {
		return nil, err
	}

	result.Goal = evaluation.Goal
	if evaluation.Completed {
		result.CompletedGoals = append(result.CompletedGoals, evaluation.Goal)
	}

	return result, nil
}
