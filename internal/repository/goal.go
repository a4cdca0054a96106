package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auralis/auralis/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrDuplicateGoal = errors.New("an active goal already exists for this category and week")
	// ErrGoalNotActive means a conditional write lost to a terminal transition.
	ErrGoalNotActive = errors.New("goal is no longer active")
)

// GoalRepository stores the active set of weekly goals.
// Terminal goals are moved to goal_history by Complete and MarkOverdue.
type GoalRepository interface {
	CreateMany(ctx context.Context, goals []*model.Goal) error
	Active(ctx context.Context, userID string, at time.Time) ([]*model.Goal, error)
	ActiveFor(ctx context.Context, userID string, category model.Category, at time.Time) (*model.Goal, error)
	Increment(ctx context.Context, goalID string, amount int, at time.Time) (*model.Goal, error)
	Expired(ctx context.Context, asOf time.Time, limit int) ([]*model.Goal, error)
	Complete(ctx context.Context, goalID string, at time.Time) (*model.Goal, error)
	MarkOverdue(ctx context.Context, goalID string, asOf, at time.Time) (*model.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// CreateMany inserts all goals or none. A goal whose week overlaps an active
// goal of the same category is a duplicate, so weeks computed in another
// timezone cannot produce a second active goal.
func (r *goalRepository) CreateMany(ctx context.Context, goals []*model.Goal) error {
	overlapQuery := `SELECT COUNT(*) FROM weekly_goals
	                 WHERE user_id = $1 AND category = $2 AND status = $3 AND week_start <= $4 AND week_end >= $5`
	query := `INSERT INTO weekly_goals (id, user_id, name, category, target, current, unit, status, week_start, week_end, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, goal := range goals {
			var overlapping int
			err := tx.GetContext(ctx, &overlapping, overlapQuery,
				goal.UserID, goal.Category, model.GoalStatusActive, goal.WeekEnd.UTC(), goal.WeekStart.UTC())
			if err != nil {
				return fmt.Errorf("failed to check active goals: %w", err)
			}
			if overlapping > 0 {
				return fmt.Errorf("%s: %w", goal.Category, ErrDuplicateGoal)
			}

			_, err = tx.ExecContext(ctx, query,
				goal.ID,
				goal.UserID,
				goal.Name,
				goal.Category,
				goal.Target,
				goal.Current,
				goal.Unit,
				goal.Status,
				goal.WeekStart.UTC(),
				goal.WeekEnd.UTC(),
				goal.CreatedAt.UTC(),
				goal.UpdatedAt.UTC(),
			)
			if isUniqueViolation(err) {
				return fmt.Errorf("%s: %w", goal.Category, ErrDuplicateGoal)
			}
			if err != nil {
				return fmt.Errorf("failed to create goal %q: %w", goal.Name, err)
			}
		}
		return nil
	})
}

// Active lists the user's active goals whose week contains at.
func (r *goalRepository) Active(ctx context.Context, userID string, at time.Time) ([]*model.Goal, error) {
	at = at.UTC()
	return selectAll[model.Goal](ctx, r.db, `
		SELECT * FROM weekly_goals
		WHERE user_id = $1 AND status = $2 AND week_start <= $3 AND week_end >= $3
		ORDER BY created_at ASC, category ASC`,
		userID, model.GoalStatusActive, at)
}

func (r *goalRepository) ActiveFor(ctx context.Context, userID string, category model.Category, at time.Time) (*model.Goal, error) {
	at = at.UTC()
	return getOne[model.Goal](ctx, r.db, ErrGoalNotFound, `
		SELECT * FROM weekly_goals
		WHERE user_id = $1 AND category = $2 AND status = $3 AND week_start <= $4 AND week_end >= $4
		ORDER BY week_start ASC
		LIMIT 1`,
		userID, category, model.GoalStatusActive, at)
}

// Increment adds amount to current in a single statement so concurrent
// reports never lose an update, then reads the row back in the same transaction.
func (r *goalRepository) Increment(ctx context.Context, goalID string, amount int, at time.Time) (*model.Goal, error) {
	if amount < 1 {
		return nil, fmt.Errorf("invalid increment: %d", amount)
	}

	var goal *model.Goal
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE weekly_goals
			SET current = current + $1, updated_at = $2
			WHERE id = $3 AND status = $4`,
			amount, at.UTC(), goalID, model.GoalStatusActive)
		if err != nil {
			return err
		}
		err = expectRows(result, ErrGoalNotActive)
		if err != nil {
			return err
		}

		goal, err = getOne[model.Goal](ctx, tx, ErrGoalNotFound, `SELECT * FROM weekly_goals WHERE id = $1`, goalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Expired lists active goals whose week ended before asOf.
func (r *goalRepository) Expired(ctx context.Context, asOf time.Time, limit int) ([]*model.Goal, error) {
	return selectAll[model.Goal](ctx, r.db, `
		SELECT * FROM weekly_goals
		WHERE status = $1 AND week_end < $2
		ORDER BY user_id ASC, week_end ASC
		LIMIT $3`,
		model.GoalStatusActive, asOf.UTC(), limit)
}

// Complete claims the goal as completed if it is still active and has reached
// its target, archives it and removes it from the active set.
// ErrGoalNotActive means another writer already moved it to a terminal status.
func (r *goalRepository) Complete(ctx context.Context, goalID string, at time.Time) (*model.Goal, error) {
	at = at.UTC()
	return r.transition(ctx, goalID, at, `
		UPDATE weekly_goals
		SET status = $1, completed_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4 AND current >= target`,
		model.GoalStatusCompleted, at, goalID, model.GoalStatusActive)
}

// MarkOverdue claims the goal as overdue if it is still active and its week
// ended before asOf. Completion wins when both race.
func (r *goalRepository) MarkOverdue(ctx context.Context, goalID string, asOf, at time.Time) (*model.Goal, error) {
	at = at.UTC()
	return r.transition(ctx, goalID, at, `
		UPDATE weekly_goals
		SET status = $1, overdue_at = $2, updated_at = $2
		WHERE id = $3 AND status = $4 AND week_end < $5`,
		model.GoalStatusOverdue, at, goalID, model.GoalStatusActive, asOf.UTC())
}

func (r *goalRepository) transition(ctx context.Context, goalID string, at time.Time, claim string, args ...any) (*model.Goal, error) {
	var goal *model.Goal
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, claim, args...)
		if err != nil {
			return err
		}
		err = expectRows(result, ErrGoalNotActive)
		if err != nil {
			return err
		}

		goal, err = getOne[model.Goal](ctx, tx, ErrGoalNotFound, `SELECT * FROM weekly_goals WHERE id = $1`, goalID)
		if err != nil {
			return err
		}

		err = insertHistory(ctx, tx, goal, at)
		if err != nil {
			return fmt.Errorf("failed to archive goal: %w", err)
		}

		_, err = tx.ExecContext(ctx, `DELETE FROM weekly_goals WHERE id = $1`, goalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Delete removes an active goal without archiving it.
func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM weekly_goals WHERE id = $1 AND user_id = $2 AND status = $3`,
		goalID, userID, model.GoalStatusActive)
	if err != nil {
		return err
	}

	return expectRows(result, ErrGoalNotFound)
}
