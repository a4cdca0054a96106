package repository

import (
	"context"
	"time"

	"github.com/auralis/auralis/internal/model"
	"github.com/jmoiron/sqlx"
)

// GoalHistoryRepository reads archived terminal goals. Rows are written only
// by GoalRepository transitions.
type GoalHistoryRepository interface {
	Since(ctx context.Context, userID string, since time.Time) ([]*model.ArchivedGoal, error)
	ByStatus(ctx context.Context, userID string, status model.GoalStatus) ([]*model.ArchivedGoal, error)
	ByID(ctx context.Context, userID, goalID string) (*model.ArchivedGoal, error)
}

type goalHistoryRepository struct {
	db *sqlx.DB
}

func NewGoalHistoryRepository(db *sqlx.DB) GoalHistoryRepository {
	return &goalHistoryRepository{db: db}
}

// Since returns goals whose week started at or after since, most recent week first.
func (r *goalHistoryRepository) Since(ctx context.Context, userID string, since time.Time) ([]*model.ArchivedGoal, error) {
	return selectAll[model.ArchivedGoal](ctx, r.db, `
		SELECT * FROM goal_history
		WHERE user_id = $1 AND week_start >= $2
		ORDER BY week_start DESC, archived_at DESC`,
		userID, since.UTC())
}

func (r *goalHistoryRepository) ByStatus(ctx context.Context, userID string, status model.GoalStatus) ([]*model.ArchivedGoal, error) {
	return selectAll[model.ArchivedGoal](ctx, r.db, `
		SELECT * FROM goal_history
		WHERE user_id = $1 AND status = $2
		ORDER BY week_start DESC, archived_at DESC`,
		userID, status)
}

func (r *goalHistoryRepository) ByID(ctx context.Context, userID, goalID string) (*model.ArchivedGoal, error) {
	return getOne[model.ArchivedGoal](ctx, r.db, ErrGoalNotFound,
		`SELECT * FROM goal_history WHERE id = $1 AND user_id = $2`, goalID, userID)
}

func insertHistory(ctx context.Context, tx sqlx.ExecerContext, goal *model.Goal, archivedAt time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO goal_history (id, user_id, name, category, target, current, unit, status,
		                          week_start, week_end, completed_at, overdue_at, created_at, updated_at, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
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
		utcPtr(goal.CompletedAt),
		utcPtr(goal.OverdueAt),
		goal.CreatedAt.UTC(),
		goal.UpdatedAt.UTC(),
		archivedAt.UTC(),
	)
	return err
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
