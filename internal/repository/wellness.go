package repository

import (
	"context"
	"time"

	"github.com/auralis/auralis/internal/model"
	"github.com/jmoiron/sqlx"
)

type WellnessRepository interface {
	Create(ctx context.Context, entry *model.WellnessEntry) error
	Entries(ctx context.Context, userID string, category model.Category, since time.Time) ([]*model.WellnessEntry, error)
}

type wellnessRepository struct {
	db *sqlx.DB
}

func NewWellnessRepository(db *sqlx.DB) WellnessRepository {
	return &wellnessRepository{db: db}
}

func (r *wellnessRepository) Create(ctx context.Context, entry *model.WellnessEntry) error {
	query := `INSERT INTO wellness_entries (id, user_id, category, score, hours, tags, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Category,
		entry.Score,
		entry.Hours,
		entry.Tags,
		entry.Notes,
		entry.CreatedAt.UTC(),
	)

	return err
}

func (r *wellnessRepository) Entries(ctx context.Context, userID string, category model.Category, since time.Time) ([]*model.WellnessEntry, error) {
	return selectAll[model.WellnessEntry](ctx, r.db, `
		SELECT * FROM wellness_entries
		WHERE user_id = $1 AND category = $2 AND created_at >= $3
		ORDER BY created_at DESC`,
		userID, category, since.UTC())
}
