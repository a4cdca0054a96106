package repository

import (
	"context"
	"time"

	"github.com/auralis/auralis/internal/model"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID, name, timezone string) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return getOne[model.Profile](ctx, r.db, ErrProfileNotFound, `SELECT * FROM profiles WHERE user_id = $1`, userID)
}

func (r *profileRepository) Update(ctx context.Context, userID, name, timezone string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET name = $1, timezone = $2, updated_at = $3
		WHERE user_id = $4
	`, name, timezone, time.Now().UTC(), userID)
	if err != nil {
		return err
	}

	return expectRows(result, ErrProfileNotFound)
}
