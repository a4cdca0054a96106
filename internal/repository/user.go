package repository

import (
	"context"
	"errors"

	"github.com/auralis/auralis/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrProfileNotFound = errors.New("profile not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User, profile *model.Profile) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// Delete cascades to the profile, goals, goal history and wellness entries.
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user and its profile together.
func (r *userRepository) Create(ctx context.Context, user *model.User, profile *model.Profile) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
			user.ID, user.Email, user.PasswordHash, user.CreatedAt.UTC(),
		)
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO profiles (id, user_id, name, timezone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, profile.ID, user.ID, profile.Name, profile.Timezone, profile.CreatedAt.UTC(), profile.UpdatedAt.UTC())
		return err
	})
}

func (r *userRepository) ByID(ctx context.Context, id string) (*model.User, error) {
	return getOne[model.User](ctx, r.db, ErrUserNotFound, `SELECT * FROM users WHERE id = $1`, id)
}

func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return getOne[model.User](ctx, r.db, ErrUserNotFound, `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE id = $1`, id)
	return count > 0, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}

	return expectRows(result, ErrUserNotFound)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectRows(result, ErrUserNotFound)
}
