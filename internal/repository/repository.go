package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

// getOne scans a single row into a T, mapping sql.ErrNoRows to notFound.
func getOne[T any](ctx context.Context, q sqlx.QueryerContext, notFound error, query string, args ...any) (*T, error) {
	var out T
	err := sqlx.GetContext(ctx, q, &out, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// selectAll scans every row into a slice of T. An empty result is a non-nil empty slice.
func selectAll[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) ([]*T, error) {
	out := []*T{}
	err := sqlx.SelectContext(ctx, q, &out, query, args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// expectRows returns notFound when the statement touched no rows.
func expectRows(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// withTx runs fn inside a transaction, committing only when fn succeeds.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = fn(tx)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// isUniqueViolation works for both SQLite and PostgreSQL error texts.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value")
}
