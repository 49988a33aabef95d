package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// getOne scans a single row into a new T, mapping sql.ErrNoRows to notFound.
func getOne[T any](ctx context.Context, q sqlx.QueryerContext, notFound error, query string, args ...any) (*T, error) {
	var out T
	if err := sqlx.GetContext(ctx, q, &out, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound
		}
		return nil, err
	}
	return &out, nil
}

// listPage runs a COUNT query then a LIMIT/OFFSET data query sharing the same
// filter args. dataSQL must end with "LIMIT ? OFFSET ?".
func listPage[T any](ctx context.Context, q sqlx.QueryerContext, countSQL, dataSQL string, req model.PageRequest, args ...any) ([]T, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, q, &total, countSQL, args...); err != nil {
		return nil, 0, err
	}
	items := make([]T, 0, req.Size)
	if total == 0 {
		return items, 0, nil
	}
	dataArgs := append(append([]any{}, args...), req.Size, req.Offset())
	if err := sqlx.SelectContext(ctx, q, &items, dataSQL, dataArgs...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// withTx runs fn inside a transaction, committing on success.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	return fn(tx)
}
