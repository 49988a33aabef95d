package repository // repository holds data access logic for domain entities

import (
	"context" // context carries deadlines and cancellation

	"github.com/google/uuid" // uuid generates primary keys
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

const cinemaColumns = `id, name, location, number, created_at, updated_at`

// CinemaRepo provides CRUD for cinemas.
type CinemaRepo struct {
	db *sqlx.DB // underlying connection pool
}

// NewCinemaRepo constructs a CinemaRepo with the given DB handle.
func NewCinemaRepo(db *sqlx.DB) *CinemaRepo {
	return &CinemaRepo{db: db}
}

// Create inserts a new cinema and re-reads it so timestamps are filled.
func (r *CinemaRepo) Create(ctx context.Context, c *model.Cinema) error {
	c.ID = uuid.NewString()
	const q = `INSERT INTO cinemas (id, name, location, number) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, c.ID, c.Name, c.Location, c.Number); err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// GetByID returns ErrCinemaNotFound when the id is unknown.
func (r *CinemaRepo) GetByID(ctx context.Context, id string) (*model.Cinema, error) {
	return getOne[model.Cinema](ctx, r.db, ErrCinemaNotFound,
		`SELECT `+cinemaColumns+` FROM cinemas WHERE id = ?`, id)
}

// List returns one page of cinemas ordered by branch number.
func (r *CinemaRepo) List(ctx context.Context, req model.PageRequest) ([]model.Cinema, int, error) {
	return listPage[model.Cinema](ctx, r.db,
		`SELECT COUNT(*) FROM cinemas`,
		`SELECT `+cinemaColumns+` FROM cinemas ORDER BY number, name LIMIT ? OFFSET ?`,
		req)
}

// Update rewrites name/location/number and reloads the row.
func (r *CinemaRepo) Update(ctx context.Context, c *model.Cinema) error {
	const q = `UPDATE cinemas SET name = ?, location = ?, number = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, c.Name, c.Location, c.Number, c.ID); err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	*c = *fresh
	return nil
}

// Delete removes a cinema. Cinemas that still have auditoriums are kept and
// ErrConflict is returned.
func (r *CinemaRepo) Delete(ctx context.Context, id string) (*model.Cinema, error) {
	var out *model.Cinema
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		c, err := getOne[model.Cinema](ctx, tx, ErrCinemaNotFound,
			`SELECT `+cinemaColumns+` FROM cinemas WHERE id = ? FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cinemas WHERE id = ?`, id); err != nil {
			if isReferenced(err) {
				return ErrConflict
			}
			return err
		}
		out = c
		return nil
	})
	return out, err
}
