package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

const auditoriumColumns = `id, cinema_id, name, capacity, created_at, updated_at`

// AuditoriumRepo persists auditoriums. An auditorium always belongs to an
// existing cinema.
type AuditoriumRepo struct {
	db *sqlx.DB
}

// NewAuditoriumRepo returns a repository over the auditoriums table.
func NewAuditoriumRepo(db *sqlx.DB) *AuditoriumRepo {
	return &AuditoriumRepo{db: db}
}

// Create inserts a. It returns ErrCinemaNotFound when a.CinemaID does not
// reference a cinema.
func (r *AuditoriumRepo) Create(ctx context.Context, a *model.Auditorium) error {
	a.ID = uuid.NewString()
	const q = `INSERT INTO auditoriums (id, cinema_id, name, capacity) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, a.ID, a.CinemaID, a.Name, a.Capacity); err != nil {
		if isMissingParent(err) {
			return ErrCinemaNotFound
		}
		return err
	}
	fresh, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *fresh
	return nil
}

// GetByID returns ErrAuditoriumNotFound when no row matches.
func (r *AuditoriumRepo) GetByID(ctx context.Context, id string) (*model.Auditorium, error) {
	return getOne[model.Auditorium](ctx, r.db, ErrAuditoriumNotFound,
		`SELECT `+auditoriumColumns+` FROM auditoriums WHERE id = ?`, id)
}

// List returns one page of auditoriums ordered by cinema and name plus the
// total count.
func (r *AuditoriumRepo) List(ctx context.Context, req model.PageRequest) ([]model.Auditorium, int, error) {
	return listPage[model.Auditorium](ctx, r.db,
		`SELECT COUNT(*) FROM auditoriums`,
		`SELECT `+auditoriumColumns+` FROM auditoriums ORDER BY cinema_id, name LIMIT ? OFFSET ?`,
		req)
}

// ListByCinema returns every auditorium of a cinema ordered by name.
func (r *AuditoriumRepo) ListByCinema(ctx context.Context, cinemaID string) ([]model.Auditorium, error) {
	out := []model.Auditorium{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+auditoriumColumns+` FROM auditoriums WHERE cinema_id = ? ORDER BY name`, cinemaID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes cinema, name and capacity and reloads the row. An unknown
// cinema is ErrCinemaNotFound.
func (r *AuditoriumRepo) Update(ctx context.Context, a *model.Auditorium) error {
	const q = `UPDATE auditoriums SET cinema_id = ?, name = ?, capacity = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, a.CinemaID, a.Name, a.Capacity, a.ID); err != nil {
		if isMissingParent(err) {
			return ErrCinemaNotFound
		}
		return err
	}
	fresh, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *fresh
	return nil
}

// Delete removes an auditorium that has no functions scheduled; otherwise
// ErrConflict.
func (r *AuditoriumRepo) Delete(ctx context.Context, id string) (*model.Auditorium, error) {
	var out *model.Auditorium
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		a, err := getOne[model.Auditorium](ctx, tx, ErrAuditoriumNotFound,
			`SELECT `+auditoriumColumns+` FROM auditoriums WHERE id = ? FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM auditoriums WHERE id = ?`, id); err != nil {
			if isReferenced(err) {
				return ErrConflict
			}
			return err
		}
		out = a
		return nil
	})
	return out, err
}
