package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

const directorColumns = `id, name, bio, birth_date, nationality, image, created_at, updated_at`

// DirectorRepo persists directors.
type DirectorRepo struct {
	db *sqlx.DB
}

// NewDirectorRepo returns a repository over the directors table.
func NewDirectorRepo(db *sqlx.DB) *DirectorRepo {
	return &DirectorRepo{db: db}
}

// Create assigns a new id, inserts the director and reloads it so the
// timestamps are populated.
func (r *DirectorRepo) Create(ctx context.Context, d *model.Director) error {
	d.ID = uuid.NewString()
	const q = `INSERT INTO directors (id, name, bio, birth_date, nationality, image) VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, d.ID, d.Name, d.Bio, d.BirthDate, d.Nationality, d.Image); err != nil {
		if isDuplicate(err) {
			return ErrNameTaken
		}
		return err
	}
	fresh, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *fresh
	return nil
}

// GetByID returns ErrDirectorNotFound when no row matches.
func (r *DirectorRepo) GetByID(ctx context.Context, id string) (*model.Director, error) {
	return getOne[model.Director](ctx, r.db, ErrDirectorNotFound,
		`SELECT `+directorColumns+` FROM directors WHERE id = ?`, id)
}

// List returns one page of directors ordered by name plus the total count.
func (r *DirectorRepo) List(ctx context.Context, req model.PageRequest) ([]model.Director, int, error) {
	return listPage[model.Director](ctx, r.db,
		`SELECT COUNT(*) FROM directors`,
		`SELECT `+directorColumns+` FROM directors ORDER BY name LIMIT ? OFFSET ?`,
		req)
}

// Update writes every mutable column of d and reloads it.
func (r *DirectorRepo) Update(ctx context.Context, d *model.Director) error {
	const q = `UPDATE directors SET name = ?, bio = ?, birth_date = ?, nationality = ?, image = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, d.Name, d.Bio, d.BirthDate, d.Nationality, d.Image, d.ID); err != nil {
		if isDuplicate(err) {
			return ErrNameTaken
		}
		return err
	}
	fresh, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *fresh
	return nil
}

// Delete removes the director and returns the deleted row. Directors that
// still have movies cannot be removed (ErrConflict).
func (r *DirectorRepo) Delete(ctx context.Context, id string) (*model.Director, error) {
	var out *model.Director
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		d, err := getOne[model.Director](ctx, tx, ErrDirectorNotFound,
			`SELECT `+directorColumns+` FROM directors WHERE id = ? FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM directors WHERE id = ?`, id); err != nil {
			if isReferenced(err) {
				return ErrConflict
			}
			return err
		}
		out = d
		return nil
	})
	return out, err
}
