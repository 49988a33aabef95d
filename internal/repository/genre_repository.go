package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

const genreColumns = `id, name, description, created_at, updated_at`

// GenreRepo persists genres.
type GenreRepo struct {
	db *sqlx.DB
}

// NewGenreRepo returns a repository over the genres table.
func NewGenreRepo(db *sqlx.DB) *GenreRepo {
	return &GenreRepo{db: db}
}

// Create inserts g with a fresh id and reloads it. A taken name is
// ErrNameTaken.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	g.ID = uuid.NewString()
	const q = `INSERT INTO genres (id, name, description) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, g.ID, g.Name, g.Description); err != nil {
		if isDuplicate(err) {
			return ErrNameTaken
		}
		return err
	}
	fresh, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = *fresh
	return nil
}

// GetByID returns ErrGenreNotFound when no row matches.
func (r *GenreRepo) GetByID(ctx context.Context, id string) (*model.Genre, error) {
	return getOne[model.Genre](ctx, r.db, ErrGenreNotFound,
		`SELECT `+genreColumns+` FROM genres WHERE id = ?`, id)
}

// GetByName matches the name exactly (collation decides case sensitivity).
func (r *GenreRepo) GetByName(ctx context.Context, name string) (*model.Genre, error) {
	return getOne[model.Genre](ctx, r.db, ErrGenreNotFound,
		`SELECT `+genreColumns+` FROM genres WHERE name = ? LIMIT 1`, name)
}

// List returns one page of genres ordered by name plus the total count.
func (r *GenreRepo) List(ctx context.Context, req model.PageRequest) ([]model.Genre, int, error) {
	return listPage[model.Genre](ctx, r.db,
		`SELECT COUNT(*) FROM genres`,
		`SELECT `+genreColumns+` FROM genres ORDER BY name LIMIT ? OFFSET ?`,
		req)
}

// Update writes name and description and reloads the row.
func (r *GenreRepo) Update(ctx context.Context, g *model.Genre) error {
	const q = `UPDATE genres SET name = ?, description = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, g.Name, g.Description, g.ID); err != nil {
		if isDuplicate(err) {
			return ErrNameTaken
		}
		return err
	}
	fresh, err := r.GetByID(ctx, g.ID)
	if err != nil {
		return err
	}
	*g = *fresh
	return nil
}

// Delete removes the genre; links in movie_genres cascade.
func (r *GenreRepo) Delete(ctx context.Context, id string) (*model.Genre, error) {
	var out *model.Genre
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		g, err := getOne[model.Genre](ctx, tx, ErrGenreNotFound,
			`SELECT `+genreColumns+` FROM genres WHERE id = ? FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id); err != nil {
			return err
		}
		out = g
		return nil
	})
	return out, err
}
