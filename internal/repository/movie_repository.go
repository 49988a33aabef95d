package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

const movieColumns = `id, title, description, year, rating, language, duration, trailer, image, director_id, created_at, updated_at`

// MovieRepo persists movies together with their genre links.
type MovieRepo struct {
	db *sqlx.DB
}

// NewMovieRepo returns a repository over movies and movie_genres.
func NewMovieRepo(db *sqlx.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Create inserts the movie and links it to genreIDs in one transaction.
// Every genre must exist, otherwise ErrGenreNotFound is returned and nothing
// is written.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie, genreIDs []string) error {
	m.ID = uuid.NewString()
	genreIDs = uniqueIDs(genreIDs)
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := ensureGenres(ctx, tx, genreIDs); err != nil {
			return err
		}
		const q = `INSERT INTO movies (id, title, description, year, rating, language, duration, trailer, image, director_id)
		           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, m.ID, m.Title, m.Description, m.Year, m.Rating,
			m.Language, m.Duration, m.Trailer, m.Image, m.DirectorID); err != nil {
			if isMissingParent(err) {
				return ErrDirectorNotFound
			}
			return err
		}
		return linkGenres(ctx, tx, m.ID, genreIDs)
	})
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *fresh
	return nil
}

// GetByID loads a movie and its genres.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	m, err := getOne[model.Movie](ctx, r.db, ErrMovieNotFound,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	movies := []model.Movie{*m}
	if err := r.attachGenres(ctx, movies); err != nil {
		return nil, err
	}
	return &movies[0], nil
}

// GetByTitle returns the first movie whose title matches exactly.
func (r *MovieRepo) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	m, err := getOne[model.Movie](ctx, r.db, ErrMovieNotFound,
		`SELECT `+movieColumns+` FROM movies WHERE title = ? ORDER BY year DESC LIMIT 1`, title)
	if err != nil {
		return nil, err
	}
	movies := []model.Movie{*m}
	if err := r.attachGenres(ctx, movies); err != nil {
		return nil, err
	}
	return &movies[0], nil
}

// List returns one page of movies with their genres attached.
func (r *MovieRepo) List(ctx context.Context, req model.PageRequest) ([]model.Movie, int, error) {
	items, total, err := listPage[model.Movie](ctx, r.db,
		`SELECT COUNT(*) FROM movies`,
		`SELECT `+movieColumns+` FROM movies ORDER BY title LIMIT ? OFFSET ?`,
		req)
	if err != nil {
		return nil, 0, err
	}
	return items, total, r.attachGenres(ctx, items)
}

// SearchByTitle matches title substrings case-insensitively.
func (r *MovieRepo) SearchByTitle(ctx context.Context, term string, req model.PageRequest) ([]model.Movie, int, error) {
	like := "%" + escapeLike(strings.ToLower(term)) + "%"
	items, total, err := listPage[model.Movie](ctx, r.db,
		`SELECT COUNT(*) FROM movies WHERE LOWER(title) LIKE ?`,
		`SELECT `+movieColumns+` FROM movies WHERE LOWER(title) LIKE ? ORDER BY title LIMIT ? OFFSET ?`,
		req, like)
	if err != nil {
		return nil, 0, err
	}
	return items, total, r.attachGenres(ctx, items)
}

// ListByGenre returns the movies linked to genreID.
func (r *MovieRepo) ListByGenre(ctx context.Context, genreID string, req model.PageRequest) ([]model.Movie, int, error) {
	items, total, err := listPage[model.Movie](ctx, r.db,
		`SELECT COUNT(*) FROM movie_genres WHERE genre_id = ?`,
		`SELECT m.id, m.title, m.description, m.year, m.rating, m.language, m.duration, m.trailer, m.image, m.director_id, m.created_at, m.updated_at
		   FROM movies m
		   JOIN movie_genres mg ON mg.movie_id = m.id
		  WHERE mg.genre_id = ?
		  ORDER BY m.title LIMIT ? OFFSET ?`,
		req, genreID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, r.attachGenres(ctx, items)
}

// Update writes the movie columns. When genreIDs is non-nil the genre links
// are replaced with exactly that set.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie, genreIDs []string) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const q = `UPDATE movies
		              SET title = ?, description = ?, year = ?, rating = ?, language = ?, duration = ?,
		                  trailer = ?, image = ?, director_id = ?
		            WHERE id = ?`
		if _, err := tx.ExecContext(ctx, q, m.Title, m.Description, m.Year, m.Rating, m.Language,
			m.Duration, m.Trailer, m.Image, m.DirectorID, m.ID); err != nil {
			if isMissingParent(err) {
				return ErrDirectorNotFound
			}
			return err
		}
		if genreIDs == nil {
			return nil
		}
		ids := uniqueIDs(genreIDs)
		if err := ensureGenres(ctx, tx, ids); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, m.ID); err != nil {
			return err
		}
		return linkGenres(ctx, tx, m.ID, ids)
	})
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *fresh
	return nil
}

// Delete removes a movie and returns it as it was. Movies with scheduled
// functions cannot be removed (ErrConflict).
func (r *MovieRepo) Delete(ctx context.Context, id string) (*model.Movie, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		if isReferenced(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrMovieNotFound
	}
	return m, nil
}

type movieGenreRow struct {
	MovieID string `db:"movie_id"`
	model.Genre
}

// attachGenres fills Genres for every movie with a single query.
func (r *MovieRepo) attachGenres(ctx context.Context, movies []model.Movie) error {
	if len(movies) == 0 {
		return nil
	}
	ids := make([]string, len(movies))
	for i := range movies {
		ids[i] = movies[i].ID
		movies[i].Genres = []model.Genre{}
	}
	q, args, err := sqlx.In(`SELECT mg.movie_id, g.id, g.name, g.description, g.created_at, g.updated_at
	                           FROM movie_genres mg
	                           JOIN genres g ON g.id = mg.genre_id
	                          WHERE mg.movie_id IN (?)
	                          ORDER BY g.name`, ids)
	if err != nil {
		return err
	}
	var rows []movieGenreRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return err
	}
	byMovie := make(map[string][]model.Genre, len(movies))
	for _, row := range rows {
		byMovie[row.MovieID] = append(byMovie[row.MovieID], row.Genre)
	}
	for i := range movies {
		if gs, ok := byMovie[movies[i].ID]; ok {
			movies[i].Genres = gs
		}
	}
	return nil
}

func ensureGenres(ctx context.Context, tx *sqlx.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`SELECT COUNT(*) FROM genres WHERE id IN (?)`, ids)
	if err != nil {
		return err
	}
	var n int
	if err := tx.GetContext(ctx, &n, tx.Rebind(q), args...); err != nil {
		return err
	}
	if n != len(ids) {
		return ErrGenreNotFound
	}
	return nil
}

func linkGenres(ctx context.Context, tx *sqlx.Tx, movieID string, ids []string) error {
	for _, gid := range ids {
		if _, err := tx.ExecContext(ctx, `INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?)`, movieID, gid); err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
