package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

var directorCols = []string{"id", "name", "bio", "birth_date", "nationality", "image", "created_at", "updated_at"}

func TestDirectorCreateDuplicateName(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewDirectorRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO directors (id, name, bio, birth_date, nationality, image)")).
		WithArgs(sqlmock.AnyArg(), "Christopher Nolan", nil, nil, nil, nil).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &model.Director{Name: "Christopher Nolan"})
	assert.ErrorIs(t, err, ErrNameTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectorCreateReloads(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewDirectorRepo(db)
	now := time.Now().UTC()
	nat := "British"

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO directors")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM directors WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows(directorCols).
			AddRow("d1", "Christopher Nolan", nil, "1970-07-30", nat, nil, now, now))

	d := &model.Director{Name: "Christopher Nolan", Nationality: &nat}
	require.NoError(t, repo.Create(context.Background(), d))
	assert.Equal(t, "d1", d.ID)
	require.NotNil(t, d.BirthDate)
	assert.Equal(t, "1970-07-30", *d.BirthDate)
	assert.Nil(t, d.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirectorDeleteWithMovies(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewDirectorRepo(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM directors WHERE id = ? FOR UPDATE")).WithArgs("d1").
		WillReturnRows(sqlmock.NewRows(directorCols).AddRow("d1", "Nolan", nil, nil, nil, nil, now, now))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM directors WHERE id = ?")).WithArgs("d1").
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})
	mock.ExpectRollback()

	d, err := repo.Delete(context.Background(), "d1")
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreListEmptySkipsDataQuery(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewGenreRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM genres")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	items, total, err := repo.List(context.Background(), model.NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieCreateUnknownGenre(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewMovieRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM genres WHERE id IN (?, ?)")).
		WithArgs("g1", "g2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Movie{Title: "Inception", DirectorID: "d1"}, []string{"g1", "g2", "g1"})
	assert.ErrorIs(t, err, ErrGenreNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieGetByIDAttachesGenres(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewMovieRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM movies WHERE id = ?")).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "year", "rating", "language", "duration", "trailer", "image", "director_id", "created_at", "updated_at"}).
			AddRow("m1", "Inception", "Dreams", 2010, 8.8, "English", 148, "t", "i", "d1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE mg.movie_id IN (?)")).WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"movie_id", "id", "name", "description", "created_at", "updated_at"}).
			AddRow("m1", "g1", "Action", nil, now, now).
			AddRow("m1", "g2", "Sci-Fi", nil, now, now))

	m, err := repo.GetByID(context.Background(), "m1")
	require.NoError(t, err)
	require.Len(t, m.Genres, 2)
	assert.Equal(t, "Action", m.Genres[0].Name)
	require.NotNil(t, m.Rating)
	assert.InDelta(t, 8.8, *m.Rating, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditoriumCreateUnknownCinema(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewAuditoriumRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO auditoriums (id, cinema_id, name, capacity)")).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "a foreign key constraint fails"})

	err := repo.Create(context.Background(), &model.Auditorium{CinemaID: "nope", Name: "Sala 1", Capacity: 100})
	assert.ErrorIs(t, err, ErrCinemaNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenValidateRefreshRevoked(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewTokenRepo(db)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM refresh_tokens WHERE token_hash=?")).WithArgs("h").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "revoked_at", "created_at"}).
			AddRow(1, "u1", "h", now.Add(time.Hour), now, now))

	uid, err := repo.ValidateRefresh(context.Background(), "h")
	assert.Empty(t, uid)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_off\\`, escapeLike(`100%_off\`))
}
