// Package seed loads the sample catalog and schedule, and provisions the
// staff accounts that registration cannot create.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/logger"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/service"
)

// DirectorStore creates directors and lists them; List tells whether the
// catalog was seeded before.
type DirectorStore interface {
	Create(ctx context.Context, d *model.Director) error
	List(ctx context.Context, req model.PageRequest) ([]model.Director, int, error)
}

// GenreCreator inserts a genre and fills its ID.
type GenreCreator interface {
	Create(ctx context.Context, g *model.Genre) error
}

// MovieCreator inserts a movie together with its genre links.
type MovieCreator interface {
	Create(ctx context.Context, m *model.Movie, genreIDs []string) error
}

// CinemaCreator inserts a cinema.
type CinemaCreator interface {
	Create(ctx context.Context, c *model.Cinema) error
}

// AuditoriumCreator inserts an auditorium of a cinema.
type AuditoriumCreator interface {
	Create(ctx context.Context, a *model.Auditorium) error
}

// FunctionScheduler admits seeded functions through the same pipeline as
// the API, so seed data never overlaps.
type FunctionScheduler interface {
	Schedule(ctx context.Context, in service.FunctionInput) (*model.Function, error)
}

// UserCreator creates an account with a hashed password.
type UserCreator interface {
	Create(ctx context.Context, email, password, role string, cost int) (string, error)
}

// Seeder writes through the same repositories and scheduler as the API, so
// seeded functions pass the admission checks like any other.
type Seeder struct {
	Directors   DirectorStore
	Genres      GenreCreator
	Movies      MovieCreator
	Cinemas     CinemaCreator
	Auditoriums AuditoriumCreator
	Functions   FunctionScheduler
	Users       UserCreator
	Log         *logger.Logger
	Now         func() time.Time
}

// Account is a user provisioned with a fixed role.
type Account struct {
	Email    string
	Password string
	Role     string
}

func str(s string) *string { return &s }

func rating(r float64) *float64 { return &r }

type slot struct {
	movie, auditorium string
	start, end        string // HH:MM, on the seeding day
	priceCents        uint32
	seats             uint32
}

// Catalog loads the sample data. It does nothing if any director exists.
func (s *Seeder) Catalog(ctx context.Context) error {
	_, total, err := s.Directors.List(ctx, model.NewPageRequest(1, 1))
	if err != nil {
		return fmt.Errorf("check existing catalog: %w", err)
	}
	if total > 0 {
		s.Log.Info("catalog already seeded, skipping")
		return nil
	}

	directors := map[string]*model.Director{
		"darabont": {Name: "Frank Darabont", Bio: str("Some bio"), BirthDate: str("1959-01-28"), Nationality: str("USA")},
		"coppola":  {Name: "Francis Ford Coppola", Bio: str("Some bio"), BirthDate: str("1939-04-07")},
		"nolan":    {Name: "Christopher Nolan", Bio: str("Some bio"), BirthDate: str("1970-07-30")},
	}
	for _, key := range []string{"darabont", "coppola", "nolan"} {
		if err := s.Directors.Create(ctx, directors[key]); err != nil {
			return fmt.Errorf("director %s: %w", directors[key].Name, err)
		}
	}

	genres := map[string]*model.Genre{
		"drama":  {Name: "Drama"},
		"crime":  {Name: "Crime"},
		"action": {Name: "Action"},
		"scifi":  {Name: "Science Fiction"},
	}
	for _, key := range []string{"drama", "crime", "action", "scifi"} {
		if err := s.Genres.Create(ctx, genres[key]); err != nil {
			return fmt.Errorf("genre %s: %w", genres[key].Name, err)
		}
	}
	genreIDs := func(keys ...string) []string {
		ids := make([]string, 0, len(keys))
		for _, k := range keys {
			ids = append(ids, genres[k].ID)
		}
		return ids
	}

	movies := []struct {
		key    string
		movie  *model.Movie
		genres []string
	}{
		{"shawshank", &model.Movie{Title: "The Shawshank Redemption", Year: 1994, Rating: rating(9), Duration: 142, Language: "English", DirectorID: directors["darabont"].ID}, genreIDs("drama", "crime")},
		{"godfather", &model.Movie{Title: "The Godfather", Year: 1972, Rating: rating(9), Duration: 175, Language: "English", DirectorID: directors["coppola"].ID}, genreIDs("drama", "crime")},
		{"darkknight", &model.Movie{Title: "The Dark Knight", Year: 2008, Rating: rating(9), Duration: 152, Language: "English", DirectorID: directors["nolan"].ID}, genreIDs("action", "crime", "drama")},
		{"inception", &model.Movie{Title: "Inception", Year: 2010, Rating: rating(8), Duration: 148, Language: "English", DirectorID: directors["nolan"].ID}, genreIDs("action", "scifi")},
	}
	movieIDs := map[string]string{}
	for _, m := range movies {
		if err := s.Movies.Create(ctx, m.movie, m.genres); err != nil {
			return fmt.Errorf("movie %s: %w", m.movie.Title, err)
		}
		movieIDs[m.key] = m.movie.ID
	}

	paradiso := &model.Cinema{Name: "Cinema Paradiso", Location: "N/A", Number: 1}
	cineplex := &model.Cinema{Name: "Cineplex", Location: "N/A", Number: 2}
	for _, c := range []*model.Cinema{paradiso, cineplex} {
		if err := s.Cinemas.Create(ctx, c); err != nil {
			return fmt.Errorf("cinema %s: %w", c.Name, err)
		}
	}

	auditoriums := []struct {
		key string
		aud *model.Auditorium
	}{
		{"a1", &model.Auditorium{Name: "Auditorium 1", CinemaID: paradiso.ID, Capacity: 100}},
		{"a2", &model.Auditorium{Name: "Auditorium 2", CinemaID: paradiso.ID, Capacity: 150}},
		{"a3", &model.Auditorium{Name: "Auditorium 3", CinemaID: cineplex.ID, Capacity: 200}},
	}
	audIDs := map[string]string{}
	for _, a := range auditoriums {
		if err := s.Auditoriums.Create(ctx, a.aud); err != nil {
			return fmt.Errorf("auditorium %s: %w", a.aud.Name, err)
		}
		audIDs[a.key] = a.aud.ID
	}

	slots := []slot{
		{"shawshank", "a1", "18:00", "20:22", 1000, 100},
		{"godfather", "a1", "21:00", "23:55", 1000, 100},
		{"darkknight", "a2", "19:00", "21:32", 1200, 150},
		{"inception", "a3", "20:00", "22:28", 1200, 200},
	}
	day := s.now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	for _, sl := range slots {
		seats := sl.seats
		in := service.FunctionInput{
			MovieID:        movieIDs[sl.movie],
			AuditoriumID:   audIDs[sl.auditorium],
			StartTime:      onDay(day, sl.start),
			EndTime:        onDay(day, sl.end),
			PriceCents:     sl.priceCents,
			AvailableSeats: &seats,
		}
		if _, err := s.Functions.Schedule(ctx, in); err != nil {
			return fmt.Errorf("function %s in %s: %w", sl.movie, sl.auditorium, err)
		}
	}

	s.Log.Info("catalog seeded",
		"directors", len(directors), "genres", len(genres), "movies", len(movies),
		"auditoriums", len(auditoriums), "functions", len(slots))
	return nil
}

// Accounts creates each account unless its email is already registered.
func (s *Seeder) Accounts(ctx context.Context, accounts []Account, cost int) error {
	for _, a := range accounts {
		if a.Email == "" {
			continue
		}
		if !model.ValidRole(a.Role) {
			return fmt.Errorf("account %s: unknown role %q", a.Email, a.Role)
		}
		_, err := s.Users.Create(ctx, a.Email, a.Password, a.Role, cost)
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			s.Log.Info("account exists, skipping", "email", a.Email)
		case err != nil:
			return fmt.Errorf("account %s: %w", a.Email, err)
		default:
			s.Log.Info("account created", "email", a.Email, "role", a.Role)
		}
	}
	return nil
}

func (s *Seeder) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// onDay places an "HH:MM" clock time on day, which must be a UTC midnight.
func onDay(day time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(fmt.Sprintf("bad seed time %q", hhmm))
	}
	return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}
