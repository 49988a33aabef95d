package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
)

// MovieStore is the movie storage the movie endpoints need.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie, genreIDs []string) error
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	GetByTitle(ctx context.Context, title string) (*model.Movie, error)
	List(ctx context.Context, req model.PageRequest) ([]model.Movie, int, error)
	SearchByTitle(ctx context.Context, term string, req model.PageRequest) ([]model.Movie, int, error)
	ListByGenre(ctx context.Context, genreID string, req model.PageRequest) ([]model.Movie, int, error)
	Update(ctx context.Context, m *model.Movie, genreIDs []string) error
	Delete(ctx context.Context, id string) (*model.Movie, error)
}

// GenreFinder resolves the genre of /genres/:id/movies.
type GenreFinder interface {
	GetByID(ctx context.Context, id string) (*model.Genre, error)
}

// MovieHandler serves /movies and /genres/:id/movies.
type MovieHandler struct {
	Movies MovieStore
	Genres GenreFinder
}

// NewMovieHandler returns a handler over the given stores.
func NewMovieHandler(movies MovieStore, genres GenreFinder) *MovieHandler {
	return &MovieHandler{Movies: movies, Genres: genres}
}

type createMovieReq struct {
	Title       string   `json:"title" validate:"required,notblank,max=255"`
	Description string   `json:"description" validate:"max=4000"`
	Year        int      `json:"year" validate:"required,gte=1888,lte=2100"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Language    string   `json:"language" validate:"required,notblank,max=64"`
	Duration    int      `json:"duration" validate:"required,gt=0,lte=1000"`
	Trailer     string   `json:"trailer" validate:"omitempty,url"`
	Image       string   `json:"image" validate:"omitempty,url"`
	DirectorID  string   `json:"director_id" validate:"required,notblank"`
	GenreIDs    []string `json:"genre_ids" validate:"dive,notblank"`
}

type updateMovieReq struct {
	Title       *string  `json:"title" validate:"omitempty,notblank,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=4000"`
	Year        *int     `json:"year" validate:"omitempty,gte=1888,lte=2100"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Language    *string  `json:"language" validate:"omitempty,notblank,max=64"`
	Duration    *int     `json:"duration" validate:"omitempty,gt=0,lte=1000"`
	Trailer     *string  `json:"trailer" validate:"omitempty,url"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	DirectorID  *string  `json:"director_id" validate:"omitempty,notblank"`
	GenreIDs    []string `json:"genre_ids" validate:"omitempty,dive,notblank"`
}

// movieWriteErr answers the errors specific to movie writes.
func movieWriteErr(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrDirectorNotFound):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "director not found"})
	case errors.Is(err, repository.ErrGenreNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "one or more genres not found"})
	}
	return respondErr(c, err, fallback)
}

// Create serves POST /movies. An unknown director is a 400, unknown genre
// ids a 404.
func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	m := model.Movie{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Year:        req.Year,
		Rating:      req.Rating,
		Language:    strings.TrimSpace(req.Language),
		Duration:    req.Duration,
		Trailer:     req.Trailer,
		Image:       req.Image,
		DirectorID:  strings.TrimSpace(req.DirectorID),
	}
	genreIDs := req.GenreIDs
	if genreIDs == nil {
		genreIDs = []string{}
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Movies.Create(ctx, &m, genreIDs); err != nil {
		return movieWriteErr(c, err, "create movie failed")
	}
	return c.JSON(http.StatusCreated, m)
}

// Get serves GET /movies/:id.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load movie failed")
	}
	return c.JSON(http.StatusOK, m)
}

// GetByTitle serves GET /movies/by-title/:title (exact match).
func (h *MovieHandler) GetByTitle(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	m, err := h.Movies.GetByTitle(ctx, strings.TrimSpace(c.Param("title")))
	if err != nil {
		return respondErr(c, err, "load movie failed")
	}
	return c.JSON(http.StatusOK, m)
}

// List serves GET /movies.
func (h *MovieHandler) List(c echo.Context) error {
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, total, err := h.Movies.List(ctx, req)
	if err != nil {
		return respondErr(c, err, "list movies failed")
	}
	return respondPage(c, items, total, req)
}

// Search matches ?title= as a case-insensitive substring.
func (h *MovieHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("title"))
	if term == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title query parameter required"})
	}
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, total, err := h.Movies.SearchByTitle(ctx, term, req)
	if err != nil {
		return respondErr(c, err, "search movies failed")
	}
	return respondPage(c, items, total, req)
}

// ListByGenre serves GET /genres/:id/movies.
func (h *MovieHandler) ListByGenre(c echo.Context) error {
	genreID := c.Param("id")
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	if _, err := h.Genres.GetByID(ctx, genreID); err != nil {
		return respondErr(c, err, "load genre failed")
	}
	items, total, err := h.Movies.ListByGenre(ctx, genreID, req)
	if err != nil {
		return respondErr(c, err, "list movies failed")
	}
	return respondPage(c, items, total, req)
}

// Update changes only the fields present in the body. genre_ids, when
// present, replaces the whole genre list.
func (h *MovieHandler) Update(c echo.Context) error {
	var req updateMovieReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load movie failed")
	}
	if req.Title != nil {
		m.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Year != nil {
		m.Year = *req.Year
	}
	if req.Rating != nil {
		m.Rating = req.Rating
	}
	if req.Language != nil {
		m.Language = strings.TrimSpace(*req.Language)
	}
	if req.Duration != nil {
		m.Duration = *req.Duration
	}
	if req.Trailer != nil {
		m.Trailer = *req.Trailer
	}
	if req.Image != nil {
		m.Image = *req.Image
	}
	if req.DirectorID != nil {
		m.DirectorID = strings.TrimSpace(*req.DirectorID)
	}
	if err := h.Movies.Update(ctx, m, req.GenreIDs); err != nil {
		return movieWriteErr(c, err, "update movie failed")
	}
	return c.JSON(http.StatusOK, m)
}

// Delete serves DELETE /movies/:id. A movie with functions is a 409.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	m, err := h.Movies.Delete(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "delete movie failed")
	}
	return c.JSON(http.StatusOK, m)
}
