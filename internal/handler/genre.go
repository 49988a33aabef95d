package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// GenreStore is the genre storage the genre endpoints need.
type GenreStore interface {
	Create(ctx context.Context, g *model.Genre) error
	GetByID(ctx context.Context, id string) (*model.Genre, error)
	GetByName(ctx context.Context, name string) (*model.Genre, error)
	List(ctx context.Context, req model.PageRequest) ([]model.Genre, int, error)
	Update(ctx context.Context, g *model.Genre) error
	Delete(ctx context.Context, id string) (*model.Genre, error)
}

// GenreHandler serves /genres.
type GenreHandler struct {
	Genres GenreStore
}

// NewGenreHandler returns a handler over s.
func NewGenreHandler(s GenreStore) *GenreHandler {
	return &GenreHandler{Genres: s}
}

type createGenreReq struct {
	Name        string  `json:"name" validate:"required,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type updateGenreReq struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// Create serves POST /genres. A taken name is a 409.
func (h *GenreHandler) Create(c echo.Context) error {
	var req createGenreReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	g := model.Genre{Name: strings.TrimSpace(req.Name), Description: req.Description}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Genres.Create(ctx, &g); err != nil {
		return respondErr(c, err, "create genre failed")
	}
	return c.JSON(http.StatusCreated, g)
}

// Get serves GET /genres/:id.
func (h *GenreHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	g, err := h.Genres.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load genre failed")
	}
	return c.JSON(http.StatusOK, g)
}

// GetByName matches the genre name exactly (the column collation decides
// case sensitivity).
func (h *GenreHandler) GetByName(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	g, err := h.Genres.GetByName(ctx, strings.TrimSpace(c.Param("name")))
	if err != nil {
		return respondErr(c, err, "load genre failed")
	}
	return c.JSON(http.StatusOK, g)
}

// List serves GET /genres.
func (h *GenreHandler) List(c echo.Context) error {
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, total, err := h.Genres.List(ctx, req)
	if err != nil {
		return respondErr(c, err, "list genres failed")
	}
	return respondPage(c, items, total, req)
}

// Update serves PUT /genres/:id.
func (h *GenreHandler) Update(c echo.Context) error {
	var req updateGenreReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	g, err := h.Genres.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load genre failed")
	}
	if req.Name != nil {
		g.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		g.Description = req.Description
	}
	if err := h.Genres.Update(ctx, g); err != nil {
		return respondErr(c, err, "update genre failed")
	}
	return c.JSON(http.StatusOK, g)
}

// Delete serves DELETE /genres/:id and returns the removed genre.
func (h *GenreHandler) Delete(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	g, err := h.Genres.Delete(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "delete genre failed")
	}
	return c.JSON(http.StatusOK, g)
}
