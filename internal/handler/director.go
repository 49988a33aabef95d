package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// DirectorStore is the director storage the director endpoints need.
type DirectorStore interface {
	Create(ctx context.Context, d *model.Director) error
	GetByID(ctx context.Context, id string) (*model.Director, error)
	List(ctx context.Context, req model.PageRequest) ([]model.Director, int, error)
	Update(ctx context.Context, d *model.Director) error
	Delete(ctx context.Context, id string) (*model.Director, error)
}

// DirectorHandler serves /directors.
type DirectorHandler struct {
	Directors DirectorStore
}

// NewDirectorHandler returns a handler over s.
func NewDirectorHandler(s DirectorStore) *DirectorHandler {
	return &DirectorHandler{Directors: s}
}

type createDirectorReq struct {
	Name        string  `json:"name" validate:"required,notblank,max=255"`
	Bio         *string `json:"bio" validate:"omitempty,max=4000"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Nationality *string `json:"nationality" validate:"omitempty,notblank,max=100"`
	Image       *string `json:"image" validate:"omitempty,url"`
}

type updateDirectorReq struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=255"`
	Bio         *string `json:"bio" validate:"omitempty,max=4000"`
	BirthDate   *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Nationality *string `json:"nationality" validate:"omitempty,notblank,max=100"`
	Image       *string `json:"image" validate:"omitempty,url"`
}

// Create serves POST /directors. birth_date must be YYYY-MM-DD.
func (h *DirectorHandler) Create(c echo.Context) error {
	var req createDirectorReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	d := model.Director{
		Name:        strings.TrimSpace(req.Name),
		Bio:         req.Bio,
		BirthDate:   req.BirthDate,
		Nationality: req.Nationality,
		Image:       req.Image,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Directors.Create(ctx, &d); err != nil {
		return respondErr(c, err, "create director failed")
	}
	return c.JSON(http.StatusCreated, d)
}

// Get serves GET /directors/:id.
func (h *DirectorHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	d, err := h.Directors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load director failed")
	}
	return c.JSON(http.StatusOK, d)
}

// List serves GET /directors.
func (h *DirectorHandler) List(c echo.Context) error {
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, total, err := h.Directors.List(ctx, req)
	if err != nil {
		return respondErr(c, err, "list directors failed")
	}
	return respondPage(c, items, total, req)
}

// Update changes only the fields present in the body.
func (h *DirectorHandler) Update(c echo.Context) error {
	var req updateDirectorReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	d, err := h.Directors.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load director failed")
	}
	if req.Name != nil {
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		d.Bio = req.Bio
	}
	if req.BirthDate != nil {
		d.BirthDate = req.BirthDate
	}
	if req.Nationality != nil {
		d.Nationality = req.Nationality
	}
	if req.Image != nil {
		d.Image = req.Image
	}
	if err := h.Directors.Update(ctx, d); err != nil {
		return respondErr(c, err, "update director failed")
	}
	return c.JSON(http.StatusOK, d)
}

// Delete serves DELETE /directors/:id. A director with movies is a 409.
func (h *DirectorHandler) Delete(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	d, err := h.Directors.Delete(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "delete director failed")
	}
	return c.JSON(http.StatusOK, d)
}
