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

// AuditoriumStore is the auditorium storage the endpoints need.
type AuditoriumStore interface {
	Create(ctx context.Context, a *model.Auditorium) error
	GetByID(ctx context.Context, id string) (*model.Auditorium, error)
	List(ctx context.Context, req model.PageRequest) ([]model.Auditorium, int, error)
	Update(ctx context.Context, a *model.Auditorium) error
	Delete(ctx context.Context, id string) (*model.Auditorium, error)
}

// AuditoriumHandler serves /auditoriums.
type AuditoriumHandler struct {
	Auditoriums AuditoriumStore
}

// NewAuditoriumHandler returns a handler over s.
func NewAuditoriumHandler(s AuditoriumStore) *AuditoriumHandler {
	return &AuditoriumHandler{Auditoriums: s}
}

type createAuditoriumReq struct {
	CinemaID string `json:"cinema_id" validate:"required,notblank"`
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Capacity uint32 `json:"capacity" validate:"required,gt=0"`
}

type updateAuditoriumReq struct {
	CinemaID *string `json:"cinema_id" validate:"omitempty,notblank"`
	Name     *string `json:"name" validate:"omitempty,notblank,max=255"`
	Capacity *uint32 `json:"capacity" validate:"omitempty,gt=0"`
}

func auditoriumWriteErr(c echo.Context, err error, fallback string) error {
	if errors.Is(err, repository.ErrCinemaNotFound) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cinema does not exist"})
	}
	return respondErr(c, err, fallback)
}

// Create serves POST /auditoriums. An unknown cinema answers 404.
func (h *AuditoriumHandler) Create(c echo.Context) error {
	var req createAuditoriumReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	a := model.Auditorium{
		CinemaID: strings.TrimSpace(req.CinemaID),
		Name:     strings.TrimSpace(req.Name),
		Capacity: req.Capacity,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Auditoriums.Create(ctx, &a); err != nil {
		return auditoriumWriteErr(c, err, "create auditorium failed")
	}
	return c.JSON(http.StatusCreated, a)
}

// Get serves GET /auditoriums/:id.
func (h *AuditoriumHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	a, err := h.Auditoriums.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load auditorium failed")
	}
	return c.JSON(http.StatusOK, a)
}

// List serves GET /auditoriums.
func (h *AuditoriumHandler) List(c echo.Context) error {
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, total, err := h.Auditoriums.List(ctx, req)
	if err != nil {
		return respondErr(c, err, "list auditoriums failed")
	}
	return respondPage(c, items, total, req)
}

// Update serves PUT /auditoriums/:id; absent fields keep their value.
func (h *AuditoriumHandler) Update(c echo.Context) error {
	var req updateAuditoriumReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	a, err := h.Auditoriums.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load auditorium failed")
	}
	if req.CinemaID != nil {
		a.CinemaID = strings.TrimSpace(*req.CinemaID)
	}
	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		a.Capacity = *req.Capacity
	}
	if err := h.Auditoriums.Update(ctx, a); err != nil {
		return auditoriumWriteErr(c, err, "update auditorium failed")
	}
	return c.JSON(http.StatusOK, a)
}

// Delete serves DELETE /auditoriums/:id. An auditorium with functions is a
// 409.
func (h *AuditoriumHandler) Delete(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	a, err := h.Auditoriums.Delete(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "delete auditorium failed")
	}
	return c.JSON(http.StatusOK, a)
}
