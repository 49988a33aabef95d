package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/model"
)

// CinemaStore is the cinema storage the cinema endpoints need.
type CinemaStore interface {
	Create(ctx context.Context, c *model.Cinema) error
	GetByID(ctx context.Context, id string) (*model.Cinema, error)
	List(ctx context.Context, req model.PageRequest) ([]model.Cinema, int, error)
	Update(ctx context.Context, c *model.Cinema) error
	Delete(ctx context.Context, id string) (*model.Cinema, error)
}

// AuditoriumLister lists the auditoriums of one cinema.
type AuditoriumLister interface {
	ListByCinema(ctx context.Context, cinemaID string) ([]model.Auditorium, error)
}

// CinemaHandler serves /cinemas. Writes are ADMIN only.
type CinemaHandler struct {
	Cinemas     CinemaStore
	Auditoriums AuditoriumLister
}

// NewCinemaHandler returns a handler over the given stores.
func NewCinemaHandler(cinemas CinemaStore, auditoriums AuditoriumLister) *CinemaHandler {
	return &CinemaHandler{Cinemas: cinemas, Auditoriums: auditoriums}
}

type createCinemaReq struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Location string `json:"location" validate:"required,notblank,max=255"`
	Number   int    `json:"number" validate:"required,gt=0"`
}

type updateCinemaReq struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=255"`
	Location *string `json:"location" validate:"omitempty,notblank,max=255"`
	Number   *int    `json:"number" validate:"omitempty,gt=0"`
}

// Create serves POST /cinemas (ADMIN only).
func (h *CinemaHandler) Create(c echo.Context) error {
	var req createCinemaReq
	if ok, err := bind(c, &req); !ok {
		return err
	}
	cin := model.Cinema{
		Name:     strings.TrimSpace(req.Name),
		Location: strings.TrimSpace(req.Location),
		Number:   req.Number,
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	if err := h.Cinemas.Create(ctx, &cin); err != nil {
		return respondErr(c, err, "create cinema failed")
	}
	return c.JSON(http.StatusCreated, cin)
}

// Get serves GET /cinemas/:id.
func (h *CinemaHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	cin, err := h.Cinemas.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load cinema failed")
	}
	return c.JSON(http.StatusOK, cin)
}

// List serves GET /cinemas.
func (h *CinemaHandler) List(c echo.Context) error {
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	items, total, err := h.Cinemas.List(ctx, req)
	if err != nil {
		return respondErr(c, err, "list cinemas failed")
	}
	return respondPage(c, items, total, req)
}

// ListAuditoriums serves GET /cinemas/:id/auditoriums.
func (h *CinemaHandler) ListAuditoriums(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	cin, err := h.Cinemas.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load cinema failed")
	}
	auds, err := h.Auditoriums.ListByCinema(ctx, cin.ID)
	if err != nil {
		return respondErr(c, err, "list auditoriums failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"items": auds})
}

// Update serves PUT /cinemas/:id.
func (h *CinemaHandler) Update(c echo.Context) error {
	var req updateCinemaReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	cin, err := h.Cinemas.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load cinema failed")
	}
	if req.Name != nil {
		cin.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		cin.Location = strings.TrimSpace(*req.Location)
	}
	if req.Number != nil {
		cin.Number = *req.Number
	}
	if err := h.Cinemas.Update(ctx, cin); err != nil {
		return respondErr(c, err, "update cinema failed")
	}
	return c.JSON(http.StatusOK, cin)
}

// Delete serves DELETE /cinemas/:id. A cinema with auditoriums is a 409.
func (h *CinemaHandler) Delete(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	cin, err := h.Cinemas.Delete(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "delete cinema failed")
	}
	return c.JSON(http.StatusOK, cin)
}
