package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-scheduler/internal/lock"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
	"github.com/iliyamo/cinema-scheduler/internal/service"
)

// FunctionScheduler is the admission pipeline behind the function endpoints.
// *service.Scheduler implements it.
type FunctionScheduler interface {
	Schedule(ctx context.Context, in service.FunctionInput) (*model.Function, error)
	Reschedule(ctx context.Context, id string, patch service.FunctionPatch) (*model.Function, error)
	Cancel(ctx context.Context, id string) (*model.Function, error)
	Check(ctx context.Context, auditoriumID string, iv schedule.TimeInterval) (service.CheckResult, error)
	Get(ctx context.Context, id string) (*model.Function, error)
	List(ctx context.Context, req model.PageRequest) (model.Page[model.Function], error)
	ListActive(ctx context.Context) ([]model.Function, error)
	ListByAuditorium(ctx context.Context, auditoriumID string) ([]model.Function, error)
}

// FunctionHandler serves the screening endpoints. Writes go through the
// scheduler so every create or update is admitted against its auditorium.
type FunctionHandler struct {
	Scheduler FunctionScheduler
}

// NewFunctionHandler returns a handler backed by s.
func NewFunctionHandler(s FunctionScheduler) *FunctionHandler {
	return &FunctionHandler{Scheduler: s}
}

// timestamp accepts RFC 3339 or "YYYY-MM-DD HH:MM:SS". The second form has
// no zone and is read as UTC.
type timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			t.Time = v.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t *timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

type createFunctionReq struct {
	MovieID        string     `json:"movie_id" validate:"required,notblank"`
	AuditoriumID   string     `json:"auditorium_id" validate:"required,notblank"`
	StartTime      *timestamp `json:"start_time" validate:"required" swaggertype:"string" format:"date-time"`
	EndTime        *timestamp `json:"end_time" validate:"required" swaggertype:"string" format:"date-time"`
	PriceCents     uint32     `json:"price_cents"`
	AvailableSeats *uint32    `json:"available_seats"`
}

type updateFunctionReq struct {
	MovieID        *string    `json:"movie_id" validate:"omitempty,notblank"`
	AuditoriumID   *string    `json:"auditorium_id" validate:"omitempty,notblank"`
	StartTime      *timestamp `json:"start_time" swaggertype:"string" format:"date-time"`
	EndTime        *timestamp `json:"end_time" swaggertype:"string" format:"date-time"`
	PriceCents     *uint32    `json:"price_cents"`
	AvailableSeats *uint32    `json:"available_seats"`
}

type checkFunctionReq struct {
	AuditoriumID string     `json:"auditorium_id" validate:"required,notblank"`
	StartTime    *timestamp `json:"start_time" validate:"required" swaggertype:"string" format:"date-time"`
	EndTime      *timestamp `json:"end_time" validate:"required" swaggertype:"string" format:"date-time"`
}

// errorResp is the body of every error answer.
type errorResp struct {
	Error string `json:"error"`
}

// conflictResp is the 409 body of an occupied auditorium.
type conflictResp struct {
	Error     string             `json:"error"`
	Conflicts []schedule.Booking `json:"conflicts"`
}

type functionList struct {
	Items []model.Function `json:"items"`
}

// scheduleErr maps admission failures to responses. An occupied auditorium
// is a 409 that lists the conflicting functions.
func scheduleErr(c echo.Context, err error, fallback string) error {
	var occ *service.VenueOccupiedError
	switch {
	case errors.As(err, &occ):
		return c.JSON(http.StatusConflict, conflictResp{Error: service.ErrVenueOccupied.Error(), Conflicts: occ.Conflicts})
	case errors.Is(err, repository.ErrDuplicateFunction):
		return c.JSON(http.StatusConflict, errorResp{Error: service.ErrVenueOccupied.Error()})
	case errors.Is(err, schedule.ErrInvalidInterval),
		errors.Is(err, service.ErrPastInterval),
		errors.Is(err, service.ErrSeatsExceedCapacity):
		return c.JSON(http.StatusBadRequest, errorResp{Error: err.Error()})
	case errors.Is(err, lock.ErrLockTimeout):
		return c.JSON(http.StatusServiceUnavailable, errorResp{Error: "auditorium is busy, try again"})
	}
	return respondErr(c, err, fallback)
}

// Create serves POST /functions.
//
//	@Summary	Schedule a function
//	@Tags		functions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		createFunctionReq	true	"function"
//	@Success	201		{object}	model.Function
//	@Failure	400		{object}	errorResp
//	@Failure	404		{object}	errorResp
//	@Failure	409		{object}	conflictResp
//	@Failure	503		{object}	errorResp
//	@Router		/v1/functions [post]
func (h *FunctionHandler) Create(c echo.Context) error {
	var req createFunctionReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	f, err := h.Scheduler.Schedule(ctx, service.FunctionInput{
		MovieID:        strings.TrimSpace(req.MovieID),
		AuditoriumID:   strings.TrimSpace(req.AuditoriumID),
		StartTime:      req.StartTime.Time,
		EndTime:        req.EndTime.Time,
		PriceCents:     req.PriceCents,
		AvailableSeats: req.AvailableSeats,
	})
	if err != nil {
		return scheduleErr(c, err, "create function failed")
	}
	return c.JSON(http.StatusCreated, f)
}

// Check serves POST /functions/check: an admission dry run that writes
// nothing.
//
//	@Summary	Check whether an auditorium is free
//	@Tags		functions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		body	body		checkFunctionReq	true	"slot"
//	@Success	200		{object}	service.CheckResult
//	@Failure	400		{object}	errorResp
//	@Failure	404		{object}	errorResp
//	@Router		/v1/functions/check [post]
func (h *FunctionHandler) Check(c echo.Context) error {
	var req checkFunctionReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	res, err := h.Scheduler.Check(ctx, strings.TrimSpace(req.AuditoriumID),
		schedule.TimeInterval{Start: req.StartTime.Time, End: req.EndTime.Time})
	if err != nil {
		return scheduleErr(c, err, "check failed")
	}
	return c.JSON(http.StatusOK, res)
}

// Get serves GET /functions/:id.
//
//	@Summary	Get a function
//	@Tags		functions
//	@Produce	json
//	@Param		id	path		string	true	"function id"
//	@Success	200	{object}	model.Function
//	@Failure	404	{object}	errorResp
//	@Router		/v1/functions/{id} [get]
func (h *FunctionHandler) Get(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	f, err := h.Scheduler.Get(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "load function failed")
	}
	return c.JSON(http.StatusOK, f)
}

// List serves GET /functions/all, one page at a time ordered by start.
//
//	@Summary	List functions
//	@Tags		functions
//	@Produce	json
//	@Param		page	query		int	false	"page, from 1"
//	@Param		size	query		int	false	"page size"
//	@Success	200		{object}	model.Page[model.Function]
//	@Router		/v1/functions/all [get]
func (h *FunctionHandler) List(c echo.Context) error {
	req := pageRequest(c)
	ctx, cancel := requestCtx(c)
	defer cancel()
	page, err := h.Scheduler.List(ctx, req)
	if err != nil {
		return respondErr(c, err, "list functions failed")
	}
	return c.JSON(http.StatusOK, page)
}

// Active serves GET /functions and GET /functions/active: functions that have
// not ended.
//
//	@Summary	List running and upcoming functions
//	@Tags		functions
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	functionList
//	@Failure	401	{object}	errorResp
//	@Failure	403	{object}	errorResp
//	@Router		/v1/functions [get]
//	@Router		/v1/functions/active [get]
func (h *FunctionHandler) Active(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	fs, err := h.Scheduler.ListActive(ctx)
	if err != nil {
		return respondErr(c, err, "list functions failed")
	}
	return c.JSON(http.StatusOK, functionList{Items: fs})
}

// ByAuditorium serves GET /auditoriums/:id/functions.
//
//	@Summary	List an auditorium's upcoming functions
//	@Tags		functions
//	@Produce	json
//	@Param		id	path		string	true	"auditorium id"
//	@Success	200	{object}	functionList
//	@Failure	404	{object}	errorResp
//	@Router		/v1/auditoriums/{id}/functions [get]
func (h *FunctionHandler) ByAuditorium(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	fs, err := h.Scheduler.ListByAuditorium(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "list functions failed")
	}
	return c.JSON(http.StatusOK, functionList{Items: fs})
}

// Update serves PUT /functions/:id as a partial update that is re-admitted.
//
//	@Summary	Reschedule a function
//	@Tags		functions
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"function id"
//	@Param		body	body		updateFunctionReq	true	"changed fields"
//	@Success	200		{object}	model.Function
//	@Failure	400		{object}	errorResp
//	@Failure	404		{object}	errorResp
//	@Failure	409		{object}	conflictResp
//	@Router		/v1/functions/{id} [put]
func (h *FunctionHandler) Update(c echo.Context) error {
	var req updateFunctionReq
	if ok, err := bind(c, &req); !ok {
		return err
	}

	ctx, cancel := requestCtx(c)
	defer cancel()
	f, err := h.Scheduler.Reschedule(ctx, c.Param("id"), service.FunctionPatch{
		MovieID:        req.MovieID,
		AuditoriumID:   req.AuditoriumID,
		StartTime:      req.StartTime.ptr(),
		EndTime:        req.EndTime.ptr(),
		PriceCents:     req.PriceCents,
		AvailableSeats: req.AvailableSeats,
	})
	if err != nil {
		return scheduleErr(c, err, "update function failed")
	}
	return c.JSON(http.StatusOK, f)
}

// Delete serves DELETE /functions/:id and returns the removed function.
//
//	@Summary	Cancel a function
//	@Tags		functions
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"function id"
//	@Success	200	{object}	model.Function
//	@Failure	404	{object}	errorResp
//	@Router		/v1/functions/{id} [delete]
func (h *FunctionHandler) Delete(c echo.Context) error {
	ctx, cancel := requestCtx(c)
	defer cancel()
	f, err := h.Scheduler.Cancel(ctx, c.Param("id"))
	if err != nil {
		return respondErr(c, err, "delete function failed")
	}
	return c.JSON(http.StatusOK, f)
}
