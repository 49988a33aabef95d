package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-scheduler/internal/lock"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
	"github.com/iliyamo/cinema-scheduler/internal/service"
)

type fakeScheduler struct {
	input service.FunctionInput
	patch service.FunctionPatch
	iv    schedule.TimeInterval
	err   error
}

func (f *fakeScheduler) Schedule(_ context.Context, in service.FunctionInput) (*model.Function, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &model.Function{ID: "f-new", MovieID: in.MovieID, AuditoriumID: in.AuditoriumID,
		StartTime: in.StartTime, EndTime: in.EndTime}, nil
}

func (f *fakeScheduler) Reschedule(_ context.Context, id string, patch service.FunctionPatch) (*model.Function, error) {
	f.patch = patch
	if f.err != nil {
		return nil, f.err
	}
	return &model.Function{ID: id}, nil
}

func (f *fakeScheduler) Cancel(_ context.Context, id string) (*model.Function, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Function{ID: id}, nil
}

func (f *fakeScheduler) Check(_ context.Context, auditoriumID string, iv schedule.TimeInterval) (service.CheckResult, error) {
	f.iv = iv
	if f.err != nil {
		return service.CheckResult{}, f.err
	}
	return service.CheckResult{Free: true, Conflicts: []schedule.Booking{}}, nil
}

func (f *fakeScheduler) Get(_ context.Context, id string) (*model.Function, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Function{ID: id}, nil
}

func (f *fakeScheduler) List(_ context.Context, req model.PageRequest) (model.Page[model.Function], error) {
	return model.NewPage([]model.Function{{ID: "f1"}}, 1, req), f.err
}

func (f *fakeScheduler) ListActive(context.Context) ([]model.Function, error) {
	return []model.Function{{ID: "f1"}, {ID: "f2"}}, f.err
}

func (f *fakeScheduler) ListByAuditorium(_ context.Context, auditoriumID string) ([]model.Function, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []model.Function{{ID: "f1", AuditoriumID: auditoriumID}}, nil
}

const createBody = `{"movie_id":"m1","auditorium_id":"aud-1","start_time":"2025-09-25 20:22:00","end_time":"2025-09-25T22:00:00Z","price_cents":1200}`

func TestFunctionCreateParsesBothTimeFormats(t *testing.T) {
	sched := &fakeScheduler{}
	h := NewFunctionHandler(sched)

	rec := call(t, h.Create, http.MethodPost, "/functions", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, time.Date(2025, 9, 25, 20, 22, 0, 0, time.UTC), sched.input.StartTime)
	assert.Equal(t, time.Date(2025, 9, 25, 22, 0, 0, 0, time.UTC), sched.input.EndTime)
	assert.Equal(t, uint32(1200), sched.input.PriceCents)
	assert.Nil(t, sched.input.AvailableSeats)
}

func TestFunctionCreateOffsetIsNormalizedToUTC(t *testing.T) {
	sched := &fakeScheduler{}
	h := NewFunctionHandler(sched)

	body := `{"movie_id":"m1","auditorium_id":"aud-1","start_time":"2025-09-25T17:00:00-03:00","end_time":"2025-09-25T19:00:00-03:00","available_seats":40}`
	rec := call(t, h.Create, http.MethodPost, "/functions", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, time.Date(2025, 9, 25, 20, 0, 0, 0, time.UTC), sched.input.StartTime)
	assert.Equal(t, time.UTC, sched.input.StartTime.Location())
	require.NotNil(t, sched.input.AvailableSeats)
	assert.Equal(t, uint32(40), *sched.input.AvailableSeats)
}

func TestFunctionCreateRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{name: "unparseable time", body: `{"movie_id":"m1","auditorium_id":"a","start_time":"tomorrow","end_time":"2025-09-25 22:00:00"}`, errMsg: "invalid body"},
		{name: "missing start", body: `{"movie_id":"m1","auditorium_id":"a","end_time":"2025-09-25 22:00:00"}`, errMsg: "validation failed"},
		{name: "blank movie", body: `{"movie_id":" ","auditorium_id":"a","start_time":"2025-09-25 20:00:00","end_time":"2025-09-25 22:00:00"}`, errMsg: "validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, NewFunctionHandler(&fakeScheduler{}).Create, http.MethodPost, "/functions", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.errMsg, decode(t, rec)["error"])
		})
	}
}

func TestFunctionCreateErrorMapping(t *testing.T) {
	occupied := &service.VenueOccupiedError{
		AuditoriumID: "aud-1",
		Conflicts: []schedule.Booking{{ID: "f1", VenueID: "aud-1", Interval: schedule.TimeInterval{
			Start: time.Date(2025, 9, 25, 18, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 9, 25, 20, 22, 0, 0, time.UTC),
		}}},
	}
	tests := []struct {
		name   string
		err    error
		status int
		errMsg string
	}{
		{"occupied", occupied, http.StatusConflict, "auditorium is not free"},
		{"lost race", repository.ErrDuplicateFunction, http.StatusConflict, "auditorium is not free"},
		{"inverted interval", schedule.ErrInvalidInterval, http.StatusBadRequest, "start time must be before end time"},
		{"past", service.ErrPastInterval, http.StatusBadRequest, service.ErrPastInterval.Error()},
		{"too many seats", service.ErrSeatsExceedCapacity, http.StatusBadRequest, service.ErrSeatsExceedCapacity.Error()},
		{"no movie", fmt.Errorf("load movie: %w", repository.ErrMovieNotFound), http.StatusNotFound, "load movie: movie not found"},
		{"no auditorium", repository.ErrAuditoriumNotFound, http.StatusNotFound, "auditorium not found"},
		{"lock busy", lock.ErrLockTimeout, http.StatusServiceUnavailable, "auditorium is busy, try again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewFunctionHandler(&fakeScheduler{err: tt.err})
			rec := call(t, h.Create, http.MethodPost, "/functions", createBody)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.errMsg, decode(t, rec)["error"])
		})
	}
}

func TestFunctionCreateConflictListsBookings(t *testing.T) {
	occupied := &service.VenueOccupiedError{
		AuditoriumID: "aud-1",
		Conflicts:    []schedule.Booking{{ID: "f1", VenueID: "aud-1"}, {ID: "f2", VenueID: "aud-1"}},
	}
	h := NewFunctionHandler(&fakeScheduler{err: occupied})

	rec := call(t, h.Create, http.MethodPost, "/functions", createBody)
	require.Equal(t, http.StatusConflict, rec.Code)
	conflicts, ok := decode(t, rec)["conflicts"].([]any)
	require.True(t, ok)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "f1", conflicts[0].(map[string]any)["id"])
}

func TestFunctionUpdateSendsOnlyPresentFields(t *testing.T) {
	sched := &fakeScheduler{}
	h := NewFunctionHandler(sched)

	rec := call(t, h.Update, http.MethodPut, "/functions/f1", `{"start_time":"2025-09-26 10:00:00","price_cents":0}`, "id", "f1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sched.patch.StartTime)
	assert.Equal(t, time.Date(2025, 9, 26, 10, 0, 0, 0, time.UTC), *sched.patch.StartTime)
	assert.Nil(t, sched.patch.EndTime)
	assert.Nil(t, sched.patch.MovieID)
	require.NotNil(t, sched.patch.PriceCents)
	assert.Zero(t, *sched.patch.PriceCents)
}

func TestFunctionCheck(t *testing.T) {
	sched := &fakeScheduler{}
	h := NewFunctionHandler(sched)

	rec := call(t, h.Check, http.MethodPost, "/functions/check",
		`{"auditorium_id":"aud-1","start_time":"2025-09-25 20:22:00","end_time":"2025-09-25 22:00:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["free"])
	assert.Equal(t, []any{}, body["conflicts"])
	assert.Equal(t, time.Date(2025, 9, 25, 20, 22, 0, 0, time.UTC), sched.iv.Start)
}

func TestFunctionReads(t *testing.T) {
	h := NewFunctionHandler(&fakeScheduler{})

	rec := call(t, h.Active, http.MethodGet, "/functions/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"], 2)

	rec = call(t, h.ByAuditorium, http.MethodGet, "/auditoriums/aud-1/functions", "", "id", "aud-1")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "aud-1", items[0].(map[string]any)["auditorium_id"])

	rec = call(t, h.List, http.MethodGet, "/functions/all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["total"])
}

func TestFunctionDeleteUnknown(t *testing.T) {
	h := NewFunctionHandler(&fakeScheduler{err: repository.ErrFunctionNotFound})
	rec := call(t, h.Delete, http.MethodDelete, "/functions/nope", "", "id", "nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
