// Package service hosts the function scheduler: the admission pipeline that
// validates a screening, serializes it against its auditorium and persists it
// only when the auditorium is free.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/config"
	"github.com/iliyamo/cinema-scheduler/internal/lock"
	"github.com/iliyamo/cinema-scheduler/internal/logger"
	"github.com/iliyamo/cinema-scheduler/internal/metrics"
	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/queue"
	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
)

// FunctionStore is the subset of repository.FunctionRepo the scheduler uses.
type FunctionStore interface {
	InVenueTx(ctx context.Context, auditoriumID string, fn func(repository.VenueTx) error) error
	Bookings(ctx context.Context, auditoriumID string, since time.Time) (schedule.VenueBookingSet, error)
	GetByID(ctx context.Context, id string) (*model.Function, error)
	List(ctx context.Context, req model.PageRequest) ([]model.Function, int, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Function, error)
	ListByAuditorium(ctx context.Context, auditoriumID string, since time.Time) ([]model.Function, error)
	Delete(ctx context.Context, id string) (*model.Function, error)
}

// MovieFinder resolves the movie of a function; ErrMovieNotFound rejects
// the admission.
type MovieFinder interface {
	GetByID(ctx context.Context, id string) (*model.Movie, error)
}

// AuditoriumFinder resolves an auditorium outside the venue transaction,
// for checks and listings.
type AuditoriumFinder interface {
	GetByID(ctx context.Context, id string) (*model.Auditorium, error)
}

// EventPublisher delivers scheduling events. Failures never undo a commit.
type EventPublisher interface {
	PublishScheduled(ctx context.Context, ev queue.FunctionScheduledEvent) error
	PublishCancelled(ctx context.Context, ev queue.FunctionCancelledEvent) error
}

// FunctionInput describes a new screening. A nil AvailableSeats offers the
// full auditorium capacity.
type FunctionInput struct {
	MovieID        string
	AuditoriumID   string
	StartTime      time.Time
	EndTime        time.Time
	PriceCents     uint32
	AvailableSeats *uint32
}

// FunctionPatch changes only the non-nil fields of a function.
type FunctionPatch struct {
	MovieID        *string
	AuditoriumID   *string
	StartTime      *time.Time
	EndTime        *time.Time
	PriceCents     *uint32
	AvailableSeats *uint32
}

// CheckResult is the outcome of a dry-run admission.
type CheckResult struct {
	Free      bool               `json:"free"`
	Conflicts []schedule.Booking `json:"conflicts"`
}

const publishTimeout = 5 * time.Second

// storedTime brings t to the precision of the DATETIME columns. Intervals are
// validated and compared at that precision so that what is admitted is what
// the database keeps.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// Scheduler admits, reschedules and cancels functions. Writes to one
// auditorium are serialized by the locker and by a row lock on the
// auditorium, and every admission re-reads that auditorium's bookings under
// both.
type Scheduler struct {
	functions   FunctionStore
	movies      MovieFinder
	auditoriums AuditoriumFinder
	locker      lock.Locker
	events      EventPublisher
	cfg         config.LockConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewScheduler wires the admission pipeline. events may be nil, in which case
// nothing is published.
func NewScheduler(functions FunctionStore, movies MovieFinder, auditoriums AuditoriumFinder,
	locker lock.Locker, events EventPublisher, cfg config.LockConfig, log *logger.Logger) *Scheduler {
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}
	return &Scheduler{
		functions:   functions,
		movies:      movies,
		auditoriums: auditoriums,
		locker:      locker,
		events:      events,
		cfg:         cfg,
		log:         log.With("component", "scheduler"),
		now:         time.Now,
	}
}

// Schedule admits a new function. Checks run in this order: interval shape,
// start not in the past, movie exists, then under the venue lock: auditorium
// exists, seats fit capacity, no overlapping function.
func (s *Scheduler) Schedule(ctx context.Context, in FunctionInput) (*model.Function, error) {
	f := &model.Function{
		MovieID:      in.MovieID,
		AuditoriumID: in.AuditoriumID,
		StartTime:    storedTime(in.StartTime),
		EndTime:      storedTime(in.EndTime),
		PriceCents:   in.PriceCents,
	}
	if in.AvailableSeats != nil {
		f.AvailableSeats = *in.AvailableSeats
	}

	movie, err := s.precheck(ctx, f, true)
	if err != nil {
		return nil, s.reject(err)
	}
	aud, err := s.admit(ctx, f, "", in.AvailableSeats == nil)
	if err != nil {
		return nil, s.reject(err)
	}

	metrics.RecordAdmission(metrics.OutcomeAdmitted)
	s.log.Info("function scheduled", "function_id", f.ID, "auditorium_id", f.AuditoriumID,
		"start", f.StartTime, "end", f.EndTime)
	s.publishScheduled(ctx, f, movie, aud, false)
	return f, nil
}

// Reschedule applies patch to an existing function and re-runs admission on
// the result. The function never conflicts with its own current slot. The
// past-start rule only applies when the start time is being changed.
func (s *Scheduler) Reschedule(ctx context.Context, id string, patch FunctionPatch) (*model.Function, error) {
	cur, err := s.functions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f := *cur
	if patch.MovieID != nil {
		f.MovieID = *patch.MovieID
	}
	if patch.AuditoriumID != nil {
		f.AuditoriumID = *patch.AuditoriumID
	}
	if patch.StartTime != nil {
		f.StartTime = storedTime(*patch.StartTime)
	}
	if patch.EndTime != nil {
		f.EndTime = storedTime(*patch.EndTime)
	}
	if patch.PriceCents != nil {
		f.PriceCents = *patch.PriceCents
	}
	if patch.AvailableSeats != nil {
		f.AvailableSeats = *patch.AvailableSeats
	}

	movie, err := s.precheck(ctx, &f, patch.StartTime != nil)
	if err != nil {
		return nil, s.reject(err)
	}
	aud, err := s.admit(ctx, &f, id, false)
	if err != nil {
		return nil, s.reject(err)
	}

	metrics.RecordAdmission(metrics.OutcomeAdmitted)
	s.log.Info("function rescheduled", "function_id", f.ID, "auditorium_id", f.AuditoriumID,
		"start", f.StartTime, "end", f.EndTime)
	s.publishScheduled(ctx, &f, movie, aud, true)
	return &f, nil
}

// Cancel deletes the function and announces the freed slot.
func (s *Scheduler) Cancel(ctx context.Context, id string) (*model.Function, error) {
	f, err := s.functions.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	metrics.RecordCancellation()
	s.log.Info("function cancelled", "function_id", f.ID, "auditorium_id", f.AuditoriumID)

	if s.events != nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		ev := queue.FunctionCancelledEvent{
			FunctionID:   f.ID,
			AuditoriumID: f.AuditoriumID,
			StartTime:    f.StartTime,
			EndTime:      f.EndTime,
			CancelledAt:  s.now().UTC(),
		}
		if err := s.events.PublishCancelled(pctx, ev); err != nil {
			s.log.Warn("cancel event not published", "function_id", f.ID, "error", err)
		}
	}
	return f, nil
}

// Check reports whether the interval is free in the auditorium without
// taking the lock or writing anything. The answer may be stale by the time a
// real Schedule call runs.
func (s *Scheduler) Check(ctx context.Context, auditoriumID string, iv schedule.TimeInterval) (CheckResult, error) {
	iv = schedule.TimeInterval{Start: storedTime(iv.Start), End: storedTime(iv.End)}
	if err := iv.Validate(); err != nil {
		return CheckResult{}, err
	}
	if _, err := s.auditoriums.GetByID(ctx, auditoriumID); err != nil {
		return CheckResult{}, err
	}
	existing, err := s.functions.Bookings(ctx, auditoriumID, iv.Start)
	if err != nil {
		return CheckResult{}, err
	}
	conflicts := schedule.FindConflicts(iv, existing.ForVenue(auditoriumID))
	if conflicts == nil {
		conflicts = []schedule.Booking{}
	}
	return CheckResult{Free: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// Get returns one function or repository.ErrFunctionNotFound.
func (s *Scheduler) Get(ctx context.Context, id string) (*model.Function, error) {
	return s.functions.GetByID(ctx, id)
}

// List returns one page of all functions, past ones included.
func (s *Scheduler) List(ctx context.Context, req model.PageRequest) (model.Page[model.Function], error) {
	items, total, err := s.functions.List(ctx, req)
	if err != nil {
		return model.Page[model.Function]{}, err
	}
	return model.NewPage(items, total, req), nil
}

// ListActive returns the functions that have not ended yet.
func (s *Scheduler) ListActive(ctx context.Context) ([]model.Function, error) {
	return s.functions.ListActive(ctx, s.now())
}

// ListByAuditorium returns the upcoming and running functions of one
// auditorium.
func (s *Scheduler) ListByAuditorium(ctx context.Context, auditoriumID string) ([]model.Function, error) {
	if _, err := s.auditoriums.GetByID(ctx, auditoriumID); err != nil {
		return nil, err
	}
	return s.functions.ListByAuditorium(ctx, auditoriumID, s.now())
}

// precheck runs the validations that need no lock.
func (s *Scheduler) precheck(ctx context.Context, f *model.Function, checkPast bool) (*model.Movie, error) {
	if err := f.Interval().Validate(); err != nil {
		return nil, err
	}
	if checkPast && f.StartTime.Before(s.now()) {
		return nil, ErrPastInterval
	}
	return s.movies.GetByID(ctx, f.MovieID)
}

// admit retries the locked check-then-write when the write loses a race on
// the (auditorium, start) unique key.
func (s *Scheduler) admit(ctx context.Context, f *model.Function, selfID string, fullCapacity bool) (*model.Auditorium, error) {
	for attempt := 1; ; attempt++ {
		aud, err := s.admitOnce(ctx, f, selfID, fullCapacity)
		if errors.Is(err, repository.ErrDuplicateFunction) && attempt < s.cfg.Attempts {
			metrics.RecordAdmissionRetry()
			s.log.Warn("admission lost a race, retrying", "auditorium_id", f.AuditoriumID, "attempt", attempt)
			continue
		}
		return aud, err
	}
}

func (s *Scheduler) admitOnce(ctx context.Context, f *model.Function, selfID string, fullCapacity bool) (*model.Auditorium, error) {
	release, err := s.locker.Acquire(ctx, f.AuditoriumID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			s.log.Warn("venue lock release failed", "auditorium_id", f.AuditoriumID, "error", err)
		}
	}()

	var aud model.Auditorium
	err = s.functions.InVenueTx(ctx, f.AuditoriumID, func(v repository.VenueTx) error {
		aud = v.Auditorium()
		if fullCapacity {
			f.AvailableSeats = aud.Capacity
		}
		if f.AvailableSeats > aud.Capacity {
			return ErrSeatsExceedCapacity
		}

		existing, err := v.Bookings(ctx, f.StartTime)
		if err != nil {
			return err
		}
		if selfID != "" {
			existing = existing.Without(selfID)
		}
		if conflicts := schedule.FindConflicts(f.Interval(), existing); len(conflicts) > 0 {
			return &VenueOccupiedError{AuditoriumID: f.AuditoriumID, Conflicts: conflicts}
		}

		if selfID != "" {
			return v.Update(ctx, f)
		}
		return v.Insert(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return &aud, nil
}

func (s *Scheduler) reject(err error) error {
	outcome := admissionOutcome(err)
	metrics.RecordAdmission(outcome)
	if outcome == metrics.OutcomeError {
		s.log.Error("admission failed", "error", err)
	} else {
		s.log.Info("admission rejected", "outcome", outcome, "error", err)
	}
	return err
}

func admissionOutcome(err error) string {
	switch {
	case errors.Is(err, ErrVenueOccupied), errors.Is(err, repository.ErrDuplicateFunction):
		return metrics.OutcomeOccupied
	case errors.Is(err, schedule.ErrInvalidInterval):
		return metrics.OutcomeInvalidInterval
	case errors.Is(err, ErrPastInterval):
		return metrics.OutcomePastInterval
	case errors.Is(err, repository.ErrAuditoriumNotFound):
		return metrics.OutcomeVenueNotFound
	case errors.Is(err, repository.ErrMovieNotFound):
		return metrics.OutcomeMovieNotFound
	case errors.Is(err, ErrSeatsExceedCapacity):
		return metrics.OutcomeSeatsExceeded
	case errors.Is(err, lock.ErrLockTimeout):
		return metrics.OutcomeLockTimeout
	}
	return metrics.OutcomeError
}

func (s *Scheduler) publishScheduled(ctx context.Context, f *model.Function, movie *model.Movie, aud *model.Auditorium, rescheduled bool) {
	if s.events == nil {
		return
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := queue.FunctionScheduledEvent{
		FunctionID:     f.ID,
		MovieID:        f.MovieID,
		MovieTitle:     movie.Title,
		AuditoriumID:   aud.ID,
		AuditoriumName: aud.Name,
		CinemaID:       aud.CinemaID,
		StartTime:      f.StartTime,
		EndTime:        f.EndTime,
		PriceCents:     f.PriceCents,
		AvailableSeats: f.AvailableSeats,
		Rescheduled:    rescheduled,
		ScheduledAt:    s.now().UTC(),
	}
	if err := s.events.PublishScheduled(pctx, ev); err != nil {
		s.log.Warn("schedule event not published", "function_id", f.ID, "error", err)
	}
}
