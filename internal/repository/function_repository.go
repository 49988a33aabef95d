package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/cinema-scheduler/internal/model"
	"github.com/iliyamo/cinema-scheduler/internal/schedule"
)

const functionColumns = `id, movie_id, auditorium_id, start_time, end_time, price_cents, available_seats, created_at, updated_at`

// FunctionRepo persists functions (screenings). Writes that must respect the
// one-screening-at-a-time rule go through InVenueTx.
type FunctionRepo struct {
	db *sqlx.DB
}

// NewFunctionRepo returns a repository over the functions table.
func NewFunctionRepo(db *sqlx.DB) *FunctionRepo {
	return &FunctionRepo{db: db}
}

// VenueTx is a transaction holding the row lock of one auditorium. While it
// is open no other VenueTx on the same auditorium can proceed, so bookings
// read through it stay valid until Insert/Update commit.
type VenueTx interface {
	Auditorium() model.Auditorium
	Bookings(ctx context.Context, since time.Time) (schedule.VenueBookingSet, error)
	Insert(ctx context.Context, f *model.Function) error
	Update(ctx context.Context, f *model.Function) error
}

// InVenueTx locks the auditorium row (SELECT ... FOR UPDATE) and runs fn in
// the same transaction. It commits when fn returns nil. ErrAuditoriumNotFound
// is returned when the auditorium does not exist.
func (r *FunctionRepo) InVenueTx(ctx context.Context, auditoriumID string, fn func(VenueTx) error) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		aud, err := getOne[model.Auditorium](ctx, tx, ErrAuditoriumNotFound,
			`SELECT `+auditoriumColumns+` FROM auditoriums WHERE id = ? FOR UPDATE`, auditoriumID)
		if err != nil {
			return err
		}
		return fn(&venueTx{tx: tx, aud: *aud})
	})
}

type venueTx struct {
	tx  *sqlx.Tx
	aud model.Auditorium
}

func (v *venueTx) Auditorium() model.Auditorium { return v.aud }

// Bookings lists the auditorium's functions that end after since. Functions
// ending at or before since cannot overlap an interval starting at since.
func (v *venueTx) Bookings(ctx context.Context, since time.Time) (schedule.VenueBookingSet, error) {
	return listBookings(ctx, v.tx, v.aud.ID, since)
}

func (v *venueTx) Insert(ctx context.Context, f *model.Function) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.AuditoriumID = v.aud.ID
	const q = `INSERT INTO functions (id, movie_id, auditorium_id, start_time, end_time, price_cents, available_seats)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := v.tx.ExecContext(ctx, q, f.ID, f.MovieID, f.AuditoriumID,
		f.StartTime.UTC(), f.EndTime.UTC(), f.PriceCents, f.AvailableSeats); err != nil {
		return classifyFunctionWrite(err)
	}
	return v.reload(ctx, f)
}

func (v *venueTx) Update(ctx context.Context, f *model.Function) error {
	f.AuditoriumID = v.aud.ID
	const q = `UPDATE functions
	              SET movie_id = ?, auditorium_id = ?, start_time = ?, end_time = ?, price_cents = ?, available_seats = ?
	            WHERE id = ?`
	if _, err := v.tx.ExecContext(ctx, q, f.MovieID, f.AuditoriumID,
		f.StartTime.UTC(), f.EndTime.UTC(), f.PriceCents, f.AvailableSeats, f.ID); err != nil {
		return classifyFunctionWrite(err)
	}
	return v.reload(ctx, f)
}

func (v *venueTx) reload(ctx context.Context, f *model.Function) error {
	fresh, err := getOne[model.Function](ctx, v.tx, ErrFunctionNotFound,
		`SELECT `+functionColumns+` FROM functions WHERE id = ?`, f.ID)
	if err != nil {
		return err
	}
	*f = *fresh
	return nil
}

func classifyFunctionWrite(err error) error {
	switch {
	case isDuplicate(err):
		return ErrDuplicateFunction
	case isMissingParent(err):
		return ErrMovieNotFound
	case isCheckViolated(err):
		// chk_functions_interval
		return schedule.ErrInvalidInterval
	}
	return err
}

func listBookings(ctx context.Context, q sqlx.QueryerContext, auditoriumID string, since time.Time) (schedule.VenueBookingSet, error) {
	var fs []model.Function
	err := sqlx.SelectContext(ctx, q, &fs,
		`SELECT `+functionColumns+` FROM functions WHERE auditorium_id = ? AND end_time > ? ORDER BY start_time`,
		auditoriumID, since.UTC())
	if err != nil {
		return nil, err
	}
	return model.BookingSet(fs), nil
}

// Bookings reads the same set as VenueTx.Bookings without taking the lock.
// The result is advisory only and is used for dry-run checks.
func (r *FunctionRepo) Bookings(ctx context.Context, auditoriumID string, since time.Time) (schedule.VenueBookingSet, error) {
	return listBookings(ctx, r.db, auditoriumID, since)
}

// GetByID returns ErrFunctionNotFound when no row matches.
func (r *FunctionRepo) GetByID(ctx context.Context, id string) (*model.Function, error) {
	return getOne[model.Function](ctx, r.db, ErrFunctionNotFound,
		`SELECT `+functionColumns+` FROM functions WHERE id = ?`, id)
}

// List returns one page of functions ordered by start time plus the total
// row count.
func (r *FunctionRepo) List(ctx context.Context, req model.PageRequest) ([]model.Function, int, error) {
	return listPage[model.Function](ctx, r.db,
		`SELECT COUNT(*) FROM functions`,
		`SELECT `+functionColumns+` FROM functions ORDER BY start_time LIMIT ? OFFSET ?`,
		req)
}

// ListActive returns functions that have not finished at now.
func (r *FunctionRepo) ListActive(ctx context.Context, now time.Time) ([]model.Function, error) {
	out := []model.Function{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+functionColumns+` FROM functions WHERE end_time > ? ORDER BY start_time`, now.UTC())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByAuditorium returns the auditorium's functions ending after since.
func (r *FunctionRepo) ListByAuditorium(ctx context.Context, auditoriumID string, since time.Time) ([]model.Function, error) {
	out := []model.Function{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+functionColumns+` FROM functions WHERE auditorium_id = ? AND end_time > ? ORDER BY start_time`,
		auditoriumID, since.UTC())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a function and returns it as it was.
func (r *FunctionRepo) Delete(ctx context.Context, id string) (*model.Function, error) {
	var out *model.Function
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		f, err := getOne[model.Function](ctx, tx, ErrFunctionNotFound,
			`SELECT `+functionColumns+` FROM functions WHERE id = ? FOR UPDATE`, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM functions WHERE id = ?`, id); err != nil {
			return err
		}
		out = f
		return nil
	})
	return out, err
}
