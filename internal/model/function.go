package model

import (
	"time"

	"github.com/iliyamo/cinema-scheduler/internal/schedule"
)

// Function is a scheduled screening of a movie in an auditorium over the
// half-open interval [StartTime, EndTime).
type Function struct {
	ID             string    `db:"id" json:"id"`
	MovieID        string    `db:"movie_id" json:"movie_id"`
	AuditoriumID   string    `db:"auditorium_id" json:"auditorium_id"`
	StartTime      time.Time `db:"start_time" json:"start_time"`
	EndTime        time.Time `db:"end_time" json:"end_time"`
	PriceCents     uint32    `db:"price_cents" json:"price_cents"`
	AvailableSeats uint32    `db:"available_seats" json:"available_seats"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Interval returns the time range the function occupies.
func (f Function) Interval() schedule.TimeInterval {
	return schedule.TimeInterval{Start: f.StartTime, End: f.EndTime}
}

// Booking projects the function onto its auditorium for admission checks.
func (f Function) Booking() schedule.Booking {
	return schedule.Booking{ID: f.ID, VenueID: f.AuditoriumID, Interval: f.Interval()}
}

// BookingSet converts functions of one auditorium into a VenueBookingSet.
func BookingSet(fs []Function) schedule.VenueBookingSet {
	out := make(schedule.VenueBookingSet, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Booking())
	}
	return out
}
