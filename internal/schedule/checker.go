// Package schedule decides whether a screening can be admitted into an
// auditorium given the screenings already booked there.
package schedule

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned for intervals whose start is not strictly
// before their end. Such intervals never reach the overlap test.
var ErrInvalidInterval = errors.New("start time must be before end time")

// TimeInterval is a half-open range [Start, End).
type TimeInterval struct {
	Start time.Time `json:"start_time"`
	End   time.Time `json:"end_time"`
}

// Validate reports ErrInvalidInterval for zero-length or inverted intervals.
func (t TimeInterval) Validate() error {
	if !t.Start.Before(t.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Booking is a reserved interval on one venue.
type Booking struct {
	ID       string       `json:"id"`
	VenueID  string       `json:"auditorium_id"`
	Interval TimeInterval `json:"interval"`
}

// VenueBookingSet is a snapshot of the bookings of a single venue. Order is
// not significant.
type VenueBookingSet []Booking

// Without returns a copy of the set minus the booking with the given id.
// Rescheduling uses it so a function never conflicts with itself.
func (s VenueBookingSet) Without(id string) VenueBookingSet {
	out := make(VenueBookingSet, 0, len(s))
	for _, b := range s {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

// ForVenue returns a copy of the set holding only the bookings of venueID.
func (s VenueBookingSet) ForVenue(venueID string) VenueBookingSet {
	out := make(VenueBookingSet, 0, len(s))
	for _, b := range s {
		if b.VenueID == venueID {
			out = append(out, b)
		}
	}
	return out
}

// Overlaps reports whether a and b share any instant. Touching endpoints do
// not overlap.
func Overlaps(a, b TimeInterval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// FindConflicts returns every booking in existing that overlaps candidate.
// The result is nil when there is none.
func FindConflicts(candidate TimeInterval, existing VenueBookingSet) []Booking {
	var conflicts []Booking
	for _, b := range existing {
		if Overlaps(candidate, b.Interval) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}

// IsVenueFree reports whether candidate can be placed on venueID without
// overlapping any booking in existing. Bookings of other venues are ignored,
// so it agrees with FindConflicts(candidate, existing.ForVenue(venueID)).
func IsVenueFree(venueID string, candidate TimeInterval, existing VenueBookingSet) bool {
	for _, b := range existing.ForVenue(venueID) {
		if Overlaps(candidate, b.Interval) {
			return false
		}
	}
	return true
}
