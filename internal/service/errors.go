package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-scheduler/internal/schedule"
)

var (
	ErrPastInterval        = errors.New("start time cannot be in the past")
	ErrSeatsExceedCapacity = errors.New("available seats cannot be greater than auditorium capacity")
	ErrVenueOccupied       = errors.New("auditorium is not free")
)

// VenueOccupiedError is returned when the candidate interval overlaps at
// least one function already booked in the auditorium. It matches
// ErrVenueOccupied with errors.Is.
type VenueOccupiedError struct {
	AuditoriumID string
	Conflicts    []schedule.Booking
}

func (e *VenueOccupiedError) Error() string {
	return fmt.Sprintf("auditorium %s is not free: %d conflicting function(s)", e.AuditoriumID, len(e.Conflicts))
}

func (e *VenueOccupiedError) Is(target error) bool { return target == ErrVenueOccupied }
