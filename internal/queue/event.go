// Package queue defines the scheduling events exchanged over RabbitMQ, the
// publisher used by the scheduler and the consumer that journals them.
package queue

import "time"

// Queue names. Each is a durable queue bound to the default exchange.
const (
	FunctionScheduledQueue = "function.scheduled"
	FunctionCancelledQueue = "function.cancelled"
)

// FunctionScheduledEvent is published after a function has been admitted and
// committed. It carries enough context for consumers to log or notify without
// reading the database.
type FunctionScheduledEvent struct {
	FunctionID     string    `json:"function_id"`
	MovieID        string    `json:"movie_id"`
	MovieTitle     string    `json:"movie_title"`
	AuditoriumID   string    `json:"auditorium_id"`
	AuditoriumName string    `json:"auditorium_name"`
	CinemaID       string    `json:"cinema_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	PriceCents     uint32    `json:"price_cents"`
	AvailableSeats uint32    `json:"available_seats"`
	Rescheduled    bool      `json:"rescheduled,omitempty"`
	ScheduledAt    time.Time `json:"scheduled_at"`
}

// FunctionCancelledEvent is published after a function has been deleted.
type FunctionCancelledEvent struct {
	FunctionID   string    `json:"function_id"`
	AuditoriumID string    `json:"auditorium_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	CancelledAt  time.Time `json:"cancelled_at"`
}
