package model

import "time"

// Cinema represents a movie theatre. A cinema contains auditoriums.
// Number is the public branch number shown to customers.
//
// Fields:
//
//	ID        – uuid primary key.
//	Name      – display name.
//	Location  – free-form address.
//	Number    – branch number.
type Cinema struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	Number    int       `db:"number" json:"number"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Auditorium is a screening room inside a cinema. It is the venue that
// functions are scheduled on; at most one function may run in it at a time.
type Auditorium struct {
	ID        string    `db:"id" json:"id"`
	CinemaID  string    `db:"cinema_id" json:"cinema_id"`
	Name      string    `db:"name" json:"name"`
	Capacity  uint32    `db:"capacity" json:"capacity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
