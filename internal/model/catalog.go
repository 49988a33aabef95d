package model

import "time"

// Director is a film director. Name is unique.
type Director struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Bio         *string   `db:"bio" json:"bio,omitempty"`
	BirthDate   *string   `db:"birth_date" json:"birth_date,omitempty"` // YYYY-MM-DD
	Nationality *string   `db:"nationality" json:"nationality,omitempty"`
	Image       *string   `db:"image" json:"image,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Genre is a movie category. Name is unique.
type Genre struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Movie is a film that can be screened. Genres are linked through the
// movie_genres join table and loaded separately.
type Movie struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Year        int       `db:"year" json:"year"`
	Rating      *float64  `db:"rating" json:"rating,omitempty"`
	Language    string    `db:"language" json:"language"`
	Duration    int       `db:"duration" json:"duration"` // minutes
	Trailer     string    `db:"trailer" json:"trailer"`
	Image       string    `db:"image" json:"image"`
	DirectorID  string    `db:"director_id" json:"director_id"`
	Genres      []Genre   `db:"-" json:"genres"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
