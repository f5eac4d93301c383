package domain

import (
	"context"
	"time"
)

// Session represents a scheduled screening of a movie at a cinema.
type Session struct {
	ID        int       `json:"id"`
	MovieID   int       `json:"movieId"`
	CinemaID  int       `json:"cinemaId"`
	StartTime time.Time `json:"startTime"`
}

// SessionDetails is a session together with its seat layout and the seats
// already booked for it.
type SessionDetails struct {
	ID          int       `json:"id"`
	MovieID     int       `json:"movieId"`
	CinemaID    int       `json:"cinemaId"`
	StartTime   time.Time `json:"startTime"`
	Seats       SeatMap   `json:"seats"`
	BookedSeats []Seat    `json:"bookedSeats"`
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	ListByMovieID(ctx context.Context, movieID int) ([]*Session, error)
	ListByCinemaID(ctx context.Context, cinemaID int) ([]*Session, error)
	GetByID(ctx context.Context, id int) (*Session, error)
	// GetSeatMap returns the seat layout of the session's hall.
	GetSeatMap(ctx context.Context, id int) (*SeatMap, error)
}

// SessionDetailsFetcher is the client-side port for resolving one session's
// details, typically over the booking API. May fail with ErrNotFound.
type SessionDetailsFetcher interface {
	FetchSessionDetails(ctx context.Context, id int) (*SessionDetails, error)
}
