package api

import (
	"strings"
	"time"

	"cinemabooking/internal/domain"
)

// Wire DTOs use pointer fields so that absent values are visible. Every field
// is defensively defaulted before a record enters the core: missing numbers
// become 0, strings "", arrays [], booleans false.

type movieDTO struct {
	ID            *int     `json:"id"`
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Rating        *float64 `json:"rating"`
	Year          *int     `json:"year"`
	LengthMinutes *int     `json:"lengthMinutes"`
	PosterImage   *string  `json:"posterImage"`
}

type cinemaDTO struct {
	ID      *int    `json:"id"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

type sessionDTO struct {
	ID        *int    `json:"id"`
	MovieID   *int    `json:"movieId"`
	CinemaID  *int    `json:"cinemaId"`
	StartTime *string `json:"startTime"`
}

type seatDTO struct {
	RowNumber  *int `json:"rowNumber"`
	SeatNumber *int `json:"seatNumber"`
}

type seatMapDTO struct {
	Rows        *int `json:"rows"`
	SeatsPerRow *int `json:"seatsPerRow"`
}

type sessionDetailsDTO struct {
	ID          *int        `json:"id"`
	MovieID     *int        `json:"movieId"`
	CinemaID    *int        `json:"cinemaId"`
	StartTime   *string     `json:"startTime"`
	Seats       *seatMapDTO `json:"seats"`
	BookedSeats []seatDTO   `json:"bookedSeats"`
}

type bookingDTO struct {
	ID             *string   `json:"id"`
	UserID         *int      `json:"userId"`
	MovieSessionID *int      `json:"movieSessionId"`
	SessionID      *int      `json:"sessionId"`
	BookedAt       *string   `json:"bookedAt"`
	Seats          []seatDTO `json:"seats"`
	IsPaid         *bool     `json:"isPaid"`
}

type settingsDTO struct {
	BookingPaymentTimeSeconds *int `json:"bookingPaymentTimeSeconds"`
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func boolOrFalse(v *bool) bool {
	if v == nil {
		return false
	}
	return *v
}

// timeOrZero parses an ISO-8601 instant; a missing or malformed value maps to
// the zero time rather than propagating into the core.
func timeOrZero(v *string) time.Time {
	if v == nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d movieDTO) normalize(baseURL string) domain.Movie {
	return domain.Movie{
		ID:            intOrZero(d.ID),
		Title:         stringOrEmpty(d.Title),
		Description:   stringOrEmpty(d.Description),
		Rating:        floatOrZero(d.Rating),
		Year:          intOrZero(d.Year),
		LengthMinutes: intOrZero(d.LengthMinutes),
		PosterImage:   resolvePosterURL(baseURL, stringOrEmpty(d.PosterImage)),
	}
}

// resolvePosterURL turns a server-relative poster path into an absolute URL.
func resolvePosterURL(baseURL, poster string) string {
	if poster == "" {
		return ""
	}
	if strings.HasPrefix(poster, "http://") || strings.HasPrefix(poster, "https://") {
		return poster
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(poster, "/")
}

func (d cinemaDTO) normalize() domain.Cinema {
	return domain.Cinema{
		ID:      intOrZero(d.ID),
		Name:    stringOrEmpty(d.Name),
		Address: stringOrEmpty(d.Address),
	}
}

func (d sessionDTO) normalize() domain.Session {
	return domain.Session{
		ID:        intOrZero(d.ID),
		MovieID:   intOrZero(d.MovieID),
		CinemaID:  intOrZero(d.CinemaID),
		StartTime: timeOrZero(d.StartTime),
	}
}

func (d seatDTO) normalize() domain.Seat {
	return domain.Seat{
		RowNumber:  intOrZero(d.RowNumber),
		SeatNumber: intOrZero(d.SeatNumber),
	}
}

func normalizeSeats(dtos []seatDTO) []domain.Seat {
	seats := make([]domain.Seat, 0, len(dtos))
	for _, d := range dtos {
		seats = append(seats, d.normalize())
	}
	return seats
}

func (d sessionDetailsDTO) normalize() domain.SessionDetails {
	details := domain.SessionDetails{
		ID:          intOrZero(d.ID),
		MovieID:     intOrZero(d.MovieID),
		CinemaID:    intOrZero(d.CinemaID),
		StartTime:   timeOrZero(d.StartTime),
		BookedSeats: normalizeSeats(d.BookedSeats),
	}
	if d.Seats != nil {
		details.Seats = domain.SeatMap{
			Rows:        intOrZero(d.Seats.Rows),
			SeatsPerRow: intOrZero(d.Seats.SeatsPerRow),
		}
	}
	return details
}

func (d bookingDTO) normalize() domain.Booking {
	return domain.Booking{
		ID:             stringOrEmpty(d.ID),
		UserID:         intOrZero(d.UserID),
		MovieSessionID: intOrZero(d.MovieSessionID),
		SessionID:      intOrZero(d.SessionID),
		BookedAt:       timeOrZero(d.BookedAt),
		Seats:          normalizeSeats(d.Seats),
		IsPaid:         boolOrFalse(d.IsPaid),
	}
}

func (d settingsDTO) normalize() domain.Settings {
	return domain.Settings{
		BookingPaymentTimeSeconds: intOrZero(d.BookingPaymentTimeSeconds),
	}
}
