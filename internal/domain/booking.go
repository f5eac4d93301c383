package domain

import (
	"context"
	"time"
)

// Booking represents a reservation of one or more seats for a session.
// A booking starts unpaid and transitions to paid exactly once.
type Booking struct {
	ID             string    `json:"id"`
	UserID         int       `json:"userId"`
	MovieSessionID int       `json:"movieSessionId"`
	SessionID      int       `json:"sessionId"`
	BookedAt       time.Time `json:"bookedAt"`
	Seats          []Seat    `json:"seats"`
	IsPaid         bool      `json:"isPaid"`
}

// BookingView is a booking enriched with its payment deadline. ExpiresAt is
// set only for unpaid bookings and only when the payment window is known;
// nil means the deadline could not be derived, not that it is now.
type BookingView struct {
	Booking
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// GroupedBookings partitions a user's bookings by lifecycle state.
type GroupedBookings struct {
	Unpaid   []BookingView `json:"unpaid"`
	Upcoming []Booking     `json:"upcoming"`
	Past     []Booking     `json:"past"`
}

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByUserID(ctx context.Context, userID int) ([]*Booking, error)
	// ListBookedSeats returns seats held on a session. Unpaid bookings hold
	// their seats only while booked after unpaidSince; older unpaid bookings
	// are treated as released.
	ListBookedSeats(ctx context.Context, sessionID int, unpaidSince time.Time) ([]Seat, error)
	// DeleteExpiredUnpaid removes unpaid bookings on a session booked before
	// the given time, releasing their seats.
	DeleteExpiredUnpaid(ctx context.Context, sessionID int, before time.Time) error
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// BookingService defines server-side booking operations.
type BookingService interface {
	// CreateBooking books the given seats on a session for the user.
	// Fails with ErrSeatsTaken when any requested seat is already booked.
	CreateBooking(ctx context.Context, userID, sessionID int, seats []Seat) (*Booking, error)
	ListUserBookings(ctx context.Context, userID int) ([]*Booking, error)
	// PayBooking marks the booking paid. Fails with ErrBookingExpired when the
	// payment window configured in settings has elapsed since BookedAt.
	PayBooking(ctx context.Context, userID int, bookingID string) error
	GetSettings(ctx context.Context) (*Settings, error)
}

// BookingFetcher is the client-side port over the booking API.
type BookingFetcher interface {
	FetchBookings(ctx context.Context) ([]Booking, error)
	FetchSettings(ctx context.Context) (Settings, error)
	PayBooking(ctx context.Context, bookingID string) error
}
