package domain

import "errors"

var (
	// ErrNotFound is returned when a lookup of a specific entity by id yields nothing.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller is not allowed to act on the entity.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned when a request fails domain validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSeatsTaken is returned when a booking requests seats that are already booked.
	ErrSeatsTaken = errors.New("seats already booked")
	// ErrBookingExpired is returned when an unpaid booking is past the payment window.
	ErrBookingExpired = errors.New("booking payment window expired")
	// ErrDuplicateEmail is returned on signup with an already registered email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials is returned on login with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
