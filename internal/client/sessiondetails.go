package client

import (
	"context"
	"sync"

	"cinemabooking/internal/domain"
)

// sessionLoadError is the user-facing message when session details cannot be
// loaded.
const sessionLoadError = "Не удалось загрузить информацию о сеансе"

// SessionDetailsView holds one session's details for the seat-picking screen
// and owns the observable booked-seats list a SeatSelection watches.
type SessionDetailsView struct {
	fetcher   domain.SessionDetailsFetcher
	sessionID int
	booked    *SeatList

	mu      sync.Mutex
	details *domain.SessionDetails
	errMsg  string
	loading bool
	gen     uint64
}

// NewSessionDetailsView creates the view for the given session id.
func NewSessionDetailsView(fetcher domain.SessionDetailsFetcher, sessionID int) *SessionDetailsView {
	return &SessionDetailsView{
		fetcher:   fetcher,
		sessionID: sessionID,
		booked:    NewSeatList([]domain.Seat{}),
	}
}

// Load fetches the session details and publishes the booked seats. On failure
// Err reports a fixed message and previously loaded details are kept.
func (v *SessionDetailsView) Load(ctx context.Context) {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.loading = true
	v.errMsg = ""
	v.mu.Unlock()

	details, err := v.fetcher.FetchSessionDetails(ctx, v.sessionID)

	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return
	}
	v.loading = false
	if err != nil {
		v.errMsg = sessionLoadError
		v.mu.Unlock()
		return
	}
	v.details = details
	v.mu.Unlock()

	v.booked.Set(details.BookedSeats)
}

// Details returns the loaded details, or nil before the first successful Load.
func (v *SessionDetailsView) Details() *domain.SessionDetails {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.details
}

// BookedSeats is the observable booked-seats list for this session.
func (v *SessionDetailsView) BookedSeats() *SeatList {
	return v.booked
}

// MarkSeatsBooked adds seats to the booked list, e.g. right after this client
// created a booking for them. Subscribed selections drop them immediately.
func (v *SessionDetailsView) MarkSeatsBooked(seats []domain.Seat) {
	v.booked.Add(seats...)
}

// Err returns the current user-facing error message, or "" when none.
func (v *SessionDetailsView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// IsLoading reports whether a Load is in flight.
func (v *SessionDetailsView) IsLoading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}
