package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cinemabooking/internal/domain"
)

// bookingsLoadError is the user-facing message for any failure while loading
// the bookings list or settings.
const bookingsLoadError = "Не удалось загрузить список билетов"

// Catalog is the browse data the caller has already loaded. The classifier
// resolves session start times from here first and only fetches details for
// sessions the catalog does not know.
type Catalog struct {
	Movies   []domain.Movie
	Cinemas  []domain.Cinema
	Sessions map[int]domain.Session
}

// Bookings loads the user's bookings and derives their lifecycle state
// (unpaid with expiry, upcoming, past) against an injected clock.
//
// All methods are safe for use from a single logical task; a mutex guards
// state so the concurrent fetches inside LoadAll stay well-ordered.
type Bookings struct {
	api     domain.BookingFetcher
	details domain.SessionDetailsFetcher
	catalog func() Catalog
	clock   func() time.Time

	mu       sync.Mutex
	bookings []domain.Booking
	settings *domain.Settings
	// starts caches start times fetched per distinct session id during the
	// last successful LoadAll.
	starts  map[int]time.Time
	errMsg  string
	loading bool
	gen     uint64
}

// NewBookings creates the bookings controller. catalog provides the caller's
// current browse data; clock may be nil, defaulting to time.Now.
func NewBookings(catalog func() Catalog, api domain.BookingFetcher, details domain.SessionDetailsFetcher, clock func() time.Time) *Bookings {
	if clock == nil {
		clock = time.Now
	}
	return &Bookings{
		api:     api,
		details: details,
		catalog: catalog,
		clock:   clock,
		starts:  make(map[int]time.Time),
	}
}

// LoadAll fetches the bookings list and settings concurrently, then resolves
// start times for sessions the catalog does not cover. On any fetch failure
// the previous list is left untouched and Err reports a fixed message. A
// LoadAll issued later always wins over a stale in-flight one.
func (b *Bookings) LoadAll(ctx context.Context) {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.loading = true
	b.errMsg = ""
	b.mu.Unlock()

	var (
		wg       sync.WaitGroup
		list     []domain.Booking
		settings domain.Settings
		listErr  error
		setErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		list, listErr = b.api.FetchBookings(ctx)
	}()
	go func() {
		defer wg.Done()
		settings, setErr = b.api.FetchSettings(ctx)
	}()
	wg.Wait()

	if listErr != nil || setErr != nil {
		b.mu.Lock()
		if gen == b.gen {
			b.errMsg = bookingsLoadError
			b.loading = false
		}
		b.mu.Unlock()
		return
	}

	starts := b.resolveStarts(ctx, list)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return
	}
	b.bookings = list
	b.settings = &settings
	b.starts = starts
	b.errMsg = ""
	b.loading = false
}

// resolveStarts fetches details once per distinct session id not present in
// the catalog. A session that cannot be resolved is simply skipped: the
// booking still classifies, it just falls through to the past bucket.
func (b *Bookings) resolveStarts(ctx context.Context, list []domain.Booking) map[int]time.Time {
	catalog := b.catalog()
	starts := make(map[int]time.Time)
	for _, bk := range list {
		id := sessionIDOf(bk)
		if id == 0 {
			continue
		}
		if _, ok := catalog.Sessions[id]; ok {
			continue
		}
		if _, ok := starts[id]; ok {
			continue
		}
		details, err := b.details.FetchSessionDetails(ctx, id)
		if err != nil {
			continue
		}
		starts[id] = details.StartTime
	}
	return starts
}

// Pay delegates payment to the API and, on success, reloads the whole list so
// state is resynchronized with the server. IsPaid is never flipped locally.
func (b *Bookings) Pay(ctx context.Context, bookingID string) error {
	if err := b.api.PayBooking(ctx, bookingID); err != nil {
		return fmt.Errorf("pay booking: %w", err)
	}
	b.LoadAll(ctx)
	return nil
}

// RemoveBooking drops the booking with the given id from the local list.
// No network call is made; callers use this after a confirmed server-side
// cancellation.
func (b *Bookings) RemoveBooking(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.bookings[:0:0]
	for _, bk := range b.bookings {
		if bk.ID != id {
			kept = append(kept, bk)
		}
	}
	b.bookings = kept
}

// SetBookings replaces the local bookings list without touching settings or
// error state. Used when the caller patches the list locally.
func (b *Bookings) SetBookings(list []domain.Booking) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bookings = list
}

// Bookings returns the current local bookings list.
func (b *Bookings) Bookings() []domain.Booking {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bookings
}

// Err returns the current user-facing error message, or "" when none.
func (b *Bookings) Err() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMsg
}

// IsLoading reports whether a LoadAll is in flight.
func (b *Bookings) IsLoading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Grouped classifies the current bookings against the clock's "now".
//
// Unpaid bookings go to Unpaid; ExpiresAt is BookedAt plus the payment window
// and is only set once settings have loaded. Paid bookings with a resolved
// session start in the future go to Upcoming; everything else, including paid
// bookings whose session could not be resolved, goes to Past.
func (b *Bookings) Grouped() domain.GroupedBookings {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock()
	catalog := b.catalog()
	grouped := domain.GroupedBookings{
		Unpaid:   []domain.BookingView{},
		Upcoming: []domain.Booking{},
		Past:     []domain.Booking{},
	}
	for _, bk := range b.bookings {
		if !bk.IsPaid {
			view := domain.BookingView{Booking: bk}
			if b.settings != nil {
				expires := bk.BookedAt.Add(time.Duration(b.settings.BookingPaymentTimeSeconds) * time.Second)
				view.ExpiresAt = &expires
			}
			grouped.Unpaid = append(grouped.Unpaid, view)
			continue
		}
		start, ok := b.startOf(catalog, bk)
		if ok && start.After(now) {
			grouped.Upcoming = append(grouped.Upcoming, bk)
		} else {
			grouped.Past = append(grouped.Past, bk)
		}
	}
	return grouped
}

func (b *Bookings) startOf(catalog Catalog, bk domain.Booking) (time.Time, bool) {
	id := sessionIDOf(bk)
	if s, ok := catalog.Sessions[id]; ok {
		return s.StartTime, true
	}
	if start, ok := b.starts[id]; ok {
		return start, true
	}
	return time.Time{}, false
}

func sessionIDOf(bk domain.Booking) int {
	if bk.MovieSessionID != 0 {
		return bk.MovieSessionID
	}
	return bk.SessionID
}

// FormatSeats renders seats as a human label, e.g. "р2 м5, р3 м1".
func (b *Bookings) FormatSeats(seats []domain.Seat) string {
	parts := make([]string, 0, len(seats))
	for _, s := range seats {
		parts = append(parts, fmt.Sprintf("р%d м%d", s.RowNumber, s.SeatNumber))
	}
	return strings.Join(parts, ", ")
}
