package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinemabooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingAPI struct {
	mu           sync.Mutex
	bookings     []domain.Booking
	settings     domain.Settings
	bookingsErr  error
	settingsErr  error
	payErr       error
	fetchCalls   int
	paidBookings []string
}

func (f *fakeBookingAPI) FetchBookings(ctx context.Context) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.bookingsErr != nil {
		return nil, f.bookingsErr
	}
	return f.bookings, nil
}

func (f *fakeBookingAPI) FetchSettings(ctx context.Context) (domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settingsErr != nil {
		return domain.Settings{}, f.settingsErr
	}
	return f.settings, nil
}

func (f *fakeBookingAPI) PayBooking(ctx context.Context, bookingID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.payErr != nil {
		return f.payErr
	}
	f.paidBookings = append(f.paidBookings, bookingID)
	return nil
}

type fakeDetailsFetcher struct {
	mu      sync.Mutex
	byID    map[int]*domain.SessionDetails
	err     error
	fetched []int
}

func (f *fakeDetailsFetcher) FetchSessionDetails(ctx context.Context, id int) (*domain.SessionDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, id)
	if f.err != nil {
		return nil, f.err
	}
	details, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return details, nil
}

func fixedClock(t *testing.T, value string) func() time.Time {
	t.Helper()
	now := mustParse(t, value)
	return func() time.Time { return now }
}

func testCatalog(t *testing.T) func() Catalog {
	sessions := map[int]domain.Session{
		10: {ID: 10, MovieID: 100, CinemaID: 200, StartTime: mustParse(t, "2025-03-21T10:00:00Z")},
	}
	return func() Catalog {
		return Catalog{
			Movies: []domain.Movie{
				{ID: 100, Title: "Movie A", Year: 2024, LengthMinutes: 120},
				{ID: 101, Title: "Movie B", Year: 2024, LengthMinutes: 120},
			},
			Cinemas: []domain.Cinema{
				{ID: 200, Name: "Cinema A", Address: "Address A"},
				{ID: 201, Name: "Cinema B", Address: "Address B"},
			},
			Sessions: sessions,
		}
	}
}

func TestBookings_LoadAllGroupsBookings(t *testing.T) {
	api := &fakeBookingAPI{
		bookings: []domain.Booking{
			{
				ID: "1", UserID: 1, MovieSessionID: 10, SessionID: 10,
				BookedAt: mustParse(t, "2025-03-20T10:00:00Z"),
				Seats:    []domain.Seat{{RowNumber: 1, SeatNumber: 1}},
				IsPaid:   false,
			},
			{
				ID: "2", UserID: 1, MovieSessionID: 11, SessionID: 11,
				BookedAt: mustParse(t, "2025-03-15T10:00:00Z"),
				Seats:    []domain.Seat{{RowNumber: 1, SeatNumber: 2}},
				IsPaid:   true,
			},
		},
		settings: domain.Settings{BookingPaymentTimeSeconds: 600},
	}
	details := &fakeDetailsFetcher{byID: map[int]*domain.SessionDetails{
		11: {ID: 11, MovieID: 101, CinemaID: 201, StartTime: mustParse(t, "2025-03-22T10:00:00Z")},
	}}

	b := NewBookings(testCatalog(t), api, details, fixedClock(t, "2025-03-19T10:00:00Z"))
	b.LoadAll(context.Background())

	grouped := b.Grouped()
	assert.Len(t, grouped.Unpaid, 1)
	assert.Len(t, grouped.Upcoming, 1)
	assert.Len(t, grouped.Past, 0)
	assert.Empty(t, b.Err())
	assert.False(t, b.IsLoading())
}

func TestBookings_LoadAllDeduplicatesSessionLookups(t *testing.T) {
	booking := domain.Booking{
		ID: "1", UserID: 1, MovieSessionID: 11, SessionID: 11,
		BookedAt: mustParse(t, "2025-03-15T10:00:00Z"), IsPaid: true,
	}
	other := booking
	other.ID = "2"
	api := &fakeBookingAPI{bookings: []domain.Booking{booking, other}}
	details := &fakeDetailsFetcher{byID: map[int]*domain.SessionDetails{
		11: {ID: 11, StartTime: mustParse(t, "2025-03-22T10:00:00Z")},
	}}

	b := NewBookings(testCatalog(t), api, details, fixedClock(t, "2025-03-19T10:00:00Z"))
	b.LoadAll(context.Background())

	assert.Equal(t, []int{11}, details.fetched, "shared session id must be fetched once")
}

func TestBookings_LoadAllSetsErrorOnFailure(t *testing.T) {
	api := &fakeBookingAPI{
		bookingsErr: errors.New("network error"),
		settings:    domain.Settings{BookingPaymentTimeSeconds: 600},
	}
	b := NewBookings(testCatalog(t), api, &fakeDetailsFetcher{}, fixedClock(t, "2025-03-19T10:00:00Z"))

	prior := []domain.Booking{{ID: "kept", IsPaid: true}}
	b.SetBookings(prior)

	b.LoadAll(context.Background())

	assert.Equal(t, "Не удалось загрузить список билетов", b.Err())
	assert.False(t, b.IsLoading())
	assert.Equal(t, prior, b.Bookings(), "prior list must not be overwritten on failure")
}

func TestBookings_SettingsFailureFailsWholeLoad(t *testing.T) {
	api := &fakeBookingAPI{settingsErr: errors.New("boom")}
	b := NewBookings(testCatalog(t), api, &fakeDetailsFetcher{}, fixedClock(t, "2025-03-19T10:00:00Z"))

	b.LoadAll(context.Background())

	assert.Equal(t, "Не удалось загрузить список билетов", b.Err())
}

func TestBookings_FormatSeats(t *testing.T) {
	b := NewBookings(testCatalog(t), &fakeBookingAPI{}, &fakeDetailsFetcher{}, nil)

	label := b.FormatSeats([]domain.Seat{
		{RowNumber: 2, SeatNumber: 5},
		{RowNumber: 3, SeatNumber: 1},
	})
	assert.Equal(t, "р2 м5, р3 м1", label)

	assert.Equal(t, "", b.FormatSeats(nil))
}

func TestBookings_ClassifiesPaidBookingInPast(t *testing.T) {
	b := NewBookings(testCatalog(t), &fakeBookingAPI{}, &fakeDetailsFetcher{}, fixedClock(t, "2025-03-21T12:00:00Z"))

	b.SetBookings([]domain.Booking{{
		ID: "past", UserID: 1, MovieSessionID: 10, SessionID: 10,
		BookedAt: mustParse(t, "2025-03-20T10:00:00Z"),
		Seats:    []domain.Seat{{RowNumber: 1, SeatNumber: 1}},
		IsPaid:   true,
	}})

	grouped := b.Grouped()
	assert.Len(t, grouped.Past, 1)
	assert.Len(t, grouped.Upcoming, 0)
}

func TestBookings_UnresolvedSessionFallsToPast(t *testing.T) {
	api := &fakeBookingAPI{bookings: []domain.Booking{{
		ID: "orphan", UserID: 1, MovieSessionID: 77, SessionID: 77,
		BookedAt: mustParse(t, "2025-03-15T10:00:00Z"), IsPaid: true,
	}}}
	details := &fakeDetailsFetcher{err: domain.ErrNotFound}

	b := NewBookings(testCatalog(t), api, details, fixedClock(t, "2025-03-19T10:00:00Z"))
	b.LoadAll(context.Background())

	grouped := b.Grouped()
	require.Len(t, grouped.Past, 1, "booking with unresolvable session must not be dropped")
	assert.Equal(t, "orphan", grouped.Past[0].ID)
	assert.Empty(t, b.Err(), "per-session lookup failures must not surface")
}

func TestBookings_NoExpiresAtWithoutSettings(t *testing.T) {
	b := NewBookings(testCatalog(t), &fakeBookingAPI{}, &fakeDetailsFetcher{}, fixedClock(t, "2025-03-19T10:00:00Z"))

	b.SetBookings([]domain.Booking{{
		ID: "unpaid", UserID: 1, MovieSessionID: 10, SessionID: 10,
		BookedAt: mustParse(t, "2025-03-20T10:00:00Z"),
		IsPaid:   false,
	}})

	grouped := b.Grouped()
	require.Len(t, grouped.Unpaid, 1)
	assert.Nil(t, grouped.Unpaid[0].ExpiresAt)
}

func TestBookings_ExpiresAtFromSettings(t *testing.T) {
	bookedAt := mustParse(t, "2025-03-20T10:00:00Z")
	api := &fakeBookingAPI{
		bookings: []domain.Booking{{
			ID: "unpaid", UserID: 1, MovieSessionID: 10, SessionID: 10,
			BookedAt: bookedAt, IsPaid: false,
		}},
		settings: domain.Settings{BookingPaymentTimeSeconds: 600},
	}

	b := NewBookings(testCatalog(t), api, &fakeDetailsFetcher{}, fixedClock(t, "2025-03-19T10:00:00Z"))
	b.LoadAll(context.Background())

	grouped := b.Grouped()
	require.Len(t, grouped.Unpaid, 1)
	require.NotNil(t, grouped.Unpaid[0].ExpiresAt)
	assert.Equal(t, bookedAt.Add(600*time.Second), *grouped.Unpaid[0].ExpiresAt)
}

func TestBookings_PayReloadsList(t *testing.T) {
	api := &fakeBookingAPI{settings: domain.Settings{BookingPaymentTimeSeconds: 600}}
	b := NewBookings(testCatalog(t), api, &fakeDetailsFetcher{}, fixedClock(t, "2025-03-19T10:00:00Z"))

	err := b.Pay(context.Background(), "booking-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"booking-1"}, api.paidBookings)
	assert.Equal(t, 1, api.fetchCalls, "successful payment must trigger a reload")
}

func TestBookings_PayErrorDoesNotReload(t *testing.T) {
	api := &fakeBookingAPI{payErr: errors.New("declined")}
	b := NewBookings(testCatalog(t), api, &fakeDetailsFetcher{}, nil)

	err := b.Pay(context.Background(), "booking-1")
	require.Error(t, err)
	assert.Zero(t, api.fetchCalls)
}

func TestBookings_RemoveBooking(t *testing.T) {
	b := NewBookings(testCatalog(t), &fakeBookingAPI{}, &fakeDetailsFetcher{}, nil)

	b.SetBookings([]domain.Booking{{ID: "1"}, {ID: "2"}})
	b.RemoveBooking("1")

	list := b.Bookings()
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)
}
