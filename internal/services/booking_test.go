package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinemabooking/internal/domain"
)

type mockBookingRepository struct {
	bookings    map[string]*domain.Booking
	booked      []domain.Seat
	created     *domain.Booking
	createErr   error
	markedPaid  []string
	deleted     []string
	releasedCut time.Time
	err         error
}

func (m *mockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if m.createErr != nil {
		return m.createErr
	}
	b.ID = "bk-new"
	m.created = b
	return nil
}

func (m *mockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func (m *mockBookingRepository) ListByUserID(ctx context.Context, userID int) ([]*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range m.bookings {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBookingRepository) ListBookedSeats(ctx context.Context, sessionID int, unpaidSince time.Time) ([]domain.Seat, error) {
	return m.booked, nil
}

func (m *mockBookingRepository) DeleteExpiredUnpaid(ctx context.Context, sessionID int, before time.Time) error {
	m.releasedCut = before
	return nil
}

func (m *mockBookingRepository) MarkPaid(ctx context.Context, id string) error {
	m.markedPaid = append(m.markedPaid, id)
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockSessionRepository struct {
	sessions map[int]*domain.Session
	seatMap  *domain.SeatMap
	err      error
}

func (m *mockSessionRepository) ListByMovieID(ctx context.Context, movieID int) ([]*domain.Session, error) {
	return nil, m.err
}

func (m *mockSessionRepository) ListByCinemaID(ctx context.Context, cinemaID int) ([]*domain.Session, error) {
	return nil, m.err
}

func (m *mockSessionRepository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepository) GetSeatMap(ctx context.Context, id int) (*domain.SeatMap, error) {
	if m.seatMap == nil {
		return nil, domain.ErrNotFound
	}
	return m.seatMap, nil
}

type mockSettingsRepository struct {
	settings *domain.Settings
	err      error
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return nil, domain.ErrNotFound
	}
	return m.settings, nil
}

type mockMovieRepository struct {
	movies map[int]*domain.Movie
}

func (m *mockMovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	result := make([]*domain.Movie, 0)
	for _, movie := range m.movies {
		result = append(result, movie)
	}
	return result, nil
}

func (m *mockMovieRepository) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	movie, ok := m.movies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return movie, nil
}

type mockCinemaRepository struct {
	cinemas map[int]*domain.Cinema
}

func (m *mockCinemaRepository) List(ctx context.Context) ([]*domain.Cinema, error) {
	result := make([]*domain.Cinema, 0)
	for _, c := range m.cinemas {
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCinemaRepository) GetByID(ctx context.Context, id int) (*domain.Cinema, error) {
	c, ok := m.cinemas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

type mockUserRepository struct {
	users     map[int]*domain.User
	byEmail   map[string]*domain.User
	createErr error
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = 101
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

type mockEmailService struct {
	welcomes      []*domain.WelcomeEmailData
	confirmations []*domain.BookingConfirmationEmailData
	err           error
}

func (m *mockEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, data)
	return nil
}

func (m *mockEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.confirmations = append(m.confirmations, data)
	return nil
}

func newTestBookingService(bookingRepo *mockBookingRepository, sessionRepo *mockSessionRepository, settingsRepo *mockSettingsRepository, emails domain.EmailService, now time.Time) *bookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		movieRepo:    &mockMovieRepository{movies: map[int]*domain.Movie{1: {ID: 1, Title: "Dune"}}},
		cinemaRepo:   &mockCinemaRepository{cinemas: map[int]*domain.Cinema{3: {ID: 3, Name: "Aurora"}}},
		userRepo:     &mockUserRepository{users: map[int]*domain.User{7: {ID: 7, Email: "u@example.com", Username: "u"}}},
		emails:       emails,
		now:          func() time.Time { return now },
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	now := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	session := &domain.Session{ID: 42, MovieID: 1, CinemaID: 3, StartTime: now.Add(24 * time.Hour)}

	tests := []struct {
		name        string
		bookingRepo *mockBookingRepository
		sessionRepo *mockSessionRepository
		sessionID   int
		seats       []domain.Seat
		wantErr     error
	}{
		{
			name:        "success",
			bookingRepo: &mockBookingRepository{},
			sessionRepo: &mockSessionRepository{sessions: map[int]*domain.Session{42: session}, seatMap: &domain.SeatMap{Rows: 8, SeatsPerRow: 12}},
			sessionID:   42,
			seats:       []domain.Seat{{RowNumber: 2, SeatNumber: 5}},
		},
		{
			name:        "session not found",
			bookingRepo: &mockBookingRepository{},
			sessionRepo: &mockSessionRepository{sessions: map[int]*domain.Session{}},
			sessionID:   99,
			seats:       []domain.Seat{{RowNumber: 2, SeatNumber: 5}},
			wantErr:     domain.ErrNotFound,
		},
		{
			name:        "no seats",
			bookingRepo: &mockBookingRepository{},
			sessionRepo: &mockSessionRepository{sessions: map[int]*domain.Session{42: session}, seatMap: &domain.SeatMap{Rows: 8, SeatsPerRow: 12}},
			sessionID:   42,
			seats:       []domain.Seat{},
			wantErr:     domain.ErrInvalidInput,
		},
		{
			name:        "seat outside hall",
			bookingRepo: &mockBookingRepository{},
			sessionRepo: &mockSessionRepository{sessions: map[int]*domain.Session{42: session}, seatMap: &domain.SeatMap{Rows: 8, SeatsPerRow: 12}},
			sessionID:   42,
			seats:       []domain.Seat{{RowNumber: 9, SeatNumber: 1}},
			wantErr:     domain.ErrInvalidInput,
		},
		{
			name:        "duplicate seat in request",
			bookingRepo: &mockBookingRepository{},
			sessionRepo: &mockSessionRepository{sessions: map[int]*domain.Session{42: session}, seatMap: &domain.SeatMap{Rows: 8, SeatsPerRow: 12}},
			sessionID:   42,
			seats:       []domain.Seat{{RowNumber: 2, SeatNumber: 5}, {RowNumber: 2, SeatNumber: 5}},
			wantErr:     domain.ErrInvalidInput,
		},
		{
			name:        "seat already booked",
			bookingRepo: &mockBookingRepository{booked: []domain.Seat{{RowNumber: 2, SeatNumber: 5}}},
			sessionRepo: &mockSessionRepository{sessions: map[int]*domain.Session{42: session}, seatMap: &domain.SeatMap{Rows: 8, SeatsPerRow: 12}},
			sessionID:   42,
			seats:       []domain.Seat{{RowNumber: 2, SeatNumber: 5}},
			wantErr:     domain.ErrSeatsTaken,
		},
		{
			name:        "conflict detected on insert",
			bookingRepo: &mockBookingRepository{createErr: domain.ErrSeatsTaken},
			sessionRepo: &mockSessionRepository{sessions: map[int]*domain.Session{42: session}, seatMap: &domain.SeatMap{Rows: 8, SeatsPerRow: 12}},
			sessionID:   42,
			seats:       []domain.Seat{{RowNumber: 2, SeatNumber: 5}},
			wantErr:     domain.ErrSeatsTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &mockSettingsRepository{settings: &domain.Settings{BookingPaymentTimeSeconds: 600}}
			svc := newTestBookingService(tt.bookingRepo, tt.sessionRepo, settings, nil, now)

			booking, err := svc.CreateBooking(context.Background(), 7, tt.sessionID, tt.seats)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if booking.ID != "bk-new" {
				t.Fatalf("expected repository-assigned id, got %q", booking.ID)
			}
			if !booking.BookedAt.Equal(now) {
				t.Fatalf("expected booked_at %v, got %v", now, booking.BookedAt)
			}
			wantCut := now.Add(-600 * time.Second)
			if !tt.bookingRepo.releasedCut.Equal(wantCut) {
				t.Fatalf("expected expired bookings released before %v, got %v", wantCut, tt.bookingRepo.releasedCut)
			}
		})
	}
}

func TestBookingService_PayBooking(t *testing.T) {
	now := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	session := &domain.Session{ID: 42, MovieID: 1, CinemaID: 3, StartTime: now.Add(24 * time.Hour)}

	tests := []struct {
		name     string
		booking  *domain.Booking
		userID   int
		wantErr  error
		wantPaid bool
	}{
		{
			name:     "success",
			booking:  &domain.Booking{ID: "bk-1", UserID: 7, MovieSessionID: 42, BookedAt: now.Add(-time.Minute), Seats: []domain.Seat{{RowNumber: 2, SeatNumber: 5}}},
			userID:   7,
			wantPaid: true,
		},
		{
			name:    "expired",
			booking: &domain.Booking{ID: "bk-1", UserID: 7, MovieSessionID: 42, BookedAt: now.Add(-11 * time.Minute)},
			userID:  7,
			wantErr: domain.ErrBookingExpired,
		},
		{
			name:    "wrong user",
			booking: &domain.Booking{ID: "bk-1", UserID: 8, MovieSessionID: 42, BookedAt: now.Add(-time.Minute)},
			userID:  7,
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookingRepo := &mockBookingRepository{bookings: map[string]*domain.Booking{tt.booking.ID: tt.booking}}
			sessionRepo := &mockSessionRepository{sessions: map[int]*domain.Session{42: session}}
			settings := &mockSettingsRepository{settings: &domain.Settings{BookingPaymentTimeSeconds: 600}}
			emails := &mockEmailService{}
			svc := newTestBookingService(bookingRepo, sessionRepo, settings, emails, now)

			err := svc.PayBooking(context.Background(), tt.userID, tt.booking.ID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if errors.Is(tt.wantErr, domain.ErrBookingExpired) && len(bookingRepo.deleted) != 1 {
					t.Fatalf("expected expired booking deleted, got %v", bookingRepo.deleted)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantPaid && len(bookingRepo.markedPaid) != 1 {
				t.Fatalf("expected booking marked paid, got %v", bookingRepo.markedPaid)
			}
			if len(emails.confirmations) != 1 {
				t.Fatalf("expected 1 confirmation email, got %d", len(emails.confirmations))
			}
			got := emails.confirmations[0]
			if got.MovieTitle != "Dune" || got.CinemaName != "Aurora" {
				t.Fatalf("unexpected confirmation data: %+v", got)
			}
			if got.Seats != "р2 м5" {
				t.Fatalf("unexpected seats string: %q", got.Seats)
			}
		})
	}
}

func TestBookingService_PayBooking_NotFound(t *testing.T) {
	now := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	bookingRepo := &mockBookingRepository{bookings: map[string]*domain.Booking{}}
	settings := &mockSettingsRepository{settings: &domain.Settings{BookingPaymentTimeSeconds: 600}}
	svc := newTestBookingService(bookingRepo, &mockSessionRepository{}, settings, nil, now)

	err := svc.PayBooking(context.Background(), 7, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingService_PayBooking_AlreadyPaidIsNoop(t *testing.T) {
	now := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	booking := &domain.Booking{ID: "bk-1", UserID: 7, MovieSessionID: 42, BookedAt: now.Add(-time.Minute), IsPaid: true}
	bookingRepo := &mockBookingRepository{bookings: map[string]*domain.Booking{"bk-1": booking}}
	settings := &mockSettingsRepository{settings: &domain.Settings{BookingPaymentTimeSeconds: 600}}
	emails := &mockEmailService{}
	svc := newTestBookingService(bookingRepo, &mockSessionRepository{}, settings, emails, now)

	if err := svc.PayBooking(context.Background(), 7, "bk-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookingRepo.markedPaid) != 0 {
		t.Fatalf("expected no MarkPaid call, got %v", bookingRepo.markedPaid)
	}
	if len(emails.confirmations) != 0 {
		t.Fatalf("expected no confirmation email, got %d", len(emails.confirmations))
	}
}

func TestBookingService_GetSettings_DefaultsWhenMissing(t *testing.T) {
	now := time.Date(2025, 3, 20, 18, 0, 0, 0, time.UTC)
	svc := newTestBookingService(&mockBookingRepository{}, &mockSessionRepository{}, &mockSettingsRepository{}, nil, now)

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.BookingPaymentTimeSeconds != 600 {
		t.Fatalf("expected default window 600, got %d", settings.BookingPaymentTimeSeconds)
	}
}
