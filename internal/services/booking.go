package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cinemabooking/internal/domain"
)

// defaultPaymentWindow applies when no settings row exists yet.
const defaultPaymentWindow = 10 * time.Minute

type bookingService struct {
	bookingRepo  domain.BookingRepository
	sessionRepo  domain.SessionRepository
	settingsRepo domain.SettingsRepository
	movieRepo    domain.MovieRepository
	cinemaRepo   domain.CinemaRepository
	userRepo     domain.UserRepository
	emails       domain.EmailService
	now          func() time.Time
}

// NewBookingService creates a BookingService with the given repositories.
// The EmailService may be nil, in which case no confirmation emails are sent.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	sessionRepo domain.SessionRepository,
	settingsRepo domain.SettingsRepository,
	movieRepo domain.MovieRepository,
	cinemaRepo domain.CinemaRepository,
	userRepo domain.UserRepository,
	emails domain.EmailService,
) domain.BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		movieRepo:    movieRepo,
		cinemaRepo:   cinemaRepo,
		userRepo:     userRepo,
		emails:       emails,
		now:          time.Now,
	}
}

func paymentWindow(ctx context.Context, repo domain.SettingsRepository) (time.Duration, error) {
	settings, err := repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return defaultPaymentWindow, nil
		}
		return 0, fmt.Errorf("get settings: %w", err)
	}
	return time.Duration(settings.BookingPaymentTimeSeconds) * time.Second, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, sessionID int, seats []domain.Seat) (*domain.Booking, error) {
	if len(seats) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.sessionRepo.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	seatMap, err := s.sessionRepo.GetSeatMap(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get seat map: %w", err)
	}
	seen := make(map[domain.Seat]bool, len(seats))
	for _, seat := range seats {
		if seat.RowNumber < 1 || seat.RowNumber > seatMap.Rows ||
			seat.SeatNumber < 1 || seat.SeatNumber > seatMap.SeatsPerRow {
			return nil, domain.ErrInvalidInput
		}
		if seen[seat] {
			return nil, domain.ErrInvalidInput
		}
		seen[seat] = true
	}

	window, err := paymentWindow(ctx, s.settingsRepo)
	if err != nil {
		return nil, err
	}
	now := s.now()
	// Release seats held by abandoned bookings so the unique index only
	// rejects live conflicts.
	if err := s.bookingRepo.DeleteExpiredUnpaid(ctx, sessionID, now.Add(-window)); err != nil {
		return nil, fmt.Errorf("release expired bookings: %w", err)
	}
	booked, err := s.bookingRepo.ListBookedSeats(ctx, sessionID, now.Add(-window))
	if err != nil {
		return nil, fmt.Errorf("list booked seats: %w", err)
	}
	for _, seat := range seats {
		if domain.ContainsSeat(booked, seat) {
			return nil, domain.ErrSeatsTaken
		}
	}

	booking := &domain.Booking{
		UserID:         userID,
		MovieSessionID: sessionID,
		SessionID:      sessionID,
		BookedAt:       now,
		Seats:          seats,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrSeatsTaken) {
			return nil, domain.ErrSeatsTaken
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID int) ([]*domain.Booking, error) {
	bookings, err := s.bookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) PayBooking(ctx context.Context, userID int, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get booking: %w", err)
	}
	if booking.UserID != userID {
		return domain.ErrForbidden
	}
	if booking.IsPaid {
		return nil
	}
	window, err := paymentWindow(ctx, s.settingsRepo)
	if err != nil {
		return err
	}
	if s.now().After(booking.BookedAt.Add(window)) {
		if err := s.bookingRepo.Delete(ctx, bookingID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete expired booking: %w", err)
		}
		return domain.ErrBookingExpired
	}
	if err := s.bookingRepo.MarkPaid(ctx, bookingID); err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	s.sendConfirmation(ctx, booking)
	return nil
}

func (s *bookingService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Settings{BookingPaymentTimeSeconds: int(defaultPaymentWindow / time.Second)}, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

// sendConfirmation is best effort: a failed email never fails the payment.
func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	if s.emails == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		log.Printf("[EMAIL] skipping confirmation for booking %s: %v", booking.ID, err)
		return
	}
	session, err := s.sessionRepo.GetByID(ctx, booking.MovieSessionID)
	if err != nil {
		log.Printf("[EMAIL] skipping confirmation for booking %s: %v", booking.ID, err)
		return
	}
	movieTitle := ""
	if movie, err := s.movieRepo.GetByID(ctx, session.MovieID); err == nil {
		movieTitle = movie.Title
	}
	cinemaName := ""
	if cinema, err := s.cinemaRepo.GetByID(ctx, session.CinemaID); err == nil {
		cinemaName = cinema.Name
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      user.Email,
		Username:   user.Username,
		MovieTitle: movieTitle,
		CinemaName: cinemaName,
		StartTime:  session.StartTime.Format("02.01.2006 15:04"),
		Seats:      formatSeats(booking.Seats),
	}
	if err := s.emails.SendBookingConfirmation(ctx, data); err != nil {
		log.Printf("[EMAIL] booking confirmation for %s failed: %v", booking.ID, err)
	}
}

func formatSeats(seats []domain.Seat) string {
	parts := make([]string, len(seats))
	for i, seat := range seats {
		parts[i] = fmt.Sprintf("р%d м%d", seat.RowNumber, seat.SeatNumber)
	}
	return strings.Join(parts, ", ")
}
