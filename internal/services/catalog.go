package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinemabooking/internal/domain"
)

type catalogService struct {
	movieRepo    domain.MovieRepository
	cinemaRepo   domain.CinemaRepository
	sessionRepo  domain.SessionRepository
	bookingRepo  domain.BookingRepository
	settingsRepo domain.SettingsRepository
	now          func() time.Time
}

// NewCatalogService creates a CatalogService backed by the given repositories.
func NewCatalogService(
	movieRepo domain.MovieRepository,
	cinemaRepo domain.CinemaRepository,
	sessionRepo domain.SessionRepository,
	bookingRepo domain.BookingRepository,
	settingsRepo domain.SettingsRepository,
) domain.CatalogService {
	return &catalogService{
		movieRepo:    movieRepo,
		cinemaRepo:   cinemaRepo,
		sessionRepo:  sessionRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *catalogService) ListMovies(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.movieRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (s *catalogService) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}
	return movie, nil
}

func (s *catalogService) ListCinemas(ctx context.Context) ([]*domain.Cinema, error) {
	cinemas, err := s.cinemaRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cinemas: %w", err)
	}
	return cinemas, nil
}

func (s *catalogService) GetCinema(ctx context.Context, id int) (*domain.Cinema, error) {
	cinema, err := s.cinemaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cinema: %w", err)
	}
	return cinema, nil
}

func (s *catalogService) ListMovieSessions(ctx context.Context, movieID int) ([]*domain.Session, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movie: %w", err)
	}
	sessions, err := s.sessionRepo.ListByMovieID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("list movie sessions: %w", err)
	}
	return sessions, nil
}

func (s *catalogService) ListCinemaSessions(ctx context.Context, cinemaID int) ([]*domain.Session, error) {
	if _, err := s.cinemaRepo.GetByID(ctx, cinemaID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cinema: %w", err)
	}
	sessions, err := s.sessionRepo.ListByCinemaID(ctx, cinemaID)
	if err != nil {
		return nil, fmt.Errorf("list cinema sessions: %w", err)
	}
	return sessions, nil
}

func (s *catalogService) GetSessionDetails(ctx context.Context, id int) (*domain.SessionDetails, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	seatMap, err := s.sessionRepo.GetSeatMap(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seat map: %w", err)
	}
	window, err := paymentWindow(ctx, s.settingsRepo)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookingRepo.ListBookedSeats(ctx, id, s.now().Add(-window))
	if err != nil {
		return nil, fmt.Errorf("list booked seats: %w", err)
	}
	return &domain.SessionDetails{
		ID:          session.ID,
		MovieID:     session.MovieID,
		CinemaID:    session.CinemaID,
		StartTime:   session.StartTime,
		Seats:       *seatMap,
		BookedSeats: booked,
	}, nil
}
