package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cinemabooking/internal/domain"
)

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

func (r *sessionRepository) ListByMovieID(ctx context.Context, movieID int) ([]*domain.Session, error) {
	query := `
		SELECT id, movie_id, cinema_id, start_time
		FROM movie_sessions
		WHERE movie_id = $1
		ORDER BY start_time
	`
	return r.list(ctx, query, movieID)
}

func (r *sessionRepository) ListByCinemaID(ctx context.Context, cinemaID int) ([]*domain.Session, error) {
	query := `
		SELECT id, movie_id, cinema_id, start_time
		FROM movie_sessions
		WHERE cinema_id = $1
		ORDER BY start_time
	`
	return r.list(ctx, query, cinemaID)
}

func (r *sessionRepository) list(ctx context.Context, query string, arg int) ([]*domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s := &domain.Session{}
		if err := rows.Scan(&s.ID, &s.MovieID, &s.CinemaID, &s.StartTime); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) GetByID(ctx context.Context, id int) (*domain.Session, error) {
	query := `
		SELECT id, movie_id, cinema_id, start_time
		FROM movie_sessions
		WHERE id = $1
	`
	s := &domain.Session{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.MovieID, &s.CinemaID, &s.StartTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) GetSeatMap(ctx context.Context, id int) (*domain.SeatMap, error) {
	query := `
		SELECT seat_rows, seats_per_row
		FROM movie_sessions
		WHERE id = $1
	`
	sm := &domain.SeatMap{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&sm.Rows, &sm.SeatsPerRow)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sm, nil
}
