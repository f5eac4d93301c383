package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cinemabooking/internal/domain"
)

type movieRepository struct {
	DB *sql.DB
}

func NewMovieRepository(db *sql.DB) domain.MovieRepository {
	return &movieRepository{DB: db}
}

func (r *movieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	query := `
		SELECT id, title, description, rating, year, length_minutes, poster_image
		FROM movies
		ORDER BY title
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]*domain.Movie, 0)
	for rows.Next() {
		m := &domain.Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Rating, &m.Year, &m.LengthMinutes, &m.PosterImage); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *movieRepository) GetByID(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, title, description, rating, year, length_minutes, poster_image
		FROM movies
		WHERE id = $1
	`
	m := &domain.Movie{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Title, &m.Description, &m.Rating, &m.Year, &m.LengthMinutes, &m.PosterImage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}
