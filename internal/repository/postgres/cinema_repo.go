package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cinemabooking/internal/domain"
)

type cinemaRepository struct {
	DB *sql.DB
}

func NewCinemaRepository(db *sql.DB) domain.CinemaRepository {
	return &cinemaRepository{DB: db}
}

func (r *cinemaRepository) List(ctx context.Context) ([]*domain.Cinema, error) {
	query := `
		SELECT id, name, address
		FROM cinemas
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cinemas := make([]*domain.Cinema, 0)
	for rows.Next() {
		c := &domain.Cinema{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Address); err != nil {
			return nil, err
		}
		cinemas = append(cinemas, c)
	}
	return cinemas, rows.Err()
}

func (r *cinemaRepository) GetByID(ctx context.Context, id int) (*domain.Cinema, error) {
	query := `
		SELECT id, name, address
		FROM cinemas
		WHERE id = $1
	`
	c := &domain.Cinema{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Address)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
