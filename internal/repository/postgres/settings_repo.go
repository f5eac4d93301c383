package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cinemabooking/internal/domain"
)

type settingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) domain.SettingsRepository {
	return &settingsRepository{DB: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT booking_payment_time_seconds
		FROM settings
		LIMIT 1
	`
	s := &domain.Settings{}
	err := r.DB.QueryRowContext(ctx, query).Scan(&s.BookingPaymentTimeSeconds)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}
