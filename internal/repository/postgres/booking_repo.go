package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cinemabooking/internal/domain"

	"github.com/lib/pq"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

// Create inserts the booking and its seats in one transaction. A unique
// index on (session_id, row_number, seat_number) turns concurrent bookings
// of the same seat into ErrSeatsTaken.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (user_id, session_id, booked_at, is_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, b.UserID, b.MovieSessionID, b.BookedAt, b.IsPaid).Scan(&b.ID); err != nil {
		return err
	}

	seatQuery := `
		INSERT INTO booking_seats (booking_id, session_id, row_number, seat_number)
		VALUES ($1, $2, $3, $4)
	`
	for _, seat := range b.Seats {
		if _, err := tx.ExecContext(ctx, seatQuery, b.ID, b.MovieSessionID, seat.RowNumber, seat.SeatNumber); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return domain.ErrSeatsTaken
			}
			return err
		}
	}
	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `
		SELECT id, user_id, session_id, booked_at, is_paid
		FROM bookings
		WHERE id = $1
	`
	b := &domain.Booking{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.UserID, &b.MovieSessionID, &b.BookedAt, &b.IsPaid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	b.SessionID = b.MovieSessionID
	seats, err := r.listSeats(ctx, []string{b.ID})
	if err != nil {
		return nil, err
	}
	b.Seats = seats[b.ID]
	if b.Seats == nil {
		b.Seats = []domain.Seat{}
	}
	return b, nil
}

func (r *bookingRepository) ListByUserID(ctx context.Context, userID int) ([]*domain.Booking, error) {
	query := `
		SELECT id, user_id, session_id, booked_at, is_paid
		FROM bookings
		WHERE user_id = $1
		ORDER BY booked_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	ids := make([]string, 0)
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.MovieSessionID, &b.BookedAt, &b.IsPaid); err != nil {
			return nil, err
		}
		b.SessionID = b.MovieSessionID
		bookings = append(bookings, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}
	seats, err := r.listSeats(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		b.Seats = seats[b.ID]
		if b.Seats == nil {
			b.Seats = []domain.Seat{}
		}
	}
	return bookings, nil
}

func (r *bookingRepository) listSeats(ctx context.Context, bookingIDs []string) (map[string][]domain.Seat, error) {
	query := `
		SELECT booking_id, row_number, seat_number
		FROM booking_seats
		WHERE booking_id = ANY($1)
		ORDER BY row_number, seat_number
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(bookingIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make(map[string][]domain.Seat)
	for rows.Next() {
		var bookingID string
		var seat domain.Seat
		if err := rows.Scan(&bookingID, &seat.RowNumber, &seat.SeatNumber); err != nil {
			return nil, err
		}
		seats[bookingID] = append(seats[bookingID], seat)
	}
	return seats, rows.Err()
}

func (r *bookingRepository) ListBookedSeats(ctx context.Context, sessionID int, unpaidSince time.Time) ([]domain.Seat, error) {
	query := `
		SELECT bs.row_number, bs.seat_number
		FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE bs.session_id = $1 AND (b.is_paid OR b.booked_at > $2)
		ORDER BY bs.row_number, bs.seat_number
	`
	rows, err := r.DB.QueryContext(ctx, query, sessionID, unpaidSince)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var seat domain.Seat
		if err := rows.Scan(&seat.RowNumber, &seat.SeatNumber); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

func (r *bookingRepository) DeleteExpiredUnpaid(ctx context.Context, sessionID int, before time.Time) error {
	query := `
		DELETE FROM bookings
		WHERE session_id = $1 AND NOT is_paid AND booked_at < $2
	`
	_, err := r.DB.ExecContext(ctx, query, sessionID, before)
	return err
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id string) error {
	query := `
		UPDATE bookings SET is_paid = true
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM bookings WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
