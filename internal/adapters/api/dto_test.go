package api

import (
	"encoding/json"
	"testing"
	"time"

	"cinemabooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingDTO_NormalizeDefaults(t *testing.T) {
	var dto bookingDTO
	require.NoError(t, json.Unmarshal([]byte(`{}`), &dto))

	booking := dto.normalize()

	assert.Equal(t, domain.Booking{
		ID:             "",
		UserID:         0,
		MovieSessionID: 0,
		SessionID:      0,
		BookedAt:       time.Time{},
		Seats:          []domain.Seat{},
		IsPaid:         false,
	}, booking)
}

func TestBookingDTO_NormalizeSeatsDefaults(t *testing.T) {
	var dto bookingDTO
	raw := `{"id":"1","userId":2,"movieSessionId":3,"sessionId":3,"bookedAt":"2025-03-20T10:00:00Z","seats":[{}],"isPaid":true}`
	require.NoError(t, json.Unmarshal([]byte(raw), &dto))

	booking := dto.normalize()

	assert.Equal(t, "1", booking.ID)
	assert.Equal(t, 2, booking.UserID)
	assert.True(t, booking.IsPaid)
	assert.Equal(t, []domain.Seat{{RowNumber: 0, SeatNumber: 0}}, booking.Seats)
	assert.Equal(t, time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC), booking.BookedAt)
}

func TestSettingsDTO_Normalize(t *testing.T) {
	var missing settingsDTO
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Equal(t, domain.Settings{BookingPaymentTimeSeconds: 0}, missing.normalize())

	var present settingsDTO
	require.NoError(t, json.Unmarshal([]byte(`{"bookingPaymentTimeSeconds":900}`), &present))
	assert.Equal(t, domain.Settings{BookingPaymentTimeSeconds: 900}, present.normalize())
}

func TestCinemaDTO_NormalizeDefaults(t *testing.T) {
	var dto cinemaDTO
	require.NoError(t, json.Unmarshal([]byte(`{}`), &dto))

	assert.Equal(t, domain.Cinema{ID: 0, Name: "", Address: ""}, dto.normalize())
}

func TestMovieDTO_PosterResolution(t *testing.T) {
	tests := []struct {
		name   string
		poster string
		want   string
	}{
		{"relative path", "/static/poster.jpg", "http://localhost:3022/static/poster.jpg"},
		{"absolute url", "https://cdn.example.com/p.jpg", "https://cdn.example.com/p.jpg"},
		{"missing", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := movieDTO{}
			if tt.poster != "" {
				dto.PosterImage = &tt.poster
			}
			assert.Equal(t, tt.want, dto.normalize("http://localhost:3022").PosterImage)
		})
	}
}

func TestSessionDetailsDTO_Normalize(t *testing.T) {
	var dto sessionDetailsDTO
	raw := `{"id":10,"movieId":2,"cinemaId":3,"startTime":"2025-03-21T10:00:00Z",
		"seats":{"rows":5,"seatsPerRow":6},"bookedSeats":[{"rowNumber":1,"seatNumber":2}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &dto))

	details := dto.normalize()

	assert.Equal(t, 10, details.ID)
	assert.Equal(t, domain.SeatMap{Rows: 5, SeatsPerRow: 6}, details.Seats)
	assert.Equal(t, []domain.Seat{{RowNumber: 1, SeatNumber: 2}}, details.BookedSeats)
}

func TestTimeOrZero_Malformed(t *testing.T) {
	bad := "yesterday"
	assert.True(t, timeOrZero(&bad).IsZero())
	assert.True(t, timeOrZero(nil).IsZero())
}
