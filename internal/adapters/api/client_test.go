package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cinemabooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(data any) []byte {
	raw, _ := json.Marshal(map[string]any{"data": data, "error": nil})
	return raw
}

func TestClient_FetchBookings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/bookings", r.URL.Path)
		require.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Write(envelope([]map[string]any{{
			"id": "1", "userId": 2, "movieSessionId": 3, "sessionId": 3,
			"bookedAt": "2025-03-20T10:00:00Z",
			"seats":    []map[string]any{{}},
			"isPaid":   true,
		}}))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	c.SetToken("token-1")

	bookings, err := c.FetchBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "1", bookings[0].ID)
	assert.Equal(t, []domain.Seat{{RowNumber: 0, SeatNumber: 0}}, bookings[0].Seats)
	assert.True(t, bookings[0].IsPaid)
}

func TestClient_FetchSettings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/settings", r.URL.Path)
		w.Write(envelope(map[string]any{"bookingPaymentTimeSeconds": 900}))
	}))
	defer server.Close()

	settings, err := NewClient(server.URL, nil).FetchSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{BookingPaymentTimeSeconds: 900}, settings)
}

func TestClient_FetchSessionDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie-sessions/10", r.URL.Path)
		w.Write(envelope(map[string]any{
			"id": 10, "movieId": 2, "cinemaId": 3,
			"startTime":   "2025-03-21T10:00:00Z",
			"seats":       map[string]any{"rows": 5, "seatsPerRow": 6},
			"bookedSeats": []map[string]any{{"rowNumber": 1, "seatNumber": 2}},
		}))
	}))
	defer server.Close()

	details, err := NewClient(server.URL, nil).FetchSessionDetails(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, details.ID)
	assert.Equal(t, domain.SeatMap{Rows: 5, SeatsPerRow: 6}, details.Seats)
	assert.Equal(t, []domain.Seat{{RowNumber: 1, SeatNumber: 2}}, details.BookedSeats)
}

func TestClient_FetchSessionDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).FetchSessionDetails(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_BookSessionSeats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movie-sessions/10/bookings", r.URL.Path)
		var req bookSeatsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, []domain.Seat{{RowNumber: 1, SeatNumber: 1}}, req.Seats)
		w.Write(envelope(map[string]any{"bookingId": "booking-1"}))
	}))
	defer server.Close()

	id, err := NewClient(server.URL, nil).BookSessionSeats(context.Background(), 10, []domain.Seat{{RowNumber: 1, SeatNumber: 1}})
	require.NoError(t, err)
	assert.Equal(t, "booking-1", id)
}

func TestClient_BookSessionSeatsMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope(map[string]any{}))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).BookSessionSeats(context.Background(), 10, []domain.Seat{{RowNumber: 1, SeatNumber: 1}})
	assert.ErrorIs(t, err, ErrCreateBooking)
}

func TestClient_PayBooking(t *testing.T) {
	var got payBookingRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bookings/payments", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write(envelope(map[string]any{}))
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL, nil).PayBooking(context.Background(), "booking-1"))
	assert.Equal(t, "booking-1", got.BookingID)
}

func TestClient_FetchMovieByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope([]map[string]any{
			{"id": 5, "title": "Target", "posterImage": "/static/p.jpg"},
		}))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)

	movie, err := c.FetchMovieByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Target", movie.Title)
	assert.Equal(t, server.URL+"/static/p.jpg", movie.PosterImage)

	_, err = c.FetchMovieByID(context.Background(), 6)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestClient_FetchCinemaByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(envelope([]map[string]any{{"id": 10, "name": "Cinema X", "address": "Address X"}}))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)

	cinema, err := c.FetchCinemaByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Cinema X", cinema.Name)

	_, err = c.FetchCinemaByID(context.Background(), 11)
	assert.ErrorIs(t, err, ErrCinemaNotFound)
}

func TestClient_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Write(envelope(map[string]any{"token": "token-2"}))
			return
		}
		require.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
		w.Write(envelope([]map[string]any{}))
	}))
	defer server.Close()

	c := NewClient(server.URL, nil)
	token, err := c.Login(context.Background(), "u@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "token-2", token)

	// Token is attached to subsequent requests.
	_, err = c.FetchBookings(context.Background())
	require.NoError(t, err)
}

func TestClient_ServerErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"data":  nil,
			"error": map[string]any{"code": "bad_request", "message": "seats already booked"},
		})
	}))
	defer server.Close()

	err := NewClient(server.URL, nil).PayBooking(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seats already booked")
}
