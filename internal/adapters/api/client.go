// Package api implements the HTTP client for the cinema booking backend.
// Responses are unwrapped from the standard envelope and normalized into
// fully populated domain records before they reach the core.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"cinemabooking/internal/domain"
)

// User-facing errors mirrored by the UI layer verbatim.
var (
	ErrMovieNotFound  = errors.New("Фильм не найден")
	ErrCinemaNotFound = errors.New("Кинотеатр не найден")
	ErrCreateBooking  = errors.New("Не удалось создать бронирование")
)

// Client is an HTTP client for the booking API. It implements
// domain.BookingFetcher and domain.SessionDetailsFetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string

	mu    sync.Mutex
	token string
}

// NewClient creates a Client for the given base URL. A nil httpClient
// defaults to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// SetToken sets the bearer token sent with subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 400 {
		if envelope.Error != nil {
			return fmt.Errorf("%s %s: %s", method, path, envelope.Error.Message)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode %s %s data: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// FetchMovies returns the movie catalog with poster URLs resolved against the
// API base URL.
func (c *Client) FetchMovies(ctx context.Context) ([]domain.Movie, error) {
	var dtos []movieDTO
	if err := c.get(ctx, "/movies", &dtos); err != nil {
		return nil, err
	}
	movies := make([]domain.Movie, 0, len(dtos))
	for _, d := range dtos {
		movies = append(movies, d.normalize(c.baseURL))
	}
	return movies, nil
}

// FetchMovieByID returns the movie with the given id.
func (c *Client) FetchMovieByID(ctx context.Context, id int) (*domain.Movie, error) {
	movies, err := c.FetchMovies(ctx)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].ID == id {
			return &movies[i], nil
		}
	}
	return nil, ErrMovieNotFound
}

// FetchCinemas returns the cinema catalog.
func (c *Client) FetchCinemas(ctx context.Context) ([]domain.Cinema, error) {
	var dtos []cinemaDTO
	if err := c.get(ctx, "/cinemas", &dtos); err != nil {
		return nil, err
	}
	cinemas := make([]domain.Cinema, 0, len(dtos))
	for _, d := range dtos {
		cinemas = append(cinemas, d.normalize())
	}
	return cinemas, nil
}

// FetchCinemaByID returns the cinema with the given id.
func (c *Client) FetchCinemaByID(ctx context.Context, id int) (*domain.Cinema, error) {
	cinemas, err := c.FetchCinemas(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cinemas {
		if cinemas[i].ID == id {
			return &cinemas[i], nil
		}
	}
	return nil, ErrCinemaNotFound
}

// FetchCinemaSessions returns all sessions of a cinema.
func (c *Client) FetchCinemaSessions(ctx context.Context, cinemaID int) ([]domain.Session, error) {
	return c.fetchSessions(ctx, fmt.Sprintf("/cinemas/%d/sessions", cinemaID))
}

// FetchMovieSessions returns all sessions of a movie.
func (c *Client) FetchMovieSessions(ctx context.Context, movieID int) ([]domain.Session, error) {
	return c.fetchSessions(ctx, fmt.Sprintf("/movies/%d/sessions", movieID))
}

func (c *Client) fetchSessions(ctx context.Context, path string) ([]domain.Session, error) {
	var dtos []sessionDTO
	if err := c.get(ctx, path, &dtos); err != nil {
		return nil, err
	}
	sessions := make([]domain.Session, 0, len(dtos))
	for _, d := range dtos {
		sessions = append(sessions, d.normalize())
	}
	return sessions, nil
}

// FetchSessionDetails returns a session with seat map and booked seats.
func (c *Client) FetchSessionDetails(ctx context.Context, id int) (*domain.SessionDetails, error) {
	var dto sessionDetailsDTO
	if err := c.get(ctx, fmt.Sprintf("/movie-sessions/%d", id), &dto); err != nil {
		return nil, err
	}
	details := dto.normalize()
	return &details, nil
}

type bookSeatsRequest struct {
	Seats []domain.Seat `json:"seats"`
}

type bookSeatsResponse struct {
	BookingID *string `json:"bookingId"`
}

// BookSessionSeats creates a booking for the given seats and returns the new
// booking id.
func (c *Client) BookSessionSeats(ctx context.Context, sessionID int, seats []domain.Seat) (string, error) {
	var resp bookSeatsResponse
	err := c.post(ctx, fmt.Sprintf("/movie-sessions/%d/bookings", sessionID), bookSeatsRequest{Seats: seats}, &resp)
	if err != nil {
		return "", err
	}
	if resp.BookingID == nil || *resp.BookingID == "" {
		return "", ErrCreateBooking
	}
	return *resp.BookingID, nil
}

// FetchBookings returns the authenticated user's bookings.
func (c *Client) FetchBookings(ctx context.Context) ([]domain.Booking, error) {
	var dtos []bookingDTO
	if err := c.get(ctx, "/me/bookings", &dtos); err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0, len(dtos))
	for _, d := range dtos {
		bookings = append(bookings, d.normalize())
	}
	return bookings, nil
}

// FetchSettings returns server-provided client settings.
func (c *Client) FetchSettings(ctx context.Context) (domain.Settings, error) {
	var dto settingsDTO
	if err := c.get(ctx, "/settings", &dto); err != nil {
		return domain.Settings{}, err
	}
	return dto.normalize(), nil
}

type payBookingRequest struct {
	BookingID string `json:"bookingId"`
}

// PayBooking pays for a booking.
func (c *Client) PayBooking(ctx context.Context, bookingID string) error {
	return c.post(ctx, "/bookings/payments", payBookingRequest{BookingID: bookingID}, nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates the user and stores the returned bearer token on the
// client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, email, password, username string) error {
	return c.post(ctx, "/auth/signup", signUpRequest{Email: email, Password: password, Username: username}, nil)
}
