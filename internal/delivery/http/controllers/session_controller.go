package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "cinemabooking/internal/delivery/http/helpers"
	"cinemabooking/internal/delivery/http/middleware"
	"cinemabooking/internal/domain"
)

// BookSeatsRequest is the request body for POST /movie-sessions/{sessionID}/bookings
type BookSeatsRequest struct {
	Seats []domain.Seat `json:"seats"`
}

// Validate implements Validator.
func (b BookSeatsRequest) Validate() []string {
	var errs []string
	if len(b.Seats) == 0 {
		errs = append(errs, "seats are required")
	}
	for _, seat := range b.Seats {
		if seat.RowNumber < 1 || seat.SeatNumber < 1 {
			errs = append(errs, "seat numbers must be positive")
			break
		}
	}
	return errs
}

// BookSeatsResponse is the response body for POST /movie-sessions/{sessionID}/bookings
type BookSeatsResponse struct {
	BookingID string `json:"bookingId"`
}

// SessionController serves session details and seat booking.
type SessionController struct {
	Logger   *slog.Logger
	Catalog  domain.CatalogService
	Bookings domain.BookingService
}

func NewSessionController(logger *slog.Logger, catalog domain.CatalogService, bookings domain.BookingService) *SessionController {
	return &SessionController{
		Logger:   logger,
		Catalog:  catalog,
		Bookings: bookings,
	}
}

// GetSessionDetails godoc
// @Summary Get session details
// @Description Session info together with the hall layout and already booked seats.
// @Tags sessions
// @Produce json
// @Param sessionID path int true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains the session details"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /movie-sessions/{sessionID} [get]
func (c *SessionController) GetSessionDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	details, err := c.Catalog.GetSessionDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "session not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, details)
}

// BookSeats godoc
// @Summary Book seats on a session
// @Description Creates an unpaid booking for the given seats. The booking must be paid within the configured payment window or the seats are released.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionID path int true "Session ID"
// @Param body body BookSeatsRequest true "Seats to book"
// @Success 201 {object} helpers.APIResponse "data contains the booking id"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /movie-sessions/{sessionID}/bookings [post]
func (c *SessionController) BookSeats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}
	sessionID, ok := pathID(w, r, "sessionID")
	if !ok {
		return
	}
	var req BookSeatsRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Bookings.CreateBooking(r.Context(), userID, sessionID, req.Seats)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "session not found")
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid seats")
		case errors.Is(err, domain.ErrSeatsTaken):
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "seats already booked")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, BookSeatsResponse{BookingID: booking.ID})
}
