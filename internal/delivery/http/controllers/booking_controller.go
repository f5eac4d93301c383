package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "cinemabooking/internal/delivery/http/helpers"
	"cinemabooking/internal/delivery/http/middleware"
	"cinemabooking/internal/domain"
)

// PayBookingRequest is the request body for POST /bookings/payments
type PayBookingRequest struct {
	BookingID string `json:"bookingId"`
}

// Validate implements Validator.
func (p PayBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.BookingID) == "" {
		errs = append(errs, "bookingId is required")
	}
	return errs
}

// BookingController serves the authenticated user's bookings and payments.
type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// ListMyBookings godoc
// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the booking list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /me/bookings [get]
func (c *BookingController) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}
	bookings, err := c.Service.ListUserBookings(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// PayBooking godoc
// @Summary Pay a booking
// @Description Marks an unpaid booking as paid. Expired bookings are removed and the payment is rejected.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PayBookingRequest true "Booking to pay"
// @Success 200 {object} helpers.APIResponse "data is null on success"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 410 {object} helpers.APIResponse "error.code: conflict (booking expired)"
// @Router /bookings/payments [post]
func (c *BookingController) PayBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}
	var req PayBookingRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.PayBooking(r.Context(), userID, req.BookingID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, "booking not found")
		case errors.Is(err, domain.ErrForbidden):
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "booking belongs to another user")
		case errors.Is(err, domain.ErrBookingExpired):
			h.WriteJSONError(w, http.StatusGone, h.ErrCodeConflict, "booking expired")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, nil)
}

// GetSettings godoc
// @Summary Get application settings
// @Description Public settings, currently just the booking payment window.
// @Tags settings
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the settings"
// @Router /settings [get]
func (c *BookingController) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.Service.GetSettings(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, settings)
}
