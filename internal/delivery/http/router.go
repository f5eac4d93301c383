package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"cinemabooking/internal/delivery/http/controllers"
	"cinemabooking/internal/delivery/http/middleware"
	"cinemabooking/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	catalogController *controllers.CatalogController,
	sessionController *controllers.SessionController,
	bookingController *controllers.BookingController,
	authController *controllers.AuthController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Catalog
	mux.HandleFunc("GET /movies", catalogController.ListMovies)
	mux.HandleFunc("GET /movies/{movieID}", catalogController.GetMovie)
	mux.HandleFunc("GET /movies/{movieID}/sessions", catalogController.ListMovieSessions)
	mux.HandleFunc("GET /cinemas", catalogController.ListCinemas)
	mux.HandleFunc("GET /cinemas/{cinemaID}", catalogController.GetCinema)
	mux.HandleFunc("GET /cinemas/{cinemaID}/sessions", catalogController.ListCinemaSessions)

	// Sessions and bookings
	mux.HandleFunc("GET /movie-sessions/{sessionID}", sessionController.GetSessionDetails)
	mux.HandleFunc("POST /movie-sessions/{sessionID}/bookings", auth(sessionController.BookSeats))
	mux.HandleFunc("GET /me/bookings", auth(bookingController.ListMyBookings))
	mux.HandleFunc("POST /bookings/payments", auth(bookingController.PayBooking))
	mux.HandleFunc("GET /settings", bookingController.GetSettings)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
