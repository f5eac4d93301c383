package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"cinemabooking/config"
	_ "cinemabooking/docs"
	"cinemabooking/internal/adapters/auth"
	"cinemabooking/internal/adapters/email"
	httpdelivery "cinemabooking/internal/delivery/http"
	"cinemabooking/internal/delivery/http/controllers"
	"cinemabooking/internal/delivery/http/middleware"
	"cinemabooking/internal/repository/postgres"
	"cinemabooking/internal/services"
)

const (
	bcryptCost  = 10
	tokenExpiry = 24 * time.Hour
)

// @title Cinema Booking API
// @version 1.0
// @description Movie catalog, session schedule and seat booking API.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	movieRepo := postgres.NewMovieRepository(db)
	cinemaRepo := postgres.NewCinemaRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	userRepo := postgres.NewUserRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mailer.SESRegion,
			AccessKeyID:        cfg.Mailer.SESAccessKeyID,
			SecretAccessKey:    cfg.Mailer.SESSecretKey,
			InsecureSkipVerify: cfg.Mailer.SESSkipTLSCheck,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())

	tokens := auth.NewJWTAuthority(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcryptCost)

	catalogSvc := services.NewCatalogService(movieRepo, cinemaRepo, sessionRepo, bookingRepo, settingsRepo)
	bookingSvc := services.NewBookingService(bookingRepo, sessionRepo, settingsRepo, movieRepo, cinemaRepo, userRepo, emailSvc)
	authSvc := services.NewAuthService(userRepo, hasher, tokens, tokenExpiry, emailSvc)

	mux := httpdelivery.NewRouter(
		controllers.NewCatalogController(logger, catalogSvc),
		controllers.NewSessionController(logger, catalogSvc, bookingSvc),
		controllers.NewBookingController(logger, bookingSvc),
		controllers.NewAuthController(logger, authSvc),
		tokens,
	)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
