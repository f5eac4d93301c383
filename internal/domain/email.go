package domain

import "context"

// Mailer sends a single email message.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into subject, html and
// text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// BookingConfirmationEmailData is the data for the booking confirmation template.
type BookingConfirmationEmailData struct {
	Email      string
	Username   string
	MovieTitle string
	CinemaName string
	StartTime  string
	Seats      string
}

// WelcomeEmailData is the data for the welcome template.
type WelcomeEmailData struct {
	Email    string
	Username string
}

// EmailService defines the emails the application sends.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeEmailData) error
	SendBookingConfirmation(ctx context.Context, data *BookingConfirmationEmailData) error
}
