package domain

import "context"

// Settings holds server-provided client settings.
// BookingPaymentTimeSeconds is the payment window: the duration after which an
// unpaid booking is considered expired.
type Settings struct {
	BookingPaymentTimeSeconds int `json:"bookingPaymentTimeSeconds"`
}

// SettingsRepository defines the interface for settings storage
type SettingsRepository interface {
	Get(ctx context.Context) (*Settings, error)
}
