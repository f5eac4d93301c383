package domain

import "context"

// Cinema represents a cinema venue.
// swagger:model Cinema
type Cinema struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CinemaRepository defines the interface for cinema storage
type CinemaRepository interface {
	List(ctx context.Context) ([]*Cinema, error)
	GetByID(ctx context.Context, id int) (*Cinema, error)
}
