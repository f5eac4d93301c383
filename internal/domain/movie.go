package domain

import "context"

// Movie represents a movie in the catalog.
// swagger:model Movie
type Movie struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Rating        float64 `json:"rating"`
	Year          int     `json:"year"`
	LengthMinutes int     `json:"lengthMinutes"`
	PosterImage   string  `json:"posterImage,omitempty"`
}

// MovieRepository defines the interface for movie storage
type MovieRepository interface {
	List(ctx context.Context) ([]*Movie, error)
	GetByID(ctx context.Context, id int) (*Movie, error)
}
