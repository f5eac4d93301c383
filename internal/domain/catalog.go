package domain

import "context"

// CatalogService exposes the read side of the catalog: movies, cinemas,
// their sessions and per-session seat availability.
type CatalogService interface {
	ListMovies(ctx context.Context) ([]*Movie, error)
	GetMovie(ctx context.Context, id int) (*Movie, error)
	ListCinemas(ctx context.Context) ([]*Cinema, error)
	GetCinema(ctx context.Context, id int) (*Cinema, error)
	ListMovieSessions(ctx context.Context, movieID int) ([]*Session, error)
	ListCinemaSessions(ctx context.Context, cinemaID int) ([]*Session, error)
	GetSessionDetails(ctx context.Context, id int) (*SessionDetails, error)
}
