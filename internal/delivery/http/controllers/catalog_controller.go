package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	h "cinemabooking/internal/delivery/http/helpers"
	"cinemabooking/internal/domain"
)

// CatalogController serves the public movie and cinema catalog.
type CatalogController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService) *CatalogController {
	return &CatalogController{
		Logger:  logger,
		Service: svc,
	}
}

// pathID parses an integer path parameter. On failure it writes a 400 and
// returns false.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (c *CatalogController) writeError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, notFoundMsg)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
	}
}

// ListMovies godoc
// @Summary List movies
// @Description List all movies currently in the catalog.
// @Tags catalog
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the movie list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /movies [get]
func (c *CatalogController) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := c.Service.ListMovies(r.Context())
	if err != nil {
		c.writeError(w, r, err, "movie not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, movies)
}

// GetMovie godoc
// @Summary Get a movie
// @Tags catalog
// @Produce json
// @Param movieID path int true "Movie ID"
// @Success 200 {object} helpers.APIResponse "data contains the movie"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /movies/{movieID} [get]
func (c *CatalogController) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "movieID")
	if !ok {
		return
	}
	movie, err := c.Service.GetMovie(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "movie not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, movie)
}

// ListMovieSessions godoc
// @Summary List sessions for a movie
// @Tags catalog
// @Produce json
// @Param movieID path int true "Movie ID"
// @Success 200 {object} helpers.APIResponse "data contains the session list"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /movies/{movieID}/sessions [get]
func (c *CatalogController) ListMovieSessions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "movieID")
	if !ok {
		return
	}
	sessions, err := c.Service.ListMovieSessions(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "movie not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ListCinemas godoc
// @Summary List cinemas
// @Tags catalog
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the cinema list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /cinemas [get]
func (c *CatalogController) ListCinemas(w http.ResponseWriter, r *http.Request) {
	cinemas, err := c.Service.ListCinemas(r.Context())
	if err != nil {
		c.writeError(w, r, err, "cinema not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, cinemas)
}

// GetCinema godoc
// @Summary Get a cinema
// @Tags catalog
// @Produce json
// @Param cinemaID path int true "Cinema ID"
// @Success 200 {object} helpers.APIResponse "data contains the cinema"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /cinemas/{cinemaID} [get]
func (c *CatalogController) GetCinema(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cinemaID")
	if !ok {
		return
	}
	cinema, err := c.Service.GetCinema(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "cinema not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, cinema)
}

// ListCinemaSessions godoc
// @Summary List sessions in a cinema
// @Tags catalog
// @Produce json
// @Param cinemaID path int true "Cinema ID"
// @Success 200 {object} helpers.APIResponse "data contains the session list"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /cinemas/{cinemaID}/sessions [get]
func (c *CatalogController) ListCinemaSessions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "cinemaID")
	if !ok {
		return
	}
	sessions, err := c.Service.ListCinemaSessions(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err, "cinema not found")
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, sessions)
}
