package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"stayrate/internal/movies/service"
	apperrors "stayrate/pkg/errors"
	httputil "stayrate/pkg/http"
	"stayrate/pkg/logger"
	"stayrate/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type MovieHandler struct {
	service service.MovieService
	log     *logger.Logger
}

func NewMovieHandler(service service.MovieService, log *logger.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log,
	}
}

func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var movie model.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &movie); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, movie); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *MovieHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ExtractID(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	movie, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, movie); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MovieHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	opts, err := h.parseListOptions(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	movies, total, err := h.service.GetAll(r.Context(), *opts)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, movies, total, opts.Limit, opts.Offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ExtractID(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var movie model.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	updated, err := h.service.Update(r.Context(), id, &movie)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ExtractID(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	_, deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"message":         fmt.Sprintf("Movie %d deleted", id),
		"deleted_reviews": deleted,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Delete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MovieHandler) GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := httputil.ExtractID(ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetReviews", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	q := service.ReviewsQuery{}
	if q.MinRating, err = httputil.OptionalFloat(r, "min_rating"); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetReviews", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	if q.MaxRating, err = httputil.OptionalFloat(r, "max_rating"); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetReviews", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	sortBy, desc, err := httputil.ExtractSortOrder(r, "created_at", "asc", "created_at", "rating")
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetReviews", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	q.SortBy = sortBy
	q.Desc = desc

	reviews, err := h.service.GetMovieReviews(r.Context(), id, q)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetReviews", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, reviews); err != nil {
		h.log.Error("failed to write success response", "handler", "GetReviews", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MovieHandler) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Stats", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, stats); err != nil {
		h.log.Error("failed to write success response", "handler", "Stats", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MovieHandler) parseListOptions(r *http.Request) (*service.ListOptions, error) {
	opts := &service.ListOptions{}
	query := r.URL.Query()

	if s := query.Get("genre"); s != "" {
		genre := model.Genre(s)
		if !genre.Valid() {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid genre parameter: %s", s))
		}
		opts.Genre = &genre
	}

	var err error
	if opts.ReleaseYear, err = httputil.OptionalInt(r, "release_year"); err != nil {
		return nil, err
	}
	opts.Director = query.Get("director")
	if opts.MinRating, err = httputil.OptionalFloat(r, "min_rating"); err != nil {
		return nil, err
	}
	if opts.MaxRating, err = httputil.OptionalFloat(r, "max_rating"); err != nil {
		return nil, err
	}
	if opts.MinDuration, err = httputil.OptionalInt(r, "min_duration"); err != nil {
		return nil, err
	}
	if opts.MaxDuration, err = httputil.OptionalInt(r, "max_duration"); err != nil {
		return nil, err
	}

	if opts.SortBy, opts.Desc, err = httputil.ExtractSortOrder(r, "id", "asc",
		"id", "title", "release_year", "rating", "duration_minutes"); err != nil {
		return nil, err
	}

	if opts.Limit, opts.Offset, err = httputil.ExtractLimitOffset(r); err != nil {
		return nil, err
	}

	return opts, nil
}

func (h *MovieHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/movies", h.Create)
	router.GET("/api/v1/movies", h.GetAll)
	router.GET("/api/v1/movies/id/:id", h.GetByID)
	router.PUT("/api/v1/movies/id/:id", h.Update)
	router.DELETE("/api/v1/movies/id/:id", h.Delete)
	router.GET("/api/v1/movies/id/:id/reviews", h.GetReviews)
	router.GET("/api/v1/stats", h.Stats)
}
