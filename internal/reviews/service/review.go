package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	movieserrors "stayrate/internal/movies/errors"
	moviesrepo "stayrate/internal/movies/repository"
	reviewserrors "stayrate/internal/reviews/errors"
	"stayrate/internal/reviews/repository"
	"stayrate/internal/reviews/validator"
	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/sanitizer"
	"stayrate/pkg/validation"
)

// StatsRecomputer re-derives a movie's aggregate rating and review count.
// Implemented by the movies service; kept narrow so reviews never depend on
// the full movie surface.
type StatsRecomputer interface {
	RecomputeStats(ctx context.Context, movieID int) error
}

type ListOptions struct {
	MovieID      *int
	ReviewerName string
	MinRating    *float64
	MaxRating    *float64
	SortBy       string
	Desc         bool
	Limit        int
	Offset       int
}

type ReviewService interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int) (*model.Review, error)
	GetAll(ctx context.Context, opts ListOptions) ([]model.Review, int, error)
	Update(ctx context.Context, id int, updated *model.Review) (*model.Review, error)
	Delete(ctx context.Context, id int) (*model.Review, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	movies    moviesrepo.MovieRepository
	stats     StatsRecomputer
	validator *validator.ReviewValidator
	cfg       *config.Config
}

func NewReviewService(
	repo repository.ReviewRepository,
	movies moviesrepo.MovieRepository,
	stats StatsRecomputer,
	reviewValidator *validator.ReviewValidator,
	cfg *config.Config,
) ReviewService {
	return &reviewService{
		repo:      repo,
		movies:    movies,
		stats:     stats,
		validator: reviewValidator,
		cfg:       cfg,
	}
}

func (s *reviewService) Create(ctx context.Context, review *model.Review) error {
	if err := s.checkMovieExists(ctx, review.MovieID); err != nil {
		return err
	}

	s.sanitize(review)
	if err := s.validate(review); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, review); err != nil {
		s.cfg.Log.Error("Failed to create review", "error", err)
		return apperrors.Internal("Failed to create review", err)
	}

	if err := s.stats.RecomputeStats(ctx, review.MovieID); err != nil {
		s.cfg.Log.Error("Failed to recompute movie stats", "movie_id", review.MovieID, "error", err)
		return err
	}

	s.cfg.Log.Info("Review created successfully", "id", review.ID, "movie_id", review.MovieID)
	return nil
}

func (s *reviewService) GetByID(ctx context.Context, id int) (*model.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Review", id)
		}
		return nil, apperrors.Internal("Failed to retrieve review", err)
	}
	return review, nil
}

func (s *reviewService) GetAll(ctx context.Context, opts ListOptions) ([]model.Review, int, error) {
	reviews, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list reviews", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve reviews", err)
	}

	filtered := filterReviews(reviews, opts)
	sortReviews(filtered, opts.SortBy, opts.Desc)

	total := len(filtered)
	return paginateReviews(filtered, opts.Limit, opts.Offset), total, nil
}

// Update replaces the review's mutable fields. A review may move between
// movies; both the old and the new movie get their stats recomputed.
func (s *reviewService) Update(ctx context.Context, id int, updated *model.Review) (*model.Review, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkMovieExists(ctx, updated.MovieID); err != nil {
		return nil, err
	}

	s.sanitize(updated)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.validate(updated); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		s.cfg.Log.Error("Failed to update review", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update review", err)
	}

	if err := s.stats.RecomputeStats(ctx, existing.MovieID); err != nil {
		return nil, err
	}
	if updated.MovieID != existing.MovieID {
		if err := s.stats.RecomputeStats(ctx, updated.MovieID); err != nil {
			return nil, err
		}
	}

	s.cfg.Log.Info("Review updated successfully", "id", id)
	return updated, nil
}

func (s *reviewService) Delete(ctx context.Context, id int) (*model.Review, error) {
	review, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, reviewserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Review", id)
		}
		return nil, apperrors.Internal("Failed to delete review", err)
	}

	if err := s.stats.RecomputeStats(ctx, review.MovieID); err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Review deleted successfully", "id", id, "movie_id", review.MovieID)
	return review, nil
}

// --- Helpers ---

func (s *reviewService) checkMovieExists(ctx context.Context, movieID int) error {
	if _, err := s.movies.FindByID(ctx, movieID); err != nil {
		if errors.Is(err, movieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Movie", movieID)
		}
		return apperrors.Internal("Failed to retrieve movie", err)
	}
	return nil
}

func (s *reviewService) sanitize(review *model.Review) {
	review.ReviewerName = sanitizer.Text(review.ReviewerName)
	review.Comment = sanitizer.Text(review.Comment)
}

func (s *reviewService) validate(review *model.Review) error {
	if err := s.validator.Validate(review); err != nil {
		s.cfg.Log.Warn("Review validation failed", "error", err)
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.Validation("Review validation failed", map[string]any{"errors": fieldErrs})
		}
		return apperrors.Validation("Review validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func filterReviews(reviews []model.Review, opts ListOptions) []model.Review {
	filtered := make([]model.Review, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		if opts.MovieID != nil && r.MovieID != *opts.MovieID {
			continue
		}
		if opts.ReviewerName != "" && !strings.Contains(strings.ToLower(r.ReviewerName), strings.ToLower(opts.ReviewerName)) {
			continue
		}
		if opts.MinRating != nil && r.Rating < *opts.MinRating {
			continue
		}
		if opts.MaxRating != nil && r.Rating > *opts.MaxRating {
			continue
		}
		filtered = append(filtered, *r)
	}
	return filtered
}

func sortReviews(reviews []model.Review, sortBy string, desc bool) {
	sort.SliceStable(reviews, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch sortBy {
		case "movie_id":
			return reviews[i].MovieID < reviews[j].MovieID
		case "rating":
			return reviews[i].Rating < reviews[j].Rating
		case "created_at":
			return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
		default:
			return reviews[i].ID < reviews[j].ID
		}
	})
}

func paginateReviews(reviews []model.Review, limit, offset int) []model.Review {
	if offset >= len(reviews) {
		return []model.Review{}
	}
	reviews = reviews[offset:]
	if limit > 0 && limit < len(reviews) {
		reviews = reviews[:limit]
	}
	return reviews
}
