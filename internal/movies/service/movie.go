package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"

	movieserrors "stayrate/internal/movies/errors"
	"stayrate/internal/movies/repository"
	"stayrate/internal/movies/validator"
	reviewsrepo "stayrate/internal/reviews/repository"
	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/sanitizer"
	"stayrate/pkg/validation"
)

type ListOptions struct {
	Genre       *model.Genre
	ReleaseYear *int
	Director    string
	MinRating   *float64
	MaxRating   *float64
	MinDuration *int
	MaxDuration *int
	SortBy      string
	Desc        bool
	Limit       int
	Offset      int
}

// ReviewsQuery narrows a movie's review listing.
type ReviewsQuery struct {
	MinRating *float64
	MaxRating *float64
	SortBy    string
	Desc      bool
}

type MovieReviewCount struct {
	MovieID     int    `json:"movie_id"`
	Title       string `json:"title"`
	ReviewCount int    `json:"review_count"`
}

type CatalogStats struct {
	TotalMovies          int                 `json:"total_movies"`
	TotalReviews         int                 `json:"total_reviews"`
	AverageRatingOverall *float64            `json:"average_rating_overall"`
	GenreDistribution    map[model.Genre]int `json:"genre_distribution"`
	MostReviewed         []MovieReviewCount  `json:"most_reviewed"`
}

type MovieService interface {
	Create(ctx context.Context, movie *model.Movie) error
	GetByID(ctx context.Context, id int) (*model.Movie, error)
	GetAll(ctx context.Context, opts ListOptions) ([]model.Movie, int, error)
	Update(ctx context.Context, id int, updated *model.Movie) (*model.Movie, error)

	// Delete removes the movie and hard-deletes all of its reviews. Returns
	// the removed movie and the number of reviews deleted.
	Delete(ctx context.Context, id int) (*model.Movie, int, error)

	GetMovieReviews(ctx context.Context, movieID int, q ReviewsQuery) ([]model.Review, error)

	// RecomputeStats re-derives the movie's rating and review_count from its
	// current review set and persists them: the mean rounded to two decimals
	// and the count, or a nil rating with count zero when no reviews remain.
	// Idempotent; must run after every review create, update and delete.
	RecomputeStats(ctx context.Context, movieID int) error

	Stats(ctx context.Context) (*CatalogStats, error)
}

type movieService struct {
	repo      repository.MovieRepository
	reviews   reviewsrepo.ReviewRepository
	validator *validator.MovieValidator
	cfg       *config.Config
}

func NewMovieService(
	repo repository.MovieRepository,
	reviews reviewsrepo.ReviewRepository,
	movieValidator *validator.MovieValidator,
	cfg *config.Config,
) MovieService {
	return &movieService{
		repo:      repo,
		reviews:   reviews,
		validator: movieValidator,
		cfg:       cfg,
	}
}

func (s *movieService) Create(ctx context.Context, movie *model.Movie) error {
	s.sanitize(movie)
	if err := s.validate(movie); err != nil {
		return err
	}

	// Derived fields start empty; the absence of reviews is a nil rating,
	// never zero.
	movie.Rating = nil
	movie.ReviewCount = 0

	if err := s.repo.Insert(ctx, movie); err != nil {
		s.cfg.Log.Error("Failed to create movie", "error", err)
		return apperrors.Internal("Failed to create movie", err)
	}

	s.cfg.Log.Info("Movie created successfully", "id", movie.ID, "title", movie.Title)
	return nil
}

func (s *movieService) GetByID(ctx context.Context, id int) (*model.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, movieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Movie", id)
		}
		return nil, apperrors.Internal("Failed to retrieve movie", err)
	}
	return movie, nil
}

func (s *movieService) GetAll(ctx context.Context, opts ListOptions) ([]model.Movie, int, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list movies", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve movies", err)
	}

	filtered := filterMovies(movies, opts)
	sortMovies(filtered, opts.SortBy, opts.Desc)

	total := len(filtered)
	return paginateMovies(filtered, opts.Limit, opts.Offset), total, nil
}

func (s *movieService) Update(ctx context.Context, id int, updated *model.Movie) (*model.Movie, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sanitize(updated)
	updated.ID = existing.ID
	updated.Rating = existing.Rating
	updated.ReviewCount = existing.ReviewCount

	if err := s.validate(updated); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		s.cfg.Log.Error("Failed to update movie", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update movie", err)
	}

	s.cfg.Log.Info("Movie updated successfully", "id", id)
	return updated, nil
}

func (s *movieService) Delete(ctx context.Context, id int) (*model.Movie, int, error) {
	movie, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, 0, apperrors.Internal("Failed to delete movie", err)
	}

	// Reviews are hard-deleted, unlike bookings which survive their room.
	deleted, err := s.reviews.DeleteByMovie(ctx, id)
	if err != nil {
		s.cfg.Log.Error("Failed to delete reviews for deleted movie", "movie_id", id, "error", err)
		return nil, 0, apperrors.Internal("Failed to delete reviews for deleted movie", err)
	}

	s.cfg.Log.Info("Movie and associated reviews deleted",
		"id", id,
		"deleted_reviews", deleted,
	)
	return movie, deleted, nil
}

func (s *movieService) GetMovieReviews(ctx context.Context, movieID int, q ReviewsQuery) ([]model.Review, error) {
	if _, err := s.GetByID(ctx, movieID); err != nil {
		return nil, err
	}

	reviews, err := s.reviews.FindByMovie(ctx, movieID)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve movie reviews", err)
	}

	filtered := reviews[:0]
	for i := range reviews {
		if q.MinRating != nil && reviews[i].Rating < *q.MinRating {
			continue
		}
		if q.MaxRating != nil && reviews[i].Rating > *q.MaxRating {
			continue
		}
		filtered = append(filtered, reviews[i])
	}
	reviews = filtered

	sort.SliceStable(reviews, func(i, j int) bool {
		if q.Desc {
			i, j = j, i
		}
		if q.SortBy == "rating" {
			return reviews[i].Rating < reviews[j].Rating
		}
		return reviews[i].CreatedAt.Before(reviews[j].CreatedAt)
	})

	return reviews, nil
}

func (s *movieService) RecomputeStats(ctx context.Context, movieID int) error {
	reviews, err := s.reviews.FindByMovie(ctx, movieID)
	if err != nil {
		return apperrors.Internal("Failed to load reviews for stats", err)
	}

	var rating *float64
	if len(reviews) > 0 {
		sum := 0.0
		for i := range reviews {
			sum += reviews[i].Rating
		}
		avg := math.Round(sum/float64(len(reviews))*100) / 100
		rating = &avg
	}

	if err := s.repo.UpdateStats(ctx, movieID, rating, len(reviews)); err != nil {
		if errors.Is(err, movieserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Movie", movieID)
		}
		return apperrors.Internal("Failed to update movie stats", err)
	}

	s.cfg.Log.Debug("Movie stats recomputed", "movie_id", movieID, "review_count", len(reviews))
	return nil
}

func (s *movieService) Stats(ctx context.Context) (*CatalogStats, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve movies", err)
	}
	reviews, err := s.reviews.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve reviews", err)
	}

	stats := &CatalogStats{
		TotalMovies:       len(movies),
		TotalReviews:      len(reviews),
		GenreDistribution: make(map[model.Genre]int),
		MostReviewed:      []MovieReviewCount{},
	}

	for i := range movies {
		stats.GenreDistribution[movies[i].Genre]++
	}

	if len(reviews) > 0 {
		sum := 0.0
		for i := range reviews {
			sum += reviews[i].Rating
		}
		avg := math.Round(sum/float64(len(reviews))*100) / 100
		stats.AverageRatingOverall = &avg
	}

	// Top ten movies by stored review count. Ties break by id for a stable
	// listing across requests.
	ranked := make([]MovieReviewCount, 0, len(movies))
	for i := range movies {
		if movies[i].ReviewCount == 0 {
			continue
		}
		ranked = append(ranked, MovieReviewCount{
			MovieID:     movies[i].ID,
			Title:       movies[i].Title,
			ReviewCount: movies[i].ReviewCount,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ReviewCount != ranked[j].ReviewCount {
			return ranked[i].ReviewCount > ranked[j].ReviewCount
		}
		return ranked[i].MovieID < ranked[j].MovieID
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}
	stats.MostReviewed = ranked

	return stats, nil
}

// --- Helpers ---

func (s *movieService) sanitize(movie *model.Movie) {
	movie.Title = sanitizer.Text(movie.Title)
	movie.Description = sanitizer.Text(movie.Description)
	movie.Director = sanitizer.Text(movie.Director)
}

func (s *movieService) validate(movie *model.Movie) error {
	if err := s.validator.Validate(movie); err != nil {
		s.cfg.Log.Warn("Movie validation failed", "error", err)
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.Validation("Movie validation failed", map[string]any{"errors": fieldErrs})
		}
		return apperrors.Validation("Movie validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func filterMovies(movies []model.Movie, opts ListOptions) []model.Movie {
	filtered := make([]model.Movie, 0, len(movies))
	for i := range movies {
		m := &movies[i]
		if opts.Genre != nil && m.Genre != *opts.Genre {
			continue
		}
		if opts.ReleaseYear != nil && m.ReleaseYear != *opts.ReleaseYear {
			continue
		}
		if opts.Director != "" && !strings.Contains(strings.ToLower(m.Director), strings.ToLower(opts.Director)) {
			continue
		}
		// Unrated movies never match a rating filter.
		if opts.MinRating != nil && (m.Rating == nil || *m.Rating < *opts.MinRating) {
			continue
		}
		if opts.MaxRating != nil && (m.Rating == nil || *m.Rating > *opts.MaxRating) {
			continue
		}
		if opts.MinDuration != nil && m.DurationMinutes < *opts.MinDuration {
			continue
		}
		if opts.MaxDuration != nil && m.DurationMinutes > *opts.MaxDuration {
			continue
		}
		filtered = append(filtered, *m)
	}
	return filtered
}

func sortMovies(movies []model.Movie, sortBy string, desc bool) {
	sort.SliceStable(movies, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		switch sortBy {
		case "title":
			return strings.Compare(movies[i].Title, movies[j].Title) < 0
		case "release_year":
			return movies[i].ReleaseYear < movies[j].ReleaseYear
		case "rating":
			// Unrated sorts as zero.
			return ratingOrZero(&movies[i]) < ratingOrZero(&movies[j])
		case "duration_minutes":
			return movies[i].DurationMinutes < movies[j].DurationMinutes
		default:
			return movies[i].ID < movies[j].ID
		}
	})
}

func ratingOrZero(m *model.Movie) float64 {
	if m.Rating == nil {
		return 0
	}
	return *m.Rating
}

func paginateMovies(movies []model.Movie, limit, offset int) []model.Movie {
	if offset >= len(movies) {
		return []model.Movie{}
	}
	movies = movies[offset:]
	if limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}
	return movies
}
