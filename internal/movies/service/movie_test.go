package service

import (
	"context"
	"errors"
	"testing"

	moviesrepo "stayrate/internal/movies/repository"
	"stayrate/internal/movies/validator"
	reviewsrepo "stayrate/internal/reviews/repository"
	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
	"stayrate/pkg/logger"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}
}

func testMovie(id int, title string) model.Movie {
	return model.Movie{
		ID:              id,
		Title:           title,
		Description:     "A film about testing things",
		Genre:           model.GenreDrama,
		ReleaseYear:     2020,
		Director:        "Jane Doe",
		DurationMinutes: 120,
	}
}

func testReview(id, movieID int, rating float64) model.Review {
	return model.Review{
		ID:           id,
		MovieID:      movieID,
		ReviewerName: "Sam Reviewer",
		Rating:       rating,
		Comment:      "This is a long enough comment",
	}
}

func newTestService(movies []model.Movie, reviews []model.Review) (MovieService, *storage.MemStore[model.Movie], *storage.MemStore[model.Review]) {
	cfg := testConfig()
	movieStore := storage.NewMemStore[model.Movie](movies...)
	reviewStore := storage.NewMemStore[model.Review](reviews...)
	svc := NewMovieService(
		moviesrepo.NewMovieRepository(movieStore),
		reviewsrepo.NewReviewRepository(reviewStore),
		validator.NewMovieValidator(cfg.Log),
		cfg,
	)
	return svc, movieStore, reviewStore
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, appErr.Code, err)
	}
}

func TestCreateMovie_DerivedFieldsStartEmpty(t *testing.T) {
	svc, store, _ := newTestService(nil, nil)

	rating := 9.5
	movie := testMovie(0, "Fresh Release")
	movie.Rating = &rating
	movie.ReviewCount = 7

	if err := svc.Create(context.Background(), &movie); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if movie.Rating != nil {
		t.Errorf("expected rating to start nil, got %v", *movie.Rating)
	}
	if movie.ReviewCount != 0 {
		t.Errorf("expected review count to start 0, got %d", movie.ReviewCount)
	}
	if store.Items[0].Rating != nil {
		t.Error("expected persisted rating nil")
	}
}

func TestRecomputeStats(t *testing.T) {
	tests := []struct {
		name       string
		ratings    []float64
		wantRating *float64
		wantCount  int
	}{
		{"two reviews mean", []float64{9.0, 7.0}, ptr(8.0), 2},
		{"rounds to two decimals", []float64{7.0, 8.0, 8.0}, ptr(7.67), 3},
		{"no reviews", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reviews []model.Review
			for i, r := range tt.ratings {
				reviews = append(reviews, testReview(i+1, 1, r))
			}
			svc, store, _ := newTestService([]model.Movie{testMovie(1, "Rated Movie")}, reviews)

			if err := svc.RecomputeStats(context.Background(), 1); err != nil {
				t.Fatalf("RecomputeStats failed: %v", err)
			}

			got := store.Items[0]
			if got.ReviewCount != tt.wantCount {
				t.Errorf("expected count %d, got %d", tt.wantCount, got.ReviewCount)
			}
			if tt.wantRating == nil {
				if got.Rating != nil {
					t.Errorf("expected nil rating, got %v", *got.Rating)
				}
			} else if got.Rating == nil || *got.Rating != *tt.wantRating {
				t.Errorf("expected rating %v, got %v", *tt.wantRating, got.Rating)
			}
		})
	}
}

func TestRecomputeStats_Idempotent(t *testing.T) {
	reviews := []model.Review{testReview(1, 1, 6.0), testReview(2, 1, 8.0)}
	svc, store, _ := newTestService([]model.Movie{testMovie(1, "Stable Movie")}, reviews)

	for i := 0; i < 3; i++ {
		if err := svc.RecomputeStats(context.Background(), 1); err != nil {
			t.Fatalf("RecomputeStats run %d failed: %v", i, err)
		}
	}

	got := store.Items[0]
	if got.Rating == nil || *got.Rating != 7.0 || got.ReviewCount != 2 {
		t.Errorf("expected rating 7.0 count 2 after repeated runs, got %v / %d", got.Rating, got.ReviewCount)
	}
}

func TestDeleteMovie_RemovesReviews(t *testing.T) {
	reviews := []model.Review{
		testReview(1, 1, 8.0),
		testReview(2, 1, 6.0),
		testReview(3, 2, 9.0),
	}
	svc, _, reviewStore := newTestService(
		[]model.Movie{testMovie(1, "Doomed Movie"), testMovie(2, "Survivor")},
		reviews,
	)

	_, deleted, err := svc.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 reviews deleted, got %d", deleted)
	}
	if len(reviewStore.Items) != 1 || reviewStore.Items[0].MovieID != 2 {
		t.Errorf("expected only the other movie's review to survive, got %v", reviewStore.Items)
	}
}

func TestUpdateMovie_PreservesDerivedFields(t *testing.T) {
	rating := 8.5
	movie := testMovie(1, "Reviewed Movie")
	movie.Rating = &rating
	movie.ReviewCount = 3

	svc, _, _ := newTestService([]model.Movie{movie}, nil)

	incoming := testMovie(0, "Renamed Movie")
	incoming.ReviewCount = 99

	updated, err := svc.Update(context.Background(), 1, &incoming)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Rating == nil || *updated.Rating != 8.5 {
		t.Errorf("expected rating 8.5 preserved, got %v", updated.Rating)
	}
	if updated.ReviewCount != 3 {
		t.Errorf("expected review count 3 preserved, got %d", updated.ReviewCount)
	}
	if updated.Title != "Renamed Movie" {
		t.Errorf("expected title updated, got %s", updated.Title)
	}
}

func TestGetAll_RatingFilterSkipsUnrated(t *testing.T) {
	rated := testMovie(1, "Rated Movie")
	r := 8.0
	rated.Rating = &r
	unrated := testMovie(2, "Unrated Movie")

	svc, _, _ := newTestService([]model.Movie{rated, unrated}, nil)

	min := 5.0
	movies, total, err := svc.GetAll(context.Background(), ListOptions{MinRating: &min, Limit: 10})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if total != 1 || movies[0].ID != 1 {
		t.Errorf("expected only the rated movie to match, got %v", movies)
	}
}

func TestGetMovieReviews_MovieMustExist(t *testing.T) {
	svc, _, _ := newTestService(nil, nil)

	_, err := svc.GetMovieReviews(context.Background(), 42, ReviewsQuery{})
	if err == nil {
		t.Fatal("expected error for missing movie")
	}
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestCatalogStats(t *testing.T) {
	m1 := testMovie(1, "Popular")
	m1.ReviewCount = 3
	m2 := testMovie(2, "Quiet")
	m2.Genre = model.GenreComedy

	reviews := []model.Review{
		testReview(1, 1, 8.0),
		testReview(2, 1, 6.0),
		testReview(3, 1, 7.0),
	}

	svc, _, _ := newTestService([]model.Movie{m1, m2}, reviews)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalMovies != 2 || stats.TotalReviews != 3 {
		t.Errorf("unexpected totals: %d movies, %d reviews", stats.TotalMovies, stats.TotalReviews)
	}
	if stats.AverageRatingOverall == nil || *stats.AverageRatingOverall != 7.0 {
		t.Errorf("expected overall average 7.0, got %v", stats.AverageRatingOverall)
	}
	if stats.GenreDistribution[model.GenreDrama] != 1 || stats.GenreDistribution[model.GenreComedy] != 1 {
		t.Errorf("unexpected genre distribution: %v", stats.GenreDistribution)
	}
	if len(stats.MostReviewed) != 1 || stats.MostReviewed[0].MovieID != 1 || stats.MostReviewed[0].ReviewCount != 3 {
		t.Errorf("unexpected most reviewed list: %v", stats.MostReviewed)
	}
}

func TestCatalogStats_Empty(t *testing.T) {
	svc, _, _ := newTestService(nil, nil)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.AverageRatingOverall != nil {
		t.Errorf("expected nil overall average with no reviews, got %v", *stats.AverageRatingOverall)
	}
}

func ptr(f float64) *float64 {
	return &f
}
