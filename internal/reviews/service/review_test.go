package service

import (
	"context"
	"errors"
	"testing"

	moviesrepo "stayrate/internal/movies/repository"
	moviesservice "stayrate/internal/movies/service"
	moviesvalidator "stayrate/internal/movies/validator"
	reviewsrepo "stayrate/internal/reviews/repository"
	"stayrate/internal/reviews/validator"
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

func newTestService(movies []model.Movie, reviews []model.Review) (ReviewService, *storage.MemStore[model.Movie], *storage.MemStore[model.Review]) {
	cfg := testConfig()
	movieStore := storage.NewMemStore[model.Movie](movies...)
	reviewStore := storage.NewMemStore[model.Review](reviews...)

	movieRepo := moviesrepo.NewMovieRepository(movieStore)
	reviewRepo := reviewsrepo.NewReviewRepository(reviewStore)

	movieSvc := moviesservice.NewMovieService(
		movieRepo,
		reviewRepo,
		moviesvalidator.NewMovieValidator(cfg.Log),
		cfg,
	)

	svc := NewReviewService(reviewRepo, movieRepo, movieSvc, validator.NewReviewValidator(cfg.Log), cfg)
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

func movieByID(t *testing.T, store *storage.MemStore[model.Movie], id int) model.Movie {
	t.Helper()
	for _, m := range store.Items {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("movie %d not found", id)
	return model.Movie{}
}

func TestCreateReview_RecomputesMovieStats(t *testing.T) {
	svc, movieStore, _ := newTestService([]model.Movie{testMovie(1, "New Movie")}, nil)

	review := testReview(0, 1, 9.0)
	if err := svc.Create(context.Background(), &review); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if review.ID != 1 {
		t.Errorf("expected id 1, got %d", review.ID)
	}
	if review.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	movie := movieByID(t, movieStore, 1)
	if movie.Rating == nil || *movie.Rating != 9.0 {
		t.Errorf("expected movie rating 9.0, got %v", movie.Rating)
	}
	if movie.ReviewCount != 1 {
		t.Errorf("expected review count 1, got %d", movie.ReviewCount)
	}
}

func TestCreateReview_MovieMustExist(t *testing.T) {
	svc, _, reviewStore := newTestService(nil, nil)

	review := testReview(0, 42, 9.0)
	err := svc.Create(context.Background(), &review)
	if err == nil {
		t.Fatal("expected error for missing movie")
	}
	assertCode(t, err, apperrors.CodeNotFound)

	if len(reviewStore.Items) != 0 {
		t.Error("expected no review persisted when the movie is missing")
	}
}

func TestUpdateReview_MovingBetweenMoviesRecomputesBoth(t *testing.T) {
	movies := []model.Movie{testMovie(1, "Old Movie"), testMovie(2, "New Movie")}
	reviews := []model.Review{testReview(1, 1, 8.0), testReview(2, 1, 6.0)}
	svc, movieStore, _ := newTestService(movies, reviews)

	moved := testReview(0, 2, 6.0)
	if _, err := svc.Update(context.Background(), 2, &moved); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	oldMovie := movieByID(t, movieStore, 1)
	if oldMovie.Rating == nil || *oldMovie.Rating != 8.0 || oldMovie.ReviewCount != 1 {
		t.Errorf("expected old movie rating 8.0 count 1, got %v / %d", oldMovie.Rating, oldMovie.ReviewCount)
	}

	newMovie := movieByID(t, movieStore, 2)
	if newMovie.Rating == nil || *newMovie.Rating != 6.0 || newMovie.ReviewCount != 1 {
		t.Errorf("expected new movie rating 6.0 count 1, got %v / %d", newMovie.Rating, newMovie.ReviewCount)
	}
}

func TestDeleteReview_RecomputesMovieStats(t *testing.T) {
	movies := []model.Movie{testMovie(1, "Reviewed Movie")}
	reviews := []model.Review{testReview(1, 1, 8.0)}
	svc, movieStore, reviewStore := newTestService(movies, reviews)

	if _, err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(reviewStore.Items) != 0 {
		t.Errorf("expected review removed, got %v", reviewStore.Items)
	}

	movie := movieByID(t, movieStore, 1)
	if movie.Rating != nil {
		t.Errorf("expected rating nil after last review removed, got %v", *movie.Rating)
	}
	if movie.ReviewCount != 0 {
		t.Errorf("expected review count 0, got %d", movie.ReviewCount)
	}
}

func TestGetAll_Filters(t *testing.T) {
	movies := []model.Movie{testMovie(1, "Movie One"), testMovie(2, "Movie Two")}
	r1 := testReview(1, 1, 8.0)
	r2 := testReview(2, 1, 3.0)
	r3 := testReview(3, 2, 9.0)
	r3.ReviewerName = "Pat Critic"

	svc, _, _ := newTestService(movies, []model.Review{r1, r2, r3})

	movieID := 1
	minRating := 5.0
	reviews, total, err := svc.GetAll(context.Background(), ListOptions{
		MovieID:   &movieID,
		MinRating: &minRating,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if total != 1 || reviews[0].ID != 1 {
		t.Errorf("expected only review 1 to match, got %v", reviews)
	}

	reviews, total, err = svc.GetAll(context.Background(), ListOptions{ReviewerName: "critic", Limit: 10})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if total != 1 || reviews[0].ID != 3 {
		t.Errorf("expected reviewer name substring match, got %v", reviews)
	}
}
