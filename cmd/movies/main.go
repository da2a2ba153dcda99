package main

import (
	movieshandler "stayrate/internal/movies/handler"
	moviesrepo "stayrate/internal/movies/repository"
	moviesservice "stayrate/internal/movies/service"
	moviesvalidator "stayrate/internal/movies/validator"
	reviewshandler "stayrate/internal/reviews/handler"
	reviewsrepo "stayrate/internal/reviews/repository"
	reviewsservice "stayrate/internal/reviews/service"
	reviewsvalidator "stayrate/internal/reviews/validator"
	"stayrate/pkg/app"
	"stayrate/pkg/config"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

const ServiceName = "movies"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Movies service")

	movieStore := storage.NewFileStore[model.Movie](cfg.DataDir, storage.MoviesFile)
	reviewStore := storage.NewFileStore[model.Review](cfg.DataDir, storage.ReviewsFile)

	movieRepo := moviesrepo.NewMovieRepository(movieStore)
	reviewRepo := reviewsrepo.NewReviewRepository(reviewStore)

	movieService := moviesservice.NewMovieService(
		movieRepo,
		reviewRepo,
		moviesvalidator.NewMovieValidator(cfg.Log),
		cfg,
	)

	// The movie service recomputes derived rating fields whenever the review
	// service mutates the review collection.
	reviewService := reviewsservice.NewReviewService(
		reviewRepo,
		movieRepo,
		movieService,
		reviewsvalidator.NewReviewValidator(cfg.Log),
		cfg,
	)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		movieshandler.NewMovieHandler(movieService, cfg.Log),
		reviewshandler.NewReviewHandler(reviewService, cfg.Log),
	)
	serverApp.Run()
}
