package repository

import (
	"context"
	"fmt"

	movieserrors "stayrate/internal/movies/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

type MovieRepository interface {
	FindAll(ctx context.Context) ([]model.Movie, error)
	FindByID(ctx context.Context, id int) (*model.Movie, error)
	Insert(ctx context.Context, movie *model.Movie) error
	Update(ctx context.Context, movie *model.Movie) error
	Delete(ctx context.Context, id int) error

	// UpdateStats writes the derived rating/review_count onto one movie,
	// leaving every other field untouched.
	UpdateStats(ctx context.Context, movieID int, rating *float64, reviewCount int) error
}

type movieRepository struct {
	store storage.Store[model.Movie]
}

func NewMovieRepository(store storage.Store[model.Movie]) MovieRepository {
	return &movieRepository{store: store}
}

func (r *movieRepository) FindAll(_ context.Context) ([]model.Movie, error) {
	movies, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load movies: %w", err)
	}
	return movies, nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int) (*model.Movie, error) {
	movies, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].ID == id {
			return &movies[i], nil
		}
	}
	return nil, movieserrors.ErrNotFound
}

func (r *movieRepository) Insert(ctx context.Context, movie *model.Movie) error {
	movies, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	movie.ID = nextID(movies)
	movies = append(movies, *movie)

	if err := r.store.SaveAll(movies); err != nil {
		return fmt.Errorf("failed to save movies: %w", err)
	}
	return nil
}

func (r *movieRepository) Update(ctx context.Context, movie *model.Movie) error {
	movies, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range movies {
		if movies[i].ID == movie.ID {
			movies[i] = *movie
			if err := r.store.SaveAll(movies); err != nil {
				return fmt.Errorf("failed to save movies: %w", err)
			}
			return nil
		}
	}
	return movieserrors.ErrNotFound
}

func (r *movieRepository) Delete(ctx context.Context, id int) error {
	movies, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range movies {
		if movies[i].ID == id {
			movies = append(movies[:i], movies[i+1:]...)
			if err := r.store.SaveAll(movies); err != nil {
				return fmt.Errorf("failed to save movies: %w", err)
			}
			return nil
		}
	}
	return movieserrors.ErrNotFound
}

func (r *movieRepository) UpdateStats(ctx context.Context, movieID int, rating *float64, reviewCount int) error {
	movies, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range movies {
		if movies[i].ID == movieID {
			movies[i].Rating = rating
			movies[i].ReviewCount = reviewCount
			if err := r.store.SaveAll(movies); err != nil {
				return fmt.Errorf("failed to save movies: %w", err)
			}
			return nil
		}
	}
	return movieserrors.ErrNotFound
}

func nextID(movies []model.Movie) int {
	maxID := 0
	for i := range movies {
		if movies[i].ID > maxID {
			maxID = movies[i].ID
		}
	}
	return maxID + 1
}
