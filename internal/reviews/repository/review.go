package repository

import (
	"context"
	"fmt"
	"time"

	reviewserrors "stayrate/internal/reviews/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

type ReviewRepository interface {
	FindAll(ctx context.Context) ([]model.Review, error)
	FindByID(ctx context.Context, id int) (*model.Review, error)
	FindByMovie(ctx context.Context, movieID int) ([]model.Review, error)
	Insert(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id int) error

	// DeleteByMovie hard-deletes every review of the movie in a single
	// collection write and reports how many were removed.
	DeleteByMovie(ctx context.Context, movieID int) (int, error)
}

type reviewRepository struct {
	store storage.Store[model.Review]
}

func NewReviewRepository(store storage.Store[model.Review]) ReviewRepository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) FindAll(_ context.Context) ([]model.Review, error) {
	reviews, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int) (*model.Review, error) {
	reviews, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		if reviews[i].ID == id {
			return &reviews[i], nil
		}
	}
	return nil, reviewserrors.ErrNotFound
}

func (r *reviewRepository) FindByMovie(ctx context.Context, movieID int) ([]model.Review, error) {
	reviews, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Review, 0)
	for i := range reviews {
		if reviews[i].MovieID == movieID {
			matched = append(matched, reviews[i])
		}
	}
	return matched, nil
}

func (r *reviewRepository) Insert(ctx context.Context, review *model.Review) error {
	reviews, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	review.ID = nextID(reviews)
	review.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	reviews = append(reviews, *review)

	if err := r.store.SaveAll(reviews); err != nil {
		return fmt.Errorf("failed to save reviews: %w", err)
	}
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	reviews, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		if reviews[i].ID == review.ID {
			reviews[i] = *review
			if err := r.store.SaveAll(reviews); err != nil {
				return fmt.Errorf("failed to save reviews: %w", err)
			}
			return nil
		}
	}
	return reviewserrors.ErrNotFound
}

func (r *reviewRepository) Delete(ctx context.Context, id int) error {
	reviews, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range reviews {
		if reviews[i].ID == id {
			reviews = append(reviews[:i], reviews[i+1:]...)
			if err := r.store.SaveAll(reviews); err != nil {
				return fmt.Errorf("failed to save reviews: %w", err)
			}
			return nil
		}
	}
	return reviewserrors.ErrNotFound
}

func (r *reviewRepository) DeleteByMovie(ctx context.Context, movieID int) (int, error) {
	reviews, err := r.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	remaining := make([]model.Review, 0, len(reviews))
	for i := range reviews {
		if reviews[i].MovieID != movieID {
			remaining = append(remaining, reviews[i])
		}
	}
	deleted := len(reviews) - len(remaining)

	if err := r.store.SaveAll(remaining); err != nil {
		return 0, fmt.Errorf("failed to save reviews: %w", err)
	}
	return deleted, nil
}

func nextID(reviews []model.Review) int {
	maxID := 0
	for i := range reviews {
		if reviews[i].ID > maxID {
			maxID = reviews[i].ID
		}
	}
	return maxID + 1
}
