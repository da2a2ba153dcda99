package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "stayrate/internal/bookings/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

type BookingRepository interface {
	FindAll(ctx context.Context) ([]model.Booking, error)
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	FindByRoom(ctx context.Context, roomID int) ([]model.Booking, error)
	Insert(ctx context.Context, booking *model.Booking) error
	Update(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id int) error

	// CancelByRoom flips every non-cancelled booking of the room to
	// cancelled in a single collection write and reports how many it
	// touched. Bookings are retained, never deleted, when a room goes away.
	CancelByRoom(ctx context.Context, roomID int) (int, error)
}

type bookingRepository struct {
	store storage.Store[model.Booking]
}

func NewBookingRepository(store storage.Store[model.Booking]) BookingRepository {
	return &bookingRepository{store: store}
}

func (r *bookingRepository) FindAll(_ context.Context) ([]model.Booking, error) {
	bookings, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			return &bookings[i], nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (r *bookingRepository) FindByRoom(ctx context.Context, roomID int) ([]model.Booking, error) {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]model.Booking, 0)
	for i := range bookings {
		if bookings[i].RoomID == roomID {
			matched = append(matched, bookings[i])
		}
	}
	return matched, nil
}

func (r *bookingRepository) Insert(ctx context.Context, booking *model.Booking) error {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	booking.ID = nextID(bookings)
	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	bookings = append(bookings, *booking)

	if err := r.store.SaveAll(bookings); err != nil {
		return fmt.Errorf("failed to save bookings: %w", err)
	}
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range bookings {
		if bookings[i].ID == booking.ID {
			bookings[i] = *booking
			if err := r.store.SaveAll(bookings); err != nil {
				return fmt.Errorf("failed to save bookings: %w", err)
			}
			return nil
		}
	}
	return bookingserrors.ErrNotFound
}

func (r *bookingRepository) Delete(ctx context.Context, id int) error {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range bookings {
		if bookings[i].ID == id {
			bookings = append(bookings[:i], bookings[i+1:]...)
			if err := r.store.SaveAll(bookings); err != nil {
				return fmt.Errorf("failed to save bookings: %w", err)
			}
			return nil
		}
	}
	return bookingserrors.ErrNotFound
}

func (r *bookingRepository) CancelByRoom(ctx context.Context, roomID int) (int, error) {
	bookings, err := r.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for i := range bookings {
		if bookings[i].RoomID == roomID && bookings[i].Status != model.BookingStatusCancelled {
			bookings[i].Status = model.BookingStatusCancelled
			cancelled++
		}
	}

	if err := r.store.SaveAll(bookings); err != nil {
		return 0, fmt.Errorf("failed to save bookings: %w", err)
	}
	return cancelled, nil
}

func nextID(bookings []model.Booking) int {
	maxID := 0
	for i := range bookings {
		if bookings[i].ID > maxID {
			maxID = bookings[i].ID
		}
	}
	return maxID + 1
}
