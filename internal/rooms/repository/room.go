package repository

import (
	"context"
	"fmt"

	roomserrors "stayrate/internal/rooms/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

// RoomRepository is the whole-collection read-modify-write access layer for
// rooms. Every mutation loads the full collection, changes it in memory and
// writes it back; there is no locking between callers.
type RoomRepository interface {
	FindAll(ctx context.Context) ([]model.Room, error)
	FindByID(ctx context.Context, id int) (*model.Room, error)
	FindByNumber(ctx context.Context, number string) (*model.Room, error)
	Insert(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id int) error
}

type roomRepository struct {
	store storage.Store[model.Room]
}

func NewRoomRepository(store storage.Store[model.Room]) RoomRepository {
	return &roomRepository{store: store}
}

func (r *roomRepository) FindAll(_ context.Context) ([]model.Room, error) {
	rooms, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	return rooms, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id int) (*model.Room, error) {
	rooms, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i], nil
		}
	}
	return nil, roomserrors.ErrNotFound
}

func (r *roomRepository) FindByNumber(ctx context.Context, number string) (*model.Room, error) {
	rooms, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rooms {
		if rooms[i].RoomNumber == number {
			return &rooms[i], nil
		}
	}
	return nil, roomserrors.ErrNotFound
}

func (r *roomRepository) Insert(ctx context.Context, room *model.Room) error {
	rooms, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	room.ID = nextID(rooms)
	rooms = append(rooms, *room)

	if err := r.store.SaveAll(rooms); err != nil {
		return fmt.Errorf("failed to save rooms: %w", err)
	}
	return nil
}

func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	rooms, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range rooms {
		if rooms[i].ID == room.ID {
			rooms[i] = *room
			if err := r.store.SaveAll(rooms); err != nil {
				return fmt.Errorf("failed to save rooms: %w", err)
			}
			return nil
		}
	}
	return roomserrors.ErrNotFound
}

func (r *roomRepository) Delete(ctx context.Context, id int) error {
	rooms, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range rooms {
		if rooms[i].ID == id {
			rooms = append(rooms[:i], rooms[i+1:]...)
			if err := r.store.SaveAll(rooms); err != nil {
				return fmt.Errorf("failed to save rooms: %w", err)
			}
			return nil
		}
	}
	return roomserrors.ErrNotFound
}

func nextID(rooms []model.Room) int {
	maxID := 0
	for i := range rooms {
		if rooms[i].ID > maxID {
			maxID = rooms[i].ID
		}
	}
	return maxID + 1
}
