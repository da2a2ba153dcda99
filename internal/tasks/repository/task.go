package repository

import (
	"context"
	"fmt"

	taskserrors "stayrate/internal/tasks/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/storage"
)

type TaskRepository interface {
	FindAll(ctx context.Context) ([]model.Task, error)
	FindByID(ctx context.Context, id int) (*model.Task, error)
	Insert(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id int) error
}

type taskRepository struct {
	store storage.Store[model.Task]
}

func NewTaskRepository(store storage.Store[model.Task]) TaskRepository {
	return &taskRepository{store: store}
}

func (r *taskRepository) FindAll(_ context.Context) ([]model.Task, error) {
	tasks, err := r.store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return tasks, nil
}

func (r *taskRepository) FindByID(ctx context.Context, id int) (*model.Task, error) {
	tasks, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, taskserrors.ErrNotFound
}

func (r *taskRepository) Insert(ctx context.Context, task *model.Task) error {
	tasks, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	maxID := 0
	for i := range tasks {
		if tasks[i].ID > maxID {
			maxID = tasks[i].ID
		}
	}
	task.ID = maxID + 1
	tasks = append(tasks, *task)

	if err := r.store.SaveAll(tasks); err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	tasks, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = *task
			if err := r.store.SaveAll(tasks); err != nil {
				return fmt.Errorf("failed to save tasks: %w", err)
			}
			return nil
		}
	}
	return taskserrors.ErrNotFound
}

func (r *taskRepository) Delete(ctx context.Context, id int) error {
	tasks, err := r.FindAll(ctx)
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			if err := r.store.SaveAll(tasks); err != nil {
				return fmt.Errorf("failed to save tasks: %w", err)
			}
			return nil
		}
	}
	return taskserrors.ErrNotFound
}
