package service

import (
	"context"
	"errors"
	"sort"

	taskserrors "stayrate/internal/tasks/errors"
	"stayrate/internal/tasks/repository"
	"stayrate/internal/tasks/validator"
	"stayrate/pkg/config"
	apperrors "stayrate/pkg/errors"
	"stayrate/pkg/model"
	"stayrate/pkg/sanitizer"
	"stayrate/pkg/validation"
)

type ListOptions struct {
	Completed *bool
	SortBy    string
	Desc      bool
	Limit     int
	Offset    int
}

type TaskService interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id int) (*model.Task, error)
	GetAll(ctx context.Context, opts ListOptions) ([]model.Task, int, error)
	Update(ctx context.Context, id int, updated *model.Task) (*model.Task, error)
	Delete(ctx context.Context, id int) (*model.Task, error)
}

type taskService struct {
	repo      repository.TaskRepository
	validator *validator.TaskValidator
	cfg       *config.Config
}

func NewTaskService(repo repository.TaskRepository, taskValidator *validator.TaskValidator, cfg *config.Config) TaskService {
	return &taskService{
		repo:      repo,
		validator: taskValidator,
		cfg:       cfg,
	}
}

func (s *taskService) Create(ctx context.Context, task *model.Task) error {
	s.sanitize(task)
	task.Completed = false

	if err := s.validate(task); err != nil {
		return err
	}

	if err := s.repo.Insert(ctx, task); err != nil {
		s.cfg.Log.Error("Failed to create task", "error", err)
		return apperrors.Internal("Failed to create task", err)
	}

	s.cfg.Log.Info("Task created successfully", "id", task.ID)
	return nil
}

func (s *taskService) GetByID(ctx context.Context, id int) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, taskserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Task", id)
		}
		return nil, apperrors.Internal("Failed to retrieve task", err)
	}
	return task, nil
}

func (s *taskService) GetAll(ctx context.Context, opts ListOptions) ([]model.Task, int, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list tasks", "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve tasks", err)
	}

	filtered := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if opts.Completed != nil && tasks[i].Completed != *opts.Completed {
			continue
		}
		filtered = append(filtered, tasks[i])
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if opts.Desc {
			i, j = j, i
		}
		if opts.SortBy == "title" {
			return filtered[i].Title < filtered[j].Title
		}
		return filtered[i].ID < filtered[j].ID
	})

	total := len(filtered)
	if opts.Offset >= len(filtered) {
		return []model.Task{}, total, nil
	}
	filtered = filtered[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(filtered) {
		filtered = filtered[:opts.Limit]
	}
	return filtered, total, nil
}

func (s *taskService) Update(ctx context.Context, id int, updated *model.Task) (*model.Task, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sanitize(updated)
	updated.ID = existing.ID

	if err := s.validate(updated); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		s.cfg.Log.Error("Failed to update task", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update task", err)
	}

	s.cfg.Log.Info("Task updated successfully", "id", id)
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, id int) (*model.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, taskserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Task", id)
		}
		return nil, apperrors.Internal("Failed to delete task", err)
	}

	s.cfg.Log.Info("Task deleted successfully", "id", id)
	return task, nil
}

func (s *taskService) sanitize(task *model.Task) {
	task.Title = sanitizer.Text(task.Title)
	task.Description = sanitizer.Text(task.Description)
}

func (s *taskService) validate(task *model.Task) error {
	if err := s.validator.Validate(task); err != nil {
		s.cfg.Log.Warn("Task validation failed", "error", err)
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.Validation("Task validation failed", map[string]any{"errors": fieldErrs})
		}
		return apperrors.Validation("Task validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}
