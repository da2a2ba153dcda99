package service

import (
	"context"
	"errors"
	"testing"

	"stayrate/internal/tasks/repository"
	"stayrate/internal/tasks/validator"
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

func newTestService(tasks ...model.Task) (TaskService, *storage.MemStore[model.Task]) {
	cfg := testConfig()
	store := storage.NewMemStore[model.Task](tasks...)
	svc := NewTaskService(repository.NewTaskRepository(store), validator.NewTaskValidator(cfg.Log), cfg)
	return svc, store
}

func TestCreateTask(t *testing.T) {
	svc, store := newTestService()

	task := model.Task{Title: "Write docs", Description: "Document the API", Completed: true}
	if err := svc.Create(context.Background(), &task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID != 1 {
		t.Errorf("expected id 1, got %d", task.ID)
	}
	if task.Completed {
		t.Error("expected new tasks to start incomplete")
	}
	if store.SaveCount != 1 {
		t.Errorf("expected 1 save, got %d", store.SaveCount)
	}
}

func TestCreateTask_BlankTitleRejected(t *testing.T) {
	svc, _ := newTestService()

	task := model.Task{Title: "   ", Description: "Something to do"}
	err := svc.Create(context.Background(), &task)
	if err == nil {
		t.Fatal("expected blank title to be rejected")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetAll_CompletedFilter(t *testing.T) {
	svc, _ := newTestService(
		model.Task{ID: 1, Title: "Done", Description: "finished work", Completed: true},
		model.Task{ID: 2, Title: "Open", Description: "pending work", Completed: false},
		model.Task{ID: 3, Title: "Also done", Description: "more finished work", Completed: true},
	)

	done := true
	tasks, total, err := svc.GetAll(context.Background(), ListOptions{Completed: &done, Limit: 10})
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 completed tasks, got %d", total)
	}
	for _, task := range tasks {
		if !task.Completed {
			t.Errorf("task %d should be completed", task.ID)
		}
	}
}

func TestUpdateTask(t *testing.T) {
	svc, _ := newTestService(
		model.Task{ID: 1, Title: "Open", Description: "pending work", Completed: false},
	)

	updated, err := svc.Update(context.Background(), 1, &model.Task{
		Title:       "Open",
		Description: "pending work",
		Completed:   true,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected task to be marked completed")
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Delete(context.Background(), 42)
	if err == nil {
		t.Fatal("expected error for missing task")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
