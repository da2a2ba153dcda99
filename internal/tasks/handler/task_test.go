package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stayrate/internal/tasks/service"
	"stayrate/pkg/logger"
	"stayrate/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockTaskService struct {
	createFunc func(ctx context.Context, task *model.Task) error
	getAllFunc func(ctx context.Context, opts service.ListOptions) ([]model.Task, int, error)
}

func (m *mockTaskService) Create(ctx context.Context, task *model.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskService) GetByID(ctx context.Context, id int) (*model.Task, error) {
	return &model.Task{ID: id}, nil
}

func (m *mockTaskService) GetAll(ctx context.Context, opts service.ListOptions) ([]model.Task, int, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, opts)
	}
	return []model.Task{}, 0, nil
}

func (m *mockTaskService) Update(ctx context.Context, id int, updated *model.Task) (*model.Task, error) {
	return updated, nil
}

func (m *mockTaskService) Delete(ctx context.Context, id int) (*model.Task, error) {
	return &model.Task{ID: id}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
}

func TestCreate_InvalidBody(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetByID_InvalidID(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{}, testLogger())

	tests := []string{"abc", "0", "-3"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/id/"+raw, nil)
			w := httptest.NewRecorder()

			h.GetByID(w, req, httprouter.Params{{Key: "id", Value: raw}})

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 for id %q, got %d", raw, w.Code)
			}
		})
	}
}

func TestGetAll_NormalizesPagination(t *testing.T) {
	var received service.ListOptions
	mock := &mockTaskService{
		getAllFunc: func(ctx context.Context, opts service.ListOptions) ([]model.Task, int, error) {
			received = opts
			return []model.Task{}, 0, nil
		},
	}
	h := NewTaskHandler(mock, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?limit=500&offset=-2", nil)
	w := httptest.NewRecorder()

	h.GetAll(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if received.Limit != 100 {
		t.Errorf("expected limit capped at 100, got %d", received.Limit)
	}
	if received.Offset != 0 {
		t.Errorf("expected negative offset normalized to 0, got %d", received.Offset)
	}
}

func TestGetAll_PaginatedEnvelope(t *testing.T) {
	mock := &mockTaskService{
		getAllFunc: func(ctx context.Context, opts service.ListOptions) ([]model.Task, int, error) {
			return []model.Task{{ID: 1, Title: "Only task"}}, 1, nil
		},
	}
	h := NewTaskHandler(mock, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
	w := httptest.NewRecorder()

	h.GetAll(w, req, httprouter.Params{})

	var body struct {
		Data       []model.Task `json:"data"`
		TotalCount int          `json:"total_count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.TotalCount != 1 || len(body.Data) != 1 {
		t.Errorf("unexpected envelope: %+v", body)
	}
}

func TestGetAll_InvalidSortField(t *testing.T) {
	h := NewTaskHandler(&mockTaskService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks?sort_by=priority", nil)
	w := httptest.NewRecorder()

	h.GetAll(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown sort field, got %d", w.Code)
	}
}
