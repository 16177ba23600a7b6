package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/task-system/internal/api/middleware"
	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

type stubTaskService struct {
	createFn  func(ctx context.Context, input ports.CreateTaskInput, ownerID string) (*domain.Task, error)
	listFn    func(ctx context.Context, ownerID string) ([]*domain.Task, error)
	getFn     func(ctx context.Context, taskID, callerID string) (*domain.Task, error)
	updateFn  func(ctx context.Context, taskID string, input ports.UpdateTaskInput, callerID string) (*domain.Task, error)
	deleteFn  func(ctx context.Context, taskID, callerID string) error
	listAllFn func(ctx context.Context) ([]*domain.Task, error)
}

func (s *stubTaskService) Create(ctx context.Context, input ports.CreateTaskInput, ownerID string) (*domain.Task, error) {
	return s.createFn(ctx, input, ownerID)
}

func (s *stubTaskService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubTaskService) Get(ctx context.Context, taskID, callerID string) (*domain.Task, error) {
	return s.getFn(ctx, taskID, callerID)
}

func (s *stubTaskService) Update(ctx context.Context, taskID string, input ports.UpdateTaskInput, callerID string) (*domain.Task, error) {
	return s.updateFn(ctx, taskID, input, callerID)
}

func (s *stubTaskService) Delete(ctx context.Context, taskID, callerID string) error {
	return s.deleteFn(ctx, taskID, callerID)
}

func (s *stubTaskService) ListAll(ctx context.Context) ([]*domain.Task, error) {
	return s.listAllFn(ctx)
}

func authedContext(e *echo.Echo, method, path, body, userID string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxUsername, "alice")
	return c, rec
}

func TestTaskHandler_Create(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, input ports.CreateTaskInput, ownerID string) (*domain.Task, error) {
			if ownerID != "u1" {
				t.Fatalf("owner = %q, want caller id", ownerID)
			}
			if input.Title != "write report" || input.DueDate.Format("2006-01-02") != "2026-09-15" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{ID: "t1", Title: input.Title, Status: domain.StatusTodo, OwnerID: ownerID, DueDate: input.DueDate}, nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := authedContext(e, http.MethodPost, "/api/tasks", `{"title":"write report","dueDate":"2026-09-15"}`, "u1")
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "t1" || resp["status"] != "TODO" || resp["dueDate"] != "2026-09-15" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Create_ValidationFailures(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, input ports.CreateTaskInput, ownerID string) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTaskHandler(stub)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"dueDate":"2026-09-15"}`},
		{"bad due date", `{"title":"x","dueDate":"15/09/2026"}`},
		{"bad status", `{"title":"x","status":"SOMEDAY"}`},
	}
	for _, tc := range cases {
		c, _ := authedContext(e, http.MethodPost, "/api/tasks", tc.body, "u1")
		err := handler.Create(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", tc.name, err)
		}
	}
}

func TestTaskHandler_Get_ForbiddenPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		getFn: func(ctx context.Context, taskID, callerID string) (*domain.Task, error) {
			if taskID != "t9" || callerID != "u2" {
				t.Fatalf("unexpected args: %s %s", taskID, callerID)
			}
			return nil, domain.ErrForbidden
		},
	}
	handler := NewTaskHandler(stub)

	c, _ := authedContext(e, http.MethodGet, "/api/tasks/t9", "", "u2")
	c.SetParamNames("id")
	c.SetParamValues("t9")

	if err := handler.Get(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func TestTaskHandler_NoIdentity(t *testing.T) {
	e := newEcho()
	handler := NewTaskHandler(&stubTaskService{})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestTaskHandler_ListAll(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		listAllFn: func(ctx context.Context) ([]*domain.Task, error) {
			return []*domain.Task{
				{ID: "t1", Title: "a", Status: domain.StatusTodo, OwnerID: "u1"},
				{ID: "t2", Title: "b", Status: domain.StatusDone, OwnerID: "u2"},
			}, nil
		},
	}
	handler := NewTaskHandler(stub)

	// ListAll does not consult the principal; RBAC guards the route.
	req := httptest.NewRequest(http.MethodGet, "/api/tasks/all", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(resp))
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, taskID, callerID string) error {
			if taskID != "t1" || callerID != "u1" {
				t.Fatalf("unexpected args: %s %s", taskID, callerID)
			}
			return nil
		},
	}
	handler := NewTaskHandler(stub)

	c, rec := authedContext(e, http.MethodDelete, "/api/tasks/t1", "", "u1")
	c.SetParamNames("id")
	c.SetParamValues("t1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
