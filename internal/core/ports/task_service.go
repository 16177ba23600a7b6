package ports

import (
	"context"
	"time"

	"github.com/taskmanagement/task-system/internal/core/domain"
)

// CreateTaskInput carries the fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      domain.TaskStatus
}

// UpdateTaskInput carries the mutable fields of a task.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      domain.TaskStatus
}

// TaskService defines use-case operations for tasks. Single-task operations
// take the caller's id and fail with domain.ErrForbidden when the caller is
// not the owner; ListAll is the admin-only view that bypasses ownership.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput, ownerID string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error)
	Get(ctx context.Context, taskID, callerID string) (*domain.Task, error)
	Update(ctx context.Context, taskID string, input UpdateTaskInput, callerID string) (*domain.Task, error)
	Delete(ctx context.Context, taskID, callerID string) error
	ListAll(ctx context.Context) ([]*domain.Task, error)
}
