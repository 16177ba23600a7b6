package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

// TaskService implements task CRUD with per-resource ownership enforcement.
// Admin does not bypass the owner check on single tasks; the only admin
// capability here is ListAll.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// Create persists a new task owned by ownerID.
func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput, ownerID string) (*domain.Task, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.StatusTodo
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      status,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("owner_id", ownerID).Msg("task created")
	return created, nil
}

func (s *TaskService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.tasks.FindByOwner(ctx, ownerID)
}

func (s *TaskService) Get(ctx context.Context, taskID, callerID string) (*domain.Task, error) {
	return s.ownedTask(ctx, taskID, callerID)
}

func (s *TaskService) Update(ctx context.Context, taskID string, input ports.UpdateTaskInput, callerID string) (*domain.Task, error) {
	task, err := s.ownedTask(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.Status = input.Status
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, callerID string) error {
	if _, err := s.ownedTask(ctx, taskID, callerID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", taskID).Str("caller_id", callerID).Msg("task deleted")
	return s.tasks.Delete(ctx, taskID)
}

// ListAll returns every task regardless of owner. Route-level RBAC restricts
// it to ROLE_ADMIN.
func (s *TaskService) ListAll(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.FindAll(ctx)
}

// ownedTask fetches taskID and enforces caller == owner.
func (s *TaskService) ownedTask(ctx context.Context, taskID, callerID string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != callerID {
		return nil, domain.ErrForbidden
	}
	return task, nil
}
