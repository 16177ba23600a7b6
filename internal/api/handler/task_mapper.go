package handler

import (
	"time"

	"github.com/taskmanagement/task-system/internal/core/domain"
	"github.com/taskmanagement/task-system/internal/core/ports"
)

const dueDateLayout = "2006-01-02"

// toCreateTaskInput converts a validated request into the service input.
// Date parsing cannot fail here: the validator already enforced the layout.
func toCreateTaskInput(req taskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     parseDueDate(req.DueDate),
		Status:      domain.TaskStatus(req.Status),
	}
}

func toUpdateTaskInput(req taskRequest) ports.UpdateTaskInput {
	status := domain.TaskStatus(req.Status)
	if status == "" {
		status = domain.StatusTodo
	}
	return ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     parseDueDate(req.DueDate),
		Status:      status,
	}
}

func toTaskResponse(task *domain.Task) taskResponse {
	resp := taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		OwnerID:     task.OwnerID,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if !task.DueDate.IsZero() {
		resp.DueDate = task.DueDate.UTC().Format(dueDateLayout)
	}
	return resp
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func parseDueDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(dueDateLayout, s)
	return t
}
