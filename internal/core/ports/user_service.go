package ports

import (
	"context"

	"github.com/taskmanagement/task-system/internal/core/domain"
)

// UserService defines the administrative user-management operations.
// All of them are ADMIN-gated at the transport layer.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
