package ports

import (
	"context"

	"github.com/taskmanagement/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Uniqueness of username and email is enforced by the store itself so that
// concurrent first-time signups cannot create duplicate accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail matches identifier against either column.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}

// RoleRepository defines persistence operations for roles.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	// Ensure creates the named role when absent and returns it either way.
	// Safe to re-run on every process start.
	Ensure(ctx context.Context, name string) (*domain.Role, error)
}
