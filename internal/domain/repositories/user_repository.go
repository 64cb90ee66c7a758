package repositories

import (
	"context"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// UserRepository defines persistence operations for the team directory
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	ListActive(ctx context.Context) ([]*entities.User, error)
}
