package repositories

import (
	"context"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// TaskFilter narrows full-table scans over the registry
type TaskFilter struct {
	Status   entities.TaskStatus
	Priority entities.TaskPriority
	Owner    string
	Meeting  string
}

// TaskRepository defines persistence operations for the task registry.
// Tasks are never physically destroyed; deletion is a status value.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	Get(ctx context.Context, taskID string) (*entities.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
}
