package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
)

// TaskRepository implements the task registry store using GORM
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task record
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrTaskAlreadyExists
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// Get finds a task by id
func (r *TaskRepository) Get(ctx context.Context, taskID string) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}
	return &task, nil
}

// List scans the registry with optional status/priority/owner/meeting filters
func (r *TaskRepository) List(ctx context.Context, filter repo.TaskFilter) ([]*entities.Task, error) {
	q := r.db.WithContext(ctx).Model(&entities.Task{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	if filter.Owner != "" {
		q = q.Where("LOWER(owner) = LOWER(?)", filter.Owner)
	}
	if filter.Meeting != "" {
		q = q.Where("meeting_id = ?", filter.Meeting)
	}

	var tasks []*entities.Task
	if err := q.Order("task_id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update persists a mutated task record
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	res := r.db.WithContext(ctx).Model(&entities.Task{}).
		Where("task_id = ?", task.TaskID).
		Select("*").Omit("task_id").Updates(task)
	if res.Error != nil {
		return fmt.Errorf("failed to update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}
