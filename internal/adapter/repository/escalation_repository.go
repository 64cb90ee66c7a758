package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// EscalationRepository implements the escalation audit log using GORM
type EscalationRepository struct {
	db *gorm.DB
}

// NewEscalationRepository creates a new escalation repository
func NewEscalationRepository(db *gorm.DB) *EscalationRepository {
	return &EscalationRepository{db: db}
}

// Create appends one event to the log
func (r *EscalationRepository) Create(ctx context.Context, event *entities.EscalationEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to log escalation: %w", err)
	}
	return nil
}

// ListByTask returns the escalation history of one task
func (r *EscalationRepository) ListByTask(ctx context.Context, taskID string) ([]*entities.EscalationEvent, error) {
	var events []*entities.EscalationEvent
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}
	return events, nil
}
