package repositories

import (
	"context"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// EscalationRepository persists the escalation audit log
type EscalationRepository interface {
	Create(ctx context.Context, event *entities.EscalationEvent) error
	ListByTask(ctx context.Context, taskID string) ([]*entities.EscalationEvent, error)
}
