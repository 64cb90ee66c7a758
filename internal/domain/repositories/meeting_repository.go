package repositories

import (
	"context"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	Get(ctx context.Context, meetingID string) (*entities.Meeting, error)
	// ListIDsByDate returns every meeting id carrying the given
	// YYYYMMDD date segment; used by the identifier generator to pick
	// the next per-day sequence.
	ListIDsByDate(ctx context.Context, yyyymmdd string) ([]string, error)
}
