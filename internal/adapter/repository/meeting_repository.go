package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// MeetingRepository implements the meeting store using GORM
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Create inserts a new meeting record
func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrMeetingAlreadyExists
		}
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// Get finds a meeting by id
func (r *MeetingRepository) Get(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting by ID: %w", err)
	}
	return &meeting, nil
}

// ListIDsByDate returns meeting ids carrying the given YYYYMMDD segment
func (r *MeetingRepository) ListIDsByDate(ctx context.Context, yyyymmdd string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&entities.Meeting{}).
		Where("meeting_id LIKE ?", fmt.Sprintf("MOM-%s-%%", yyyymmdd)).
		Pluck("meeting_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meeting ids for %s: %w", yyyymmdd, err)
	}
	return ids, nil
}
