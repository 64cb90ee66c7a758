package entities

import (
	"time"

	"github.com/google/uuid"
)

// EscalationEvent records one overdue notification handed to the
// oversight channel. Kept as an audit trail, never deleted.
type EscalationEvent struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key"`
	TaskID      string       `json:"task_id" gorm:"column:task_id;type:varchar(64);index;not null"`
	MeetingID   string       `json:"meeting_id" gorm:"column:meeting_id;type:varchar(32)"`
	Owner       string       `json:"owner" gorm:"column:owner;type:varchar(255);not null"`
	TaskText    string       `json:"task_text" gorm:"column:task_text;type:text"`
	Priority    TaskPriority `json:"priority" gorm:"column:priority;type:varchar(16)"`
	Deadline    time.Time    `json:"deadline" gorm:"column:deadline;not null"`
	DaysOverdue int          `json:"days_overdue" gorm:"column:days_overdue;not null"`
	CreatedAt   time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the GORM table name
func (EscalationEvent) TableName() string {
	return "escalation_log"
}
