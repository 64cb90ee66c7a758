package entities

import "time"

// Meeting represents one meeting-notes submission.
// The id is assigned at parse time and immutable afterwards.
type Meeting struct {
	MeetingID   string    `json:"meeting_id" gorm:"column:meeting_id;type:varchar(32);primaryKey"`
	Subject     string    `json:"subject" gorm:"column:subject;type:varchar(500)"`
	SubmittedOn time.Time `json:"submitted_on" gorm:"column:submitted_on;index;not null"`
	TaskCount   int       `json:"task_count" gorm:"column:task_count;default:0;not null"`
	ArchiveKey  string    `json:"archive_key,omitempty" gorm:"column:archive_key;type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the GORM table name
func (Meeting) TableName() string {
	return "meetings"
}
