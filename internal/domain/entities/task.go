package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TaskStatus is the lifecycle state of a task
type TaskStatus string

const (
	StatusOpen      TaskStatus = "OPEN"
	StatusCompleted TaskStatus = "COMPLETED"
	StatusDeleted   TaskStatus = "DELETED"
)

// IsValid checks if the status is a known value
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusCompleted, StatusDeleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further automatic transition is allowed
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDeleted
}

// TaskPriority drives deadlines and reminder cadence
type TaskPriority string

const (
	PriorityUrgent TaskPriority = "URGENT"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityLow    TaskPriority = "LOW"
)

// IsValid checks if the priority is a known value
func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Note is one annotation appended to a task as replies arrive
type Note struct {
	At   time.Time `json:"at"`
	By   string    `json:"by,omitempty"`
	Text string    `json:"text"`
}

// Task is one action item extracted from meeting notes.
// Column names are kept stable for compatibility with the registry layout.
type Task struct {
	TaskID            string         `json:"task_id" gorm:"column:task_id;type:varchar(64);primaryKey"`
	MeetingID         string         `json:"meeting_id" gorm:"column:meeting_id;type:varchar(32);index;not null"`
	Owner             string         `json:"owner" gorm:"column:owner;type:varchar(255);index;not null"`
	OwnerResolved     bool           `json:"owner_resolved" gorm:"column:owner_resolved;default:false;not null"`
	TaskText          string         `json:"task_text" gorm:"column:task_text;type:text;not null"`
	Status            TaskStatus     `json:"status" gorm:"column:status;type:varchar(16);index;default:'OPEN';not null"`
	Priority          TaskPriority   `json:"priority" gorm:"column:priority;type:varchar(16);index;default:'MEDIUM';not null"`
	CreatedOn         time.Time      `json:"created_on" gorm:"column:created_on;not null"`
	Deadline          time.Time      `json:"deadline" gorm:"column:deadline;not null"`
	LastReminderDate  *time.Time     `json:"last_reminder_date,omitempty" gorm:"column:last_reminder_date"`
	CompletedDate     *time.Time     `json:"completed_date,omitempty" gorm:"column:completed_date"`
	DaysTaken         *int           `json:"days_taken,omitempty" gorm:"column:days_taken"`
	PerformanceRating *string        `json:"performance_rating,omitempty" gorm:"column:performance_rating;type:varchar(16)"`
	Notes             datatypes.JSON `json:"notes" gorm:"column:notes;type:jsonb;default:'[]'"`
	Escalated         bool           `json:"escalated" gorm:"column:escalated;default:false;not null"`
}

// TableName overrides the GORM table name
func (Task) TableName() string {
	return "tasks_registry"
}

// Overdue reports whether the deadline has passed at the given instant
func (t *Task) Overdue(now time.Time) bool {
	return now.After(t.Deadline)
}

// NoteList decodes the appended annotations. A corrupt trail decodes to
// an empty list rather than failing the read.
func (t *Task) NoteList() []Note {
	if len(t.Notes) == 0 {
		return nil
	}
	var notes []Note
	if err := json.Unmarshal(t.Notes, &notes); err != nil {
		return nil
	}
	return notes
}

// AppendNote adds an annotation to the trail
func (t *Task) AppendNote(n Note) {
	notes := append(t.NoteList(), n)
	raw, err := json.Marshal(notes)
	if err != nil {
		return
	}
	t.Notes = datatypes.JSON(raw)
}

// Clone returns a deep value copy so snapshots stay immutable
func (t *Task) Clone() *Task {
	c := *t
	if t.LastReminderDate != nil {
		v := *t.LastReminderDate
		c.LastReminderDate = &v
	}
	if t.CompletedDate != nil {
		v := *t.CompletedDate
		c.CompletedDate = &v
	}
	if t.DaysTaken != nil {
		v := *t.DaysTaken
		c.DaysTaken = &v
	}
	if t.PerformanceRating != nil {
		v := *t.PerformanceRating
		c.PerformanceRating = &v
	}
	if t.Notes != nil {
		c.Notes = make(datatypes.JSON, len(t.Notes))
		copy(c.Notes, t.Notes)
	}
	return &c
}
