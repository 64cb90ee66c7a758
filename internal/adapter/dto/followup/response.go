package followup

import "time"

// TaskResponse represents a single registry task
type TaskResponse struct {
	TaskID            string     `json:"task_id"`
	MeetingID         string     `json:"meeting_id"`
	Owner             string     `json:"owner"`
	OwnerResolved     bool       `json:"owner_resolved"`
	TaskText          string     `json:"task_text"`
	Status            string     `json:"status"`
	Priority          string     `json:"priority"`
	CreatedOn         time.Time  `json:"created_on"`
	Deadline          time.Time  `json:"deadline"`
	LastReminderDate  *time.Time `json:"last_reminder_date,omitempty"`
	CompletedDate     *time.Time `json:"completed_date,omitempty"`
	DaysTaken         *int       `json:"days_taken,omitempty"`
	PerformanceRating *string    `json:"performance_rating,omitempty"`
	Notes             []NoteItem `json:"notes,omitempty"`
	Escalated         bool       `json:"escalated"`
}

// NoteItem represents one free-text note attached to a task
type NoteItem struct {
	At   time.Time `json:"at"`
	By   string    `json:"by,omitempty"`
	Text string    `json:"text"`
}

// ListTasksResponse wraps a task listing
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// SubmitMeetingResponse is the outcome of one notes submission
type SubmitMeetingResponse struct {
	MeetingID        string         `json:"meeting_id"`
	Subject          string         `json:"subject,omitempty"`
	SubmittedOn      time.Time      `json:"submitted_on"`
	TaskCount        int            `json:"task_count"`
	ArchiveKey       string         `json:"archive_key,omitempty"`
	Tasks            []TaskResponse `json:"tasks"`
	UnresolvedOwners []string       `json:"unresolved_owners,omitempty"`
}

// ResolveUserResponse is the outcome of a directory lookup
type ResolveUserResponse struct {
	Resolved bool   `json:"resolved"`
	Username string `json:"username,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}
