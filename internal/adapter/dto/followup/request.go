package followup

import "time"

// SubmitMeetingRequest represents one raw meeting-notes submission
type SubmitMeetingRequest struct {
	Subject     string     `json:"subject" validate:"omitempty,max=255"`
	Text        string     `json:"text" validate:"required,min=1"`
	SubmittedOn *time.Time `json:"submitted_on,omitempty"`
}

// ListTasksRequest represents query parameters for listing tasks
type ListTasksRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=OPEN COMPLETED DELETED"`
	Priority string `query:"priority" validate:"omitempty,oneof=URGENT HIGH MEDIUM LOW"`
	Owner    string `query:"owner"`
	Meeting  string `query:"meeting"`
}

// TransitionRequest represents the request to move a task to a
// terminal status
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=COMPLETED DELETED"`
	Note   string `json:"note,omitempty" validate:"omitempty,max=2000"`
	By     string `json:"by,omitempty" validate:"omitempty,max=255"`
}

// IngestReplyRequest represents one inbound reply to process
type IngestReplyRequest struct {
	Sender string `json:"sender" validate:"required,min=1,max=255"`
	Body   string `json:"body" validate:"required,min=1"`
}

// ResolveUserRequest represents query parameters for a directory lookup
type ResolveUserRequest struct {
	Token string `query:"token" validate:"required,min=1,max=255"`
}
