package repositories

import "context"

// MailTransport hands messages to the outbound mail collaborator.
// Send returns only after the transport confirmed the handoff; callers
// must not advance reminder or escalation state on error.
type MailTransport interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Archiver stores raw meeting-notes submissions for audit
type Archiver interface {
	ArchiveSubmission(ctx context.Context, meetingID, text string) (key string, err error)
}
