package mom

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// Submission is one raw meeting-notes drop
type Submission struct {
	Subject     string
	Text        string
	SubmittedOn time.Time
}

// Result is the outcome of one submission
type Result struct {
	Meeting          *entities.Meeting
	Tasks            []*entities.Task
	UnresolvedOwners []string
}

// Service drives the parse pipeline: split text, stamp identifiers,
// resolve owners, register everything OPEN and archive the raw source.
type Service struct {
	parser   *Parser
	registry *registry.Service
	meetings repo.MeetingRepository
	dir      *directory.Service
	archiver repo.Archiver
	cfg      *config.FollowupConfig
	logger   *zap.Logger
}

// NewService creates a new MOM service; archiver may be nil when the
// archive feature is disabled.
func NewService(parser *Parser, reg *registry.Service, meetings repo.MeetingRepository, dir *directory.Service, archiver repo.Archiver, cfg *config.FollowupConfig, logger *zap.Logger) *Service {
	return &Service{
		parser:   parser,
		registry: reg,
		meetings: meetings,
		dir:      dir,
		archiver: archiver,
		cfg:      cfg,
		logger:   logger,
	}
}

// Submit parses one meeting-notes submission and registers its tasks.
// Zero extracted tasks is a valid, non-error outcome.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if sub.SubmittedOn.IsZero() {
		sub.SubmittedOn = time.Now().UTC()
	}

	meetingID, preassigned := ExtractMeetingID(sub.Subject)
	if !preassigned {
		existing, err := s.meetings.ListIDsByDate(ctx, sub.SubmittedOn.Format("20060102"))
		if err != nil {
			return nil, apperrors.ErrDBQueryFailed(err)
		}
		meetingID = NextMeetingID(sub.SubmittedOn, existing)
	}

	drafts := s.parser.Parse(sub.Text)

	var unresolved []string
	tasks := make([]*entities.Task, 0, len(drafts))
	for i, draft := range drafts {
		owner := draft.OwnerToken
		resolved := false
		if user, ok := s.dir.Resolve(ctx, draft.OwnerToken); ok {
			owner = user.Username
			resolved = true
		} else if owner != "unassigned" {
			unresolved = append(unresolved, draft.OwnerToken)
		}

		tasks = append(tasks, &entities.Task{
			TaskID:        TaskID(meetingID, i+1),
			MeetingID:     meetingID,
			Owner:         owner,
			OwnerResolved: resolved,
			TaskText:      draft.Text,
			Status:        entities.StatusOpen,
			Priority:      draft.Priority,
			CreatedOn:     sub.SubmittedOn,
			Deadline:      sub.SubmittedOn.Add(s.cfg.DeadlineOffset(string(draft.Priority))),
		})
	}

	meeting := &entities.Meeting{
		MeetingID:   meetingID,
		Subject:     sub.Subject,
		SubmittedOn: sub.SubmittedOn,
		TaskCount:   len(tasks),
	}

	// Archive before registration so the audit copy exists even when the
	// create aborts; a failed archive never blocks the submission.
	if s.archiver != nil && s.cfg.EnableArchive {
		key, err := s.archiver.ArchiveSubmission(ctx, meetingID, sub.Text)
		if err != nil {
			s.logger.Warn("failed to archive submission",
				zap.String("meeting_id", meetingID),
				zap.Error(err),
			)
		} else {
			meeting.ArchiveKey = key
		}
	}

	if err := s.registry.CreateMeeting(ctx, meeting, tasks); err != nil {
		return nil, err
	}

	for _, token := range unresolved {
		s.logger.Warn("owner unresolved, kept raw token",
			zap.String("meeting_id", meetingID),
			zap.String("owner", token),
		)
	}

	return &Result{Meeting: meeting, Tasks: tasks, UnresolvedOwners: unresolved}, nil
}

// GetMeeting fetches one registered meeting by id
func (s *Service) GetMeeting(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	return s.registry.GetMeeting(ctx, meetingID)
}
