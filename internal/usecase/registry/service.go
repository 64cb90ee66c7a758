package registry

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// Service is the canonical task registry and state machine. A single
// mutex serializes mutations so reminder, reply and escalation passes
// never interleave partial writes; mail I/O is never performed under it.
type Service struct {
	mu       sync.Mutex
	tasks    repo.TaskRepository
	meetings repo.MeetingRepository
	cfg      *config.FollowupConfig
	logger   *zap.Logger
}

// NewService creates a new registry service
func NewService(tasks repo.TaskRepository, meetings repo.MeetingRepository, cfg *config.FollowupConfig, logger *zap.Logger) *Service {
	return &Service{
		tasks:    tasks,
		meetings: meetings,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateMeeting persists a parsed meeting and its tasks, all status OPEN.
// A duplicate meeting or task id is an identifier collision and aborts
// the whole parse; ids are never silently regenerated.
func (s *Service) CreateMeeting(ctx context.Context, meeting *entities.Meeting, tasks []*entities.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.meetings.Get(ctx, meeting.MeetingID); err == nil {
		return apperrors.ErrIdentifierCollision(meeting.MeetingID)
	} else if !errors.Is(err, entities.ErrMeetingNotFound) {
		return apperrors.ErrDBQueryFailed(err)
	}

	if err := s.meetings.Create(ctx, meeting); err != nil {
		if errors.Is(err, entities.ErrMeetingAlreadyExists) {
			return apperrors.ErrIdentifierCollision(meeting.MeetingID)
		}
		return apperrors.ErrDBQueryFailed(err)
	}

	for _, task := range tasks {
		if err := s.tasks.Create(ctx, task); err != nil {
			if errors.Is(err, entities.ErrTaskAlreadyExists) {
				return apperrors.ErrIdentifierCollision(task.TaskID)
			}
			return apperrors.ErrDBQueryFailed(err)
		}
	}

	s.logger.Info("meeting registered",
		zap.String("meeting_id", meeting.MeetingID),
		zap.Int("task_count", len(tasks)),
	)
	return nil
}

// Get returns a value copy of one task
func (s *Service) Get(ctx context.Context, taskID string) (*entities.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound(taskID)
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return task.Clone(), nil
}

// List returns snapshot value copies; later mutations never leak into a
// previously returned slice.
func (s *Service) List(ctx context.Context, filter repo.TaskFilter) ([]entities.Task, error) {
	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *t.Clone())
	}
	return out, nil
}

// ListOpen returns a snapshot of every OPEN task
func (s *Service) ListOpen(ctx context.Context) ([]entities.Task, error) {
	return s.List(ctx, repo.TaskFilter{Status: entities.StatusOpen})
}

// Transition moves a task to a terminal status. Re-applying the same
// terminal status is a no-op that still appends the note; crossing
// between terminal statuses is rejected. First completion stamps
// completed_date, days_taken and the performance rating.
func (s *Service) Transition(ctx context.Context, taskID string, newStatus entities.TaskStatus, note *entities.Note, now time.Time) (*entities.Task, error) {
	if !newStatus.IsValid() || !newStatus.IsTerminal() {
		return nil, apperrors.ErrInvalidArgument("transition target must be COMPLETED or DELETED")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound(taskID)
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	switch {
	case task.Status == newStatus:
		// Idempotent repeat; completion fields are not recomputed.
		if note != nil {
			task.AppendNote(*note)
		}
	case task.Status.IsTerminal():
		return nil, apperrors.ErrInvalidTransition(taskID, string(task.Status), string(newStatus))
	default:
		task.Status = newStatus
		if note != nil {
			task.AppendNote(*note)
		}
		if newStatus == entities.StatusCompleted {
			completed := now
			task.CompletedDate = &completed
			days := floorDays(completed.Sub(task.CreatedOn))
			task.DaysTaken = &days
			rating := s.cfg.Rating(floorDays(completed.Sub(task.Deadline)))
			task.PerformanceRating = &rating
		}
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	s.logger.Info("task transitioned",
		zap.String("task_id", taskID),
		zap.String("status", string(task.Status)),
	)
	return task.Clone(), nil
}

// AppendNote attaches an annotation without touching the status
func (s *Service) AppendNote(ctx context.Context, taskID string, note entities.Note) (*entities.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound(taskID)
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}

	task.AppendNote(note)
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return task.Clone(), nil
}

// TouchReminder records that a reminder was actually sent. Callers
// invoke this only after the mail transport confirmed the handoff.
func (s *Service) TouchReminder(ctx context.Context, taskID string, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return apperrors.ErrTaskNotFound(taskID)
		}
		return apperrors.ErrDBQueryFailed(err)
	}

	// last_reminder_date must never precede created_on
	if ts.Before(task.CreatedOn) {
		return apperrors.ErrInvalidArgument("reminder timestamp precedes task creation")
	}

	task.LastReminderDate = &ts
	if err := s.tasks.Update(ctx, task); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}
	return nil
}

// MarkEscalated flips the escalated flag. Only legal while the task is
// OPEN and currently overdue; the flag is never unset here.
func (s *Service) MarkEscalated(ctx context.Context, taskID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return apperrors.ErrTaskNotFound(taskID)
		}
		return apperrors.ErrDBQueryFailed(err)
	}

	if task.Escalated {
		return nil
	}
	if task.Status != entities.StatusOpen || !task.Overdue(now) {
		return apperrors.ErrInvalidArgument("task is not eligible for escalation")
	}

	task.Escalated = true
	if err := s.tasks.Update(ctx, task); err != nil {
		return apperrors.ErrDBQueryFailed(err)
	}

	s.logger.Info("task escalated", zap.String("task_id", taskID))
	return nil
}

// GetMeeting returns one meeting record
func (s *Service) GetMeeting(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	meeting, err := s.meetings.Get(ctx, meetingID)
	if err != nil {
		if errors.Is(err, entities.ErrMeetingNotFound) {
			return nil, apperrors.ErrMeetingNotFound(meetingID)
		}
		return nil, apperrors.ErrDBQueryFailed(err)
	}
	return meeting, nil
}

// floorDays converts a duration to whole days, rounding toward
// negative infinity so early completions count as zero-or-negative late.
func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
