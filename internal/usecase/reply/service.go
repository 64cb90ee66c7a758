package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// TaskOutcome is the per-task result of one reply ingestion
type TaskOutcome struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
	Reason string `json:"reason,omitempty"`
	Rating string `json:"rating,omitempty"`
}

// IngestReport summarizes one processed reply
type IngestReport struct {
	ReplyID   string        `json:"reply_id"`
	Sender    string        `json:"sender"`
	Completed []TaskOutcome `json:"completed"`
	Pending   []TaskOutcome `json:"pending"`
	Unchanged []TaskOutcome `json:"unchanged"`
	Unknown   []string      `json:"unknown"`
	Rejected  []TaskOutcome `json:"rejected"`
	AckSent   bool          `json:"ack_sent"`
}

// Service folds interpreted replies back into the registry and builds
// the acknowledgment payload. It never fetches mail itself; inbound
// text arrives from the mail collaborator.
type Service struct {
	mu       sync.Mutex
	registry *registry.Service
	dir      *directory.Service
	mail     repo.MailTransport
	cfg      *config.FollowupConfig
	logger   *zap.Logger
}

// NewService creates a new reply service
func NewService(reg *registry.Service, dir *directory.Service, mail repo.MailTransport, cfg *config.FollowupConfig, logger *zap.Logger) *Service {
	return &Service{
		registry: reg,
		dir:      dir,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
	}
}

// Ingest processes one inbound reply. Unknown task ids and per-task
// rejections are reported, never fatal; the rest of the message is
// still applied.
func (s *Service) Ingest(ctx context.Context, sender, body string, now time.Time) (*IngestReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &IngestReport{
		ReplyID: uuid.New().String(),
		Sender:  sender,
	}

	updates := ParseUpdates(body)
	if len(updates) == 0 {
		s.logger.Info("reply carried no task references",
			zap.String("reply_id", report.ReplyID),
			zap.String("sender", sender),
		)
		return report, nil
	}

	senderUser, _ := s.dir.ResolveSender(ctx, sender)

	for _, update := range updates {
		task, err := s.registry.Get(ctx, update.TaskID)
		if err != nil {
			var appErr apperrors.AppError
			if errors.As(err, &appErr) && appErr.Code == apperrors.ErrorCode_TASK_NOT_FOUND {
				report.Unknown = append(report.Unknown, update.TaskID)
				continue
			}
			return nil, err
		}

		if !s.ownedBySender(ctx, task, sender, senderUser) {
			report.Rejected = append(report.Rejected, TaskOutcome{
				TaskID: update.TaskID,
				Status: string(task.Status),
				Reason: "task does not belong to sender",
			})
			continue
		}

		var note *entities.Note
		if update.Segment != "" {
			note = &entities.Note{At: now, By: sender, Text: update.Segment}
		}

		switch update.Intent {
		case IntentComplete:
			updated, err := s.registry.Transition(ctx, update.TaskID, entities.StatusCompleted, note, now)
			if err != nil {
				report.Rejected = append(report.Rejected, TaskOutcome{
					TaskID: update.TaskID,
					Status: string(task.Status),
					Reason: err.Error(),
				})
				continue
			}
			outcome := TaskOutcome{
				TaskID: update.TaskID,
				Status: string(updated.Status),
				Note:   update.Segment,
			}
			if updated.PerformanceRating != nil {
				outcome.Rating = *updated.PerformanceRating
			}
			report.Completed = append(report.Completed, outcome)

		case IntentPending:
			if note != nil {
				if _, err := s.registry.AppendNote(ctx, update.TaskID, *note); err != nil {
					s.logger.Warn("failed to append note",
						zap.String("task_id", update.TaskID),
						zap.Error(err),
					)
				}
			}
			report.Pending = append(report.Pending, TaskOutcome{
				TaskID: update.TaskID,
				Status: string(task.Status),
				Note:   update.Segment,
			})

		default:
			// No recognized keyword: never guess, keep the status and
			// log the segment as a note.
			if note != nil {
				if _, err := s.registry.AppendNote(ctx, update.TaskID, *note); err != nil {
					s.logger.Warn("failed to append note",
						zap.String("task_id", update.TaskID),
						zap.Error(err),
					)
				}
			}
			report.Unchanged = append(report.Unchanged, TaskOutcome{
				TaskID: update.TaskID,
				Status: string(task.Status),
				Note:   update.Segment,
			})
		}
	}

	if s.cfg.EnableAutoAck && s.mail != nil {
		subject, ackBody := s.BuildAck(report)
		if err := s.mail.Send(ctx, sender, subject, ackBody); err != nil {
			s.logger.Error("failed to send acknowledgment",
				zap.String("reply_id", report.ReplyID),
				zap.Error(err),
			)
		} else {
			report.AckSent = true
		}
	}

	s.logger.Info("reply ingested",
		zap.String("reply_id", report.ReplyID),
		zap.String("sender", sender),
		zap.Int("completed", len(report.Completed)),
		zap.Int("pending", len(report.Pending)),
		zap.Int("unknown", len(report.Unknown)),
	)
	return report, nil
}

// ownedBySender accepts an update when the task owner is the sender,
// either directly (name or mail local part) or through the directory.
func (s *Service) ownedBySender(ctx context.Context, task *entities.Task, sender string, senderUser *entities.User) bool {
	owner := strings.ToLower(strings.TrimSpace(task.Owner))
	senderLower := strings.ToLower(strings.TrimSpace(sender))
	local := senderLower
	if i := strings.IndexByte(local, '@'); i > 0 {
		local = local[:i]
	}

	if owner == senderLower || owner == local {
		return true
	}
	if senderUser != nil {
		if strings.EqualFold(task.Owner, senderUser.Username) || strings.EqualFold(task.Owner, senderUser.FullName) {
			return true
		}
		if ownerUser, ok := s.dir.Resolve(ctx, task.Owner); ok && ownerUser.ID == senderUser.ID {
			return true
		}
	}
	return false
}

// BuildAck renders the acknowledgment summary handed to the mail
// collaborator.
func (s *Service) BuildAck(report *IngestReport) (subject, body string) {
	var sb strings.Builder
	sb.WriteString("Thanks for the update.\n")

	if len(report.Completed) > 0 {
		sb.WriteString("\nMarked COMPLETED:\n")
		for _, o := range report.Completed {
			if o.Rating != "" {
				fmt.Fprintf(&sb, "- %s (performance: %s)\n", o.TaskID, o.Rating)
			} else {
				fmt.Fprintf(&sb, "- %s\n", o.TaskID)
			}
		}
	}
	if len(report.Pending) > 0 {
		sb.WriteString("\nStill PENDING:\n")
		for _, o := range report.Pending {
			if o.Note != "" {
				fmt.Fprintf(&sb, "- %s (%s)\n", o.TaskID, o.Note)
			} else {
				fmt.Fprintf(&sb, "- %s\n", o.TaskID)
			}
		}
	}
	if len(report.Unchanged) > 0 {
		sb.WriteString("\nNoted without status change:\n")
		for _, o := range report.Unchanged {
			fmt.Fprintf(&sb, "- %s\n", o.TaskID)
		}
	}
	if len(report.Unknown) > 0 {
		sb.WriteString("\nNot found in the registry:\n")
		for _, id := range report.Unknown {
			fmt.Fprintf(&sb, "- %s\n", id)
		}
	}

	sb.WriteString("\nReminder notifications stay active until completion.\n")
	fmt.Fprintf(&sb, "\nRegards,\n%s\n", s.cfg.SenderName)
	return "Re: Pending Action Items - Update Received", sb.String()
}
