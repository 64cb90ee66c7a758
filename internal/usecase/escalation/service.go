package escalation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// Escalation outcome results
const (
	ResultNotified   = "notified"
	ResultSendFailed = "send_failed"
	ResultMarkFailed = "mark_failed"
)

// Outcome is the per-event result of one escalation pass
type Outcome struct {
	TaskID      string `json:"task_id"`
	Owner       string `json:"owner"`
	DaysOverdue int    `json:"days_overdue"`
	Result      string `json:"result"`
	Error       string `json:"error,omitempty"`
}

// Report summarizes one escalation pass
type Report struct {
	RanAt    time.Time `json:"ran_at"`
	Selected int       `json:"selected"`
	Notified int       `json:"notified"`
	Outcomes []Outcome `json:"outcomes"`
}

// Service runs the escalation pass. Each overdue task is escalated at
// most once: the flag is stamped only after the oversight mail is
// confirmed handed off, so a failed send is retried on the next pass.
type Service struct {
	mu       sync.Mutex
	registry *registry.Service
	events   repo.EscalationRepository
	mail     repo.MailTransport
	cfg      *config.FollowupConfig
	logger   *zap.Logger
}

// NewService creates a new escalation service
func NewService(reg *registry.Service, events repo.EscalationRepository, mail repo.MailTransport, cfg *config.FollowupConfig, logger *zap.Logger) *Service {
	return &Service{
		registry: reg,
		events:   events,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run performs one escalation pass at the given instant
func (s *Service) Run(ctx context.Context, now time.Time) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &Report{RanAt: now}
	if !s.cfg.EnableEscalation {
		s.logger.Info("escalation disabled, skipping pass")
		return report, nil
	}

	open, err := s.registry.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	events := Evaluate(open, now)
	report.Selected = len(events)

	for _, event := range events {
		outcome := Outcome{
			TaskID:      event.TaskID,
			Owner:       event.Owner,
			DaysOverdue: event.DaysOverdue,
		}

		subject, body := s.buildMail(event)
		if err := s.mail.Send(ctx, s.cfg.HREmail, subject, body); err != nil {
			s.logger.Error("escalation mail failed",
				zap.String("task_id", event.TaskID),
				zap.Error(err),
			)
			outcome.Result = ResultSendFailed
			outcome.Error = err.Error()
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		if err := s.registry.MarkEscalated(ctx, event.TaskID, now); err != nil {
			// Mail went out but the flag did not stick; surface it so
			// the operator knows a duplicate is possible next pass.
			s.logger.Error("failed to mark task escalated",
				zap.String("task_id", event.TaskID),
				zap.Error(err),
			)
			outcome.Result = ResultMarkFailed
			outcome.Error = err.Error()
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		if s.events != nil {
			if err := s.events.Create(ctx, event); err != nil {
				s.logger.Warn("failed to record escalation event",
					zap.String("task_id", event.TaskID),
					zap.Error(err),
				)
			}
		}

		outcome.Result = ResultNotified
		report.Outcomes = append(report.Outcomes, outcome)
		report.Notified++
	}

	s.logger.Info("escalation pass finished",
		zap.Time("ran_at", now),
		zap.Int("selected", report.Selected),
		zap.Int("notified", report.Notified),
	)
	return report, nil
}

func (s *Service) buildMail(event *entities.EscalationEvent) (subject, body string) {
	subject = fmt.Sprintf("Escalation: Overdue Task %s (%d days)", event.TaskID, event.DaysOverdue)

	var sb strings.Builder
	sb.WriteString("Dear HR Team,\n\n")
	sb.WriteString("The following action item is overdue and has not been completed despite reminders:\n\n")
	fmt.Fprintf(&sb, "Employee:     %s\n", event.Owner)
	fmt.Fprintf(&sb, "Task ID:      %s\n", event.TaskID)
	fmt.Fprintf(&sb, "Task:         %s\n", event.TaskText)
	fmt.Fprintf(&sb, "Priority:     %s\n", event.Priority)
	fmt.Fprintf(&sb, "Deadline:     %s\n", event.Deadline.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Days Overdue: %d\n", event.DaysOverdue)
	if event.MeetingID != "" {
		fmt.Fprintf(&sb, "Meeting:      %s\n", event.MeetingID)
	}
	sb.WriteString("\nPlease follow up with the employee regarding this pending item.\n")
	fmt.Fprintf(&sb, "\nRegards,\n%s\n", s.cfg.SenderName)
	return subject, sb.String()
}
