package reminder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// OwnerReminder is one consolidated message: every currently-due task of
// a single owner, never one mail per task.
type OwnerReminder struct {
	Owner string
	Tasks []entities.Task
}

// Outcome is the per-task result of one scheduler pass
type Outcome struct {
	TaskID string `json:"task_id"`
	Owner  string `json:"owner"`
	Result string `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Outcome results
const (
	ResultSent            = "sent"
	ResultOwnerUnresolved = "owner_unresolved"
	ResultSendFailed      = "send_failed"
	ResultTouchFailed     = "touch_failed"
)

// Report summarizes one scheduler pass
type Report struct {
	RanAt    time.Time `json:"ran_at"`
	Selected int       `json:"selected"`
	Sent     int       `json:"sent"`
	Outcomes []Outcome `json:"outcomes"`
}

// Scheduler decides which OPEN tasks are due for a reminder and hands
// consolidated messages to the mail collaborator. It owns no timer;
// Run is invoked by an external trigger.
type Scheduler struct {
	mu       sync.Mutex
	registry *registry.Service
	dir      *directory.Service
	mail     repo.MailTransport
	cfg      *config.FollowupConfig
	logger   *zap.Logger
}

// NewScheduler creates a new reminder scheduler
func NewScheduler(reg *registry.Service, dir *directory.Service, mail repo.MailTransport, cfg *config.FollowupConfig, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		registry: reg,
		dir:      dir,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
	}
}

// Due reports whether a task's reminder cadence has elapsed: never
// reminded, or the priority interval has passed since the last one.
// Deadline proximity plays no part; cadence runs until the task closes.
func (s *Scheduler) Due(task *entities.Task, now time.Time) bool {
	if task.Status != entities.StatusOpen {
		return false
	}
	if task.LastReminderDate == nil {
		return true
	}
	return now.Sub(*task.LastReminderDate) >= s.cfg.ReminderInterval(string(task.Priority))
}

// Plan is the pure half of a pass: given open tasks and "now", it
// returns the due subset grouped per owner, tasks ordered by ascending
// deadline with task id as tie-break, groups ordered by owner.
func (s *Scheduler) Plan(tasks []entities.Task, now time.Time) []OwnerReminder {
	groups := make(map[string]*OwnerReminder)
	for _, task := range tasks {
		if !s.Due(&task, now) {
			continue
		}
		key := strings.ToLower(task.Owner)
		g, ok := groups[key]
		if !ok {
			g = &OwnerReminder{Owner: task.Owner}
			groups[key] = g
		}
		g.Tasks = append(g.Tasks, task)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	plan := make([]OwnerReminder, 0, len(groups))
	for _, k := range keys {
		g := groups[k]
		sort.Slice(g.Tasks, func(i, j int) bool {
			if !g.Tasks[i].Deadline.Equal(g.Tasks[j].Deadline) {
				return g.Tasks[i].Deadline.Before(g.Tasks[j].Deadline)
			}
			return g.Tasks[i].TaskID < g.Tasks[j].TaskID
		})
		plan = append(plan, *g)
	}
	return plan
}

// Run executes one reminder pass. last_reminder_date is advanced only
// for tasks whose message was confirmed handed off; a failed send
// leaves them eligible for the next trigger. Single-task failures never
// abort the batch.
func (s *Scheduler) Run(ctx context.Context, now time.Time) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	open, err := s.registry.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	plan := s.Plan(open, now)
	report := &Report{RanAt: now}

	for _, group := range plan {
		report.Selected += len(group.Tasks)

		to, ok := s.dir.ResolveEmail(ctx, group.Owner)
		if !ok {
			if strings.Contains(group.Owner, "@") {
				to = group.Owner
			} else {
				s.logger.Warn("no email for owner, skipping reminder",
					zap.String("owner", group.Owner),
				)
				unresolved := apperrors.ErrOwnerUnresolved(group.Owner)
				for _, t := range group.Tasks {
					report.Outcomes = append(report.Outcomes, Outcome{
						TaskID: t.TaskID, Owner: group.Owner, Result: ResultOwnerUnresolved, Error: unresolved.Error(),
					})
				}
				continue
			}
		}

		body := s.buildBody(group)
		if err := s.mail.Send(ctx, to, "Pending Action Items - Reminder", body); err != nil {
			s.logger.Error("reminder send failed",
				zap.String("owner", group.Owner),
				zap.Error(err),
			)
			for _, t := range group.Tasks {
				report.Outcomes = append(report.Outcomes, Outcome{
					TaskID: t.TaskID, Owner: group.Owner, Result: ResultSendFailed, Error: err.Error(),
				})
			}
			continue
		}

		for _, t := range group.Tasks {
			if err := s.registry.TouchReminder(ctx, t.TaskID, now); err != nil {
				report.Outcomes = append(report.Outcomes, Outcome{
					TaskID: t.TaskID, Owner: group.Owner, Result: ResultTouchFailed, Error: err.Error(),
				})
				continue
			}
			report.Sent++
			report.Outcomes = append(report.Outcomes, Outcome{
				TaskID: t.TaskID, Owner: group.Owner, Result: ResultSent,
			})
		}
	}

	s.logger.Info("reminder pass complete",
		zap.Int("selected", report.Selected),
		zap.Int("sent", report.Sent),
	)
	return report, nil
}

func (s *Scheduler) buildBody(group OwnerReminder) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", group.Owner)
	sb.WriteString("This is a gentle reminder for the following pending action items:\n")

	for _, t := range group.Tasks {
		fmt.Fprintf(&sb, "\n- Task ID : %s\n", t.TaskID)
		fmt.Fprintf(&sb, "  Task    : %s\n", t.TaskText)
		fmt.Fprintf(&sb, "  Priority: %s\n", t.Priority)
		fmt.Fprintf(&sb, "  Deadline: %s\n", t.Deadline.Format("2006-01-02"))
		fmt.Fprintf(&sb, "  Source  : %s\n", t.MeetingID)
	}

	sb.WriteString("\nKindly reply with the Task ID and its status once completed.\n")
	fmt.Fprintf(&sb, "\nRegards,\n%s\n", s.cfg.SenderName)
	return sb.String()
}
