package reminder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/praveenchdev/followup-agent/internal/adapter/repository"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMail records handoffs and can be told to fail
type fakeMail struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (f *fakeMail) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func testConfig() *config.FollowupConfig {
	return &config.FollowupConfig{
		SenderName: "Task Followup Agent",
		ReminderIntervalDays: map[string]int{
			"URGENT": 1, "HIGH": 2, "MEDIUM": 3, "LOW": 5,
		},
		DeadlineOffsetDays: map[string]int{
			"URGENT": 1, "HIGH": 3, "MEDIUM": 7, "LOW": 14,
		},
		RatingTiers:    []config.RatingTier{{MaxLateDays: 0, Rating: "EXCELLENT"}},
		FallbackRating: "POOR",
	}
}

type fixture struct {
	scheduler *Scheduler
	registry  *registry.Service
	mail      *fakeMail
}

func newFixture(t *testing.T, users ...*entities.User) *fixture {
	t.Helper()
	cfg := testConfig()
	logger := zap.NewNop()
	reg := registry.NewService(repository.NewMemoryTaskRepository(), repository.NewMemoryMeetingRepository(), cfg, logger)
	dir := directory.NewService(repository.NewMemoryUserRepository(users...), nil, logger)
	mail := &fakeMail{}
	return &fixture{
		scheduler: NewScheduler(reg, dir, mail, cfg, logger),
		registry:  reg,
		mail:      mail,
	}
}

func seedTasks(t *testing.T, reg *registry.Service, tasks ...*entities.Task) {
	t.Helper()
	meeting := &entities.Meeting{
		MeetingID:   "MOM-20251201-001",
		SubmittedOn: time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
		TaskCount:   len(tasks),
	}
	if err := reg.CreateMeeting(context.Background(), meeting, tasks); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func task(id, owner string, priority entities.TaskPriority, created time.Time, deadlineDays int) *entities.Task {
	return &entities.Task{
		TaskID:    id,
		MeetingID: "MOM-20251201-001",
		Owner:     owner,
		TaskText:  "Task text for " + id,
		Status:    entities.StatusOpen,
		Priority:  priority,
		CreatedOn: created,
		Deadline:  created.AddDate(0, 0, deadlineDays),
	}
}

func user(username, fullName, email string) *entities.User {
	return &entities.User{Username: username, FullName: fullName, Email: email, IsActive: true}
}

func TestDue_NeverRemindedIsDue(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	tk := task("MOM-20251201-001-T1", "sarika", entities.PriorityMedium, created, 7)

	if !f.scheduler.Due(tk, created.Add(time.Minute)) {
		t.Fatalf("never-reminded open task must be due")
	}
}

func TestDue_CadencePerPriority(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	last := created.AddDate(0, 0, 1)

	cases := []struct {
		priority entities.TaskPriority
		after    time.Duration
		want     bool
	}{
		{entities.PriorityUrgent, 23 * time.Hour, false},
		{entities.PriorityUrgent, 24 * time.Hour, true},
		{entities.PriorityHigh, 47 * time.Hour, false},
		{entities.PriorityHigh, 48 * time.Hour, true},
		{entities.PriorityMedium, 71 * time.Hour, false},
		{entities.PriorityMedium, 72 * time.Hour, true},
		{entities.PriorityLow, 119 * time.Hour, false},
		{entities.PriorityLow, 120 * time.Hour, true},
	}
	for _, tc := range cases {
		tk := task("MOM-20251201-001-T1", "sarika", tc.priority, created, 7)
		tk.LastReminderDate = &last
		if got := f.scheduler.Due(tk, last.Add(tc.after)); got != tc.want {
			t.Fatalf("%s after %v: expected %v got %v", tc.priority, tc.after, tc.want, got)
		}
	}
}

func TestPlan_ConsolidatesPerOwnerOrdered(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	tasks := []entities.Task{
		*task("MOM-20251201-001-T3", "Sunil", entities.PriorityMedium, created, 7),
		*task("MOM-20251201-001-T1", "sarika", entities.PriorityMedium, created, 14),
		*task("MOM-20251201-001-T2", "Sarika", entities.PriorityMedium, created, 3),
	}

	plan := f.scheduler.Plan(tasks, created.Add(time.Hour))
	if len(plan) != 2 {
		t.Fatalf("expected 2 owner groups got %d", len(plan))
	}
	// Owner grouping is case-insensitive; groups come out ordered by owner
	if !strings.EqualFold(plan[0].Owner, "sarika") {
		t.Fatalf("expected sarika group first got %s", plan[0].Owner)
	}
	if len(plan[0].Tasks) != 2 {
		t.Fatalf("expected 2 tasks for sarika got %d", len(plan[0].Tasks))
	}
	// Earlier deadline first
	if plan[0].Tasks[0].TaskID != "MOM-20251201-001-T2" {
		t.Fatalf("expected T2 first got %s", plan[0].Tasks[0].TaskID)
	}
}

func TestPlan_DeadlineTieBreaksOnTaskID(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	tasks := []entities.Task{
		*task("MOM-20251201-001-T2", "sarika", entities.PriorityMedium, created, 7),
		*task("MOM-20251201-001-T1", "sarika", entities.PriorityMedium, created, 7),
	}

	plan := f.scheduler.Plan(tasks, created.Add(time.Hour))
	if len(plan) != 1 || len(plan[0].Tasks) != 2 {
		t.Fatalf("unexpected plan shape")
	}
	if plan[0].Tasks[0].TaskID != "MOM-20251201-001-T1" {
		t.Fatalf("expected T1 first on equal deadlines got %s", plan[0].Tasks[0].TaskID)
	}
}

func TestRun_SendsOneMailPerOwnerAndTouches(t *testing.T) {
	f := newFixture(t, user("sarika", "Sarika Menon", "sarika@test.local"))
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	seedTasks(t, f.registry,
		task("MOM-20251201-001-T1", "sarika", entities.PriorityMedium, created, 7),
		task("MOM-20251201-001-T2", "sarika", entities.PriorityHigh, created, 3),
	)

	now := created.Add(time.Hour)
	report, err := f.scheduler.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Selected != 2 || report.Sent != 2 {
		t.Fatalf("expected 2 selected / 2 sent got %d/%d", report.Selected, report.Sent)
	}
	if len(f.mail.sent) != 1 {
		t.Fatalf("expected one consolidated mail got %d", len(f.mail.sent))
	}
	m := f.mail.sent[0]
	if m.To != "sarika@test.local" {
		t.Fatalf("unexpected recipient %s", m.To)
	}
	if !strings.Contains(m.Body, "MOM-20251201-001-T1") || !strings.Contains(m.Body, "MOM-20251201-001-T2") {
		t.Fatalf("mail body missing task ids: %s", m.Body)
	}

	for _, id := range []string{"MOM-20251201-001-T1", "MOM-20251201-001-T2"} {
		got, err := f.registry.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("get %s: %v", id, err)
		}
		if got.LastReminderDate == nil || !got.LastReminderDate.Equal(now) {
			t.Fatalf("%s: last_reminder_date not advanced", id)
		}
	}
}

func TestRun_RerunAtSameInstantSelectsNothing(t *testing.T) {
	f := newFixture(t, user("sarika", "Sarika Menon", "sarika@test.local"))
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	seedTasks(t, f.registry, task("MOM-20251201-001-T1", "sarika", entities.PriorityMedium, created, 7))

	now := created.Add(time.Hour)
	if _, err := f.scheduler.Run(context.Background(), now); err != nil {
		t.Fatalf("first run: %v", err)
	}

	report, err := f.scheduler.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Selected != 0 {
		t.Fatalf("expected idempotent re-run, selected %d", report.Selected)
	}
	if len(f.mail.sent) != 1 {
		t.Fatalf("expected no additional mail, got %d", len(f.mail.sent))
	}

	// Becomes due again exactly at the cadence boundary
	next := now.Add(72 * time.Hour)
	report, err = f.scheduler.Run(context.Background(), next)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if report.Selected != 1 || report.Sent != 1 {
		t.Fatalf("expected task due again at interval, got %d/%d", report.Selected, report.Sent)
	}
}

func TestRun_FailedSendLeavesTaskEligible(t *testing.T) {
	f := newFixture(t, user("sarika", "Sarika Menon", "sarika@test.local"))
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	seedTasks(t, f.registry, task("MOM-20251201-001-T1", "sarika", entities.PriorityMedium, created, 7))

	f.mail.fail = true
	now := created.Add(time.Hour)
	report, err := f.scheduler.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Sent != 0 {
		t.Fatalf("expected zero sent on failure got %d", report.Sent)
	}
	if len(report.Outcomes) != 1 || report.Outcomes[0].Result != ResultSendFailed {
		t.Fatalf("expected send_failed outcome: %+v", report.Outcomes)
	}

	got, _ := f.registry.Get(context.Background(), "MOM-20251201-001-T1")
	if got.LastReminderDate != nil {
		t.Fatalf("last_reminder_date advanced despite failed send")
	}

	// Next trigger retries immediately
	f.mail.fail = false
	report, err = f.scheduler.Run(context.Background(), now.Add(time.Minute))
	if err != nil {
		t.Fatalf("retry run: %v", err)
	}
	if report.Sent != 1 {
		t.Fatalf("expected retry to send, got %d", report.Sent)
	}
}

func TestRun_UnresolvedOwnerSkippedWithoutAbort(t *testing.T) {
	f := newFixture(t, user("sarika", "Sarika Menon", "sarika@test.local"))
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	seedTasks(t, f.registry,
		task("MOM-20251201-001-T1", "ghost", entities.PriorityMedium, created, 7),
		task("MOM-20251201-001-T2", "sarika", entities.PriorityMedium, created, 7),
	)

	report, err := f.scheduler.Run(context.Background(), created.Add(time.Hour))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Sent != 1 {
		t.Fatalf("expected resolvable owner still served, sent=%d", report.Sent)
	}

	var unresolved int
	for _, o := range report.Outcomes {
		if o.Result == ResultOwnerUnresolved {
			unresolved++
		}
	}
	if unresolved != 1 {
		t.Fatalf("expected one owner_unresolved outcome got %d", unresolved)
	}
}

func TestRun_RawEmailOwnerUsedDirectly(t *testing.T) {
	f := newFixture(t)
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)
	seedTasks(t, f.registry, task("MOM-20251201-001-T1", "priya@test.local", entities.PriorityMedium, created, 7))

	report, err := f.scheduler.Run(context.Background(), created.Add(time.Hour))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Sent != 1 {
		t.Fatalf("expected send to raw address, sent=%d", report.Sent)
	}
	if f.mail.sent[0].To != "priya@test.local" {
		t.Fatalf("unexpected recipient %s", f.mail.sent[0].To)
	}
}
