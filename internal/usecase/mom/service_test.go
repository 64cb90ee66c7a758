package mom

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/praveenchdev/followup-agent/internal/adapter/repository"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// recordingArchiver captures archive calls
type recordingArchiver struct {
	keys []string
	fail bool
}

func (a *recordingArchiver) ArchiveSubmission(_ context.Context, meetingID, _ string) (string, error) {
	if a.fail {
		return "", context.DeadlineExceeded
	}
	key := "mom/" + meetingID + ".txt"
	a.keys = append(a.keys, key)
	return key, nil
}

func testFollowupConfig() *config.FollowupConfig {
	return &config.FollowupConfig{
		SenderName:    "Task Followup Agent",
		MinTaskLength: 10,
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
	service  *Service
	registry *registry.Service
	archiver *recordingArchiver
	cfg      *config.FollowupConfig
}

func newFixture(t *testing.T, users ...*entities.User) *fixture {
	t.Helper()
	cfg := testFollowupConfig()
	logger := zap.NewNop()
	meetings := repository.NewMemoryMeetingRepository()
	reg := registry.NewService(repository.NewMemoryTaskRepository(), meetings, cfg, logger)
	dir := directory.NewService(repository.NewMemoryUserRepository(users...), nil, logger)
	archiver := &recordingArchiver{}
	return &fixture{
		service:  NewService(NewParser(cfg), reg, meetings, dir, archiver, cfg, logger),
		registry: reg,
		archiver: archiver,
		cfg:      cfg,
	}
}

func directoryUser(username, fullName, email string) *entities.User {
	return &entities.User{ID: uuid.New(), Username: username, FullName: fullName, Email: email, IsActive: true}
}

func TestSubmit_RegistersTasksWithSequentialIDs(t *testing.T) {
	f := newFixture(t,
		directoryUser("sarika", "Sarika Menon", "sarika@test.local"),
		directoryUser("sunil", "Sunil Rao", "sunil@test.local"),
	)

	submitted := time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)
	result, err := f.service.Submit(context.Background(), Submission{
		Subject:     "Board meeting follow ups",
		Text:        "Check Japan entity status @Sarika\nShare transfer update with counsel @Sunil",
		SubmittedOn: submitted,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Meeting.MeetingID != "MOM-20251231-001" {
		t.Fatalf("expected MOM-20251231-001 got %s", result.Meeting.MeetingID)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("expected 2 tasks got %d", len(result.Tasks))
	}
	if result.Tasks[0].TaskID != "MOM-20251231-001-T1" || result.Tasks[1].TaskID != "MOM-20251231-001-T2" {
		t.Fatalf("ids = %s, %s", result.Tasks[0].TaskID, result.Tasks[1].TaskID)
	}
	if result.Tasks[0].Owner != "sarika" || !result.Tasks[0].OwnerResolved {
		t.Fatalf("owner not resolved: %+v", result.Tasks[0])
	}

	// MEDIUM default: deadline is submission plus seven days
	want := submitted.AddDate(0, 0, 7)
	if !result.Tasks[0].Deadline.Equal(want) {
		t.Fatalf("deadline = %v want %v", result.Tasks[0].Deadline, want)
	}

	open, err := f.registry.ListOpen(context.Background())
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("tasks not registered OPEN: %d", len(open))
	}
}

func TestSubmit_SecondMeetingSameDayIncrements(t *testing.T) {
	f := newFixture(t)
	submitted := time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC)

	for i, want := range []string{"MOM-20251231-001", "MOM-20251231-002"} {
		result, err := f.service.Submit(context.Background(), Submission{
			Text:        "Update the compliance tracker for this cycle",
			SubmittedOn: submitted.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if result.Meeting.MeetingID != want {
			t.Fatalf("submit %d: expected %s got %s", i, want, result.Meeting.MeetingID)
		}
	}
}

func TestSubmit_PreassignedIDFromSubject(t *testing.T) {
	f := newFixture(t)
	result, err := f.service.Submit(context.Background(), Submission{
		Subject:     "Re: mom-20251231-007 notes",
		Text:        "Update the compliance tracker for this cycle",
		SubmittedOn: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Meeting.MeetingID != "MOM-20251231-007" {
		t.Fatalf("expected preassigned id got %s", result.Meeting.MeetingID)
	}
}

func TestSubmit_UnresolvedOwnerKeptRaw(t *testing.T) {
	f := newFixture(t)
	result, err := f.service.Submit(context.Background(), Submission{
		Text:        "Check Japan entity status @Sarika",
		SubmittedOn: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(result.Tasks) != 1 {
		t.Fatalf("expected 1 task got %d", len(result.Tasks))
	}
	task := result.Tasks[0]
	if task.Owner != "Sarika" || task.OwnerResolved {
		t.Fatalf("expected raw token kept unresolved: %+v", task)
	}
	if len(result.UnresolvedOwners) != 1 {
		t.Fatalf("unresolved owners: %+v", result.UnresolvedOwners)
	}
}

func TestSubmit_ZeroTasksIsValid(t *testing.T) {
	f := newFixture(t)
	result, err := f.service.Submit(context.Background(), Submission{
		Text:        "Hi team,\n\nRegards,\nRavi",
		SubmittedOn: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("zero tasks must not error: %v", err)
	}
	if len(result.Tasks) != 0 || result.Meeting.TaskCount != 0 {
		t.Fatalf("expected empty meeting: %+v", result)
	}
}

func TestSubmit_ArchiveFailureNonFatal(t *testing.T) {
	f := newFixture(t)
	f.cfg.EnableArchive = true
	f.archiver.fail = true

	result, err := f.service.Submit(context.Background(), Submission{
		Text:        "Update the compliance tracker for this cycle",
		SubmittedOn: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("archive failure aborted submission: %v", err)
	}
	if result.Meeting.ArchiveKey != "" {
		t.Fatalf("archive key set despite failure")
	}
}

func TestSubmit_ArchiveRecordsKey(t *testing.T) {
	f := newFixture(t)
	f.cfg.EnableArchive = true

	result, err := f.service.Submit(context.Background(), Submission{
		Text:        "Update the compliance tracker for this cycle",
		SubmittedOn: time.Date(2025, 12, 31, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Meeting.ArchiveKey != "mom/MOM-20251231-001.txt" {
		t.Fatalf("archive key = %q", result.Meeting.ArchiveKey)
	}
}
