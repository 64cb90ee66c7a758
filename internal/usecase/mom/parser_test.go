package mom

import (
	"testing"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

func testParser() *Parser {
	return NewParser(&config.FollowupConfig{MinTaskLength: 10})
}

func TestParse_OneTaskPerLine(t *testing.T) {
	text := "Check Japan entity status @Sarika\nShare transfer update @Sunil"
	drafts := testParser().Parse(text)

	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts got %d", len(drafts))
	}
	if drafts[0].OwnerToken != "Sarika" {
		t.Fatalf("expected owner Sarika got %s", drafts[0].OwnerToken)
	}
	if drafts[0].Text != "Check Japan entity status" {
		t.Fatalf("unexpected text %q", drafts[0].Text)
	}
	if drafts[1].OwnerToken != "Sunil" {
		t.Fatalf("expected owner Sunil got %s", drafts[1].OwnerToken)
	}
	for _, d := range drafts {
		if d.Priority != entities.PriorityMedium {
			t.Fatalf("expected MEDIUM default got %s", d.Priority)
		}
	}
}

func TestParse_BulletsAndNumbering(t *testing.T) {
	text := "- Review vendor contract renewal @Priya\n2) Publish the audit findings report @Ajay"
	drafts := testParser().Parse(text)

	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts got %d", len(drafts))
	}
	if drafts[0].Text != "Review vendor contract renewal" {
		t.Fatalf("bullet prefix not stripped: %q", drafts[0].Text)
	}
	if drafts[1].Text != "Publish the audit findings report" {
		t.Fatalf("numbering not stripped: %q", drafts[1].Text)
	}
}

func TestParse_TrailingOwnerMarkers(t *testing.T) {
	text := "Prepare the quarterly budget deck - Priya\nCirculate revised org chart (Ajay Kumar)"
	drafts := testParser().Parse(text)

	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts got %d", len(drafts))
	}
	if drafts[0].OwnerToken != "Priya" {
		t.Fatalf("expected Priya got %s", drafts[0].OwnerToken)
	}
	if drafts[1].OwnerToken != "Ajay Kumar" {
		t.Fatalf("expected Ajay Kumar got %s", drafts[1].OwnerToken)
	}
}

func TestParse_UnassignedWhenNoMarker(t *testing.T) {
	drafts := testParser().Parse("Update the compliance tracker before Friday")
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft got %d", len(drafts))
	}
	if drafts[0].OwnerToken != "unassigned" {
		t.Fatalf("expected unassigned got %s", drafts[0].OwnerToken)
	}
}

func TestParse_PriorityMarkers(t *testing.T) {
	cases := []struct {
		line string
		want entities.TaskPriority
	}{
		{"Fix the payroll mismatch urgent @Priya", entities.PriorityUrgent},
		{"Send board pack ASAP @Priya", entities.PriorityUrgent},
		{"Escalate invoice dispute high priority @Priya", entities.PriorityHigh},
		{"This one is important to close @Priya", entities.PriorityHigh},
		{"Archive old tickets low priority @Priya", entities.PriorityLow},
		{"Share the updated roster with finance @Priya", entities.PriorityMedium},
	}
	for _, tc := range cases {
		drafts := testParser().Parse(tc.line)
		if len(drafts) != 1 {
			t.Fatalf("%q: expected 1 draft got %d", tc.line, len(drafts))
		}
		if drafts[0].Priority != tc.want {
			t.Fatalf("%q: expected %s got %s", tc.line, tc.want, drafts[0].Priority)
		}
	}
}

func TestParse_DropsSalutationsAndShortLines(t *testing.T) {
	text := "Hi team,\n\nCheck Japan entity status @Sarika\nok\n\nRegards,\nRavi"
	drafts := testParser().Parse(text)

	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft got %d", len(drafts))
	}
	if drafts[0].OwnerToken != "Sarika" {
		t.Fatalf("expected Sarika got %s", drafts[0].OwnerToken)
	}
}

func TestParse_SentenceSplitWithinLine(t *testing.T) {
	text := "Confirm venue booking with admin @Priya. Collect signed NDAs from vendors @Ajay"
	drafts := testParser().Parse(text)

	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts got %d", len(drafts))
	}
	if drafts[0].OwnerToken != "Priya" || drafts[1].OwnerToken != "Ajay" {
		t.Fatalf("owners = %s, %s", drafts[0].OwnerToken, drafts[1].OwnerToken)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if drafts := testParser().Parse(""); len(drafts) != 0 {
		t.Fatalf("expected zero drafts got %d", len(drafts))
	}
	if drafts := testParser().Parse("\n\n  \n"); len(drafts) != 0 {
		t.Fatalf("expected zero drafts for blank text got %d", len(drafts))
	}
}
