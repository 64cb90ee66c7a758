package config

import (
	"testing"
	"time"
)

func TestParseRatingTiers(t *testing.T) {
	tiers := parseRatingTiers("0:EXCELLENT,2:GOOD,5:FAIR")
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers got %d", len(tiers))
	}
	if tiers[0].MaxLateDays != 0 || tiers[0].Rating != "EXCELLENT" {
		t.Fatalf("unexpected first tier %+v", tiers[0])
	}
	if tiers[2].MaxLateDays != 5 || tiers[2].Rating != "FAIR" {
		t.Fatalf("unexpected last tier %+v", tiers[2])
	}
}

func TestParseRatingTiers_SortsAndSkipsMalformed(t *testing.T) {
	tiers := parseRatingTiers("5:fair, 0:excellent, bogus, 2:GOOD, :empty, x:POOR")
	if len(tiers) != 3 {
		t.Fatalf("expected 3 tiers got %d", len(tiers))
	}
	for i, want := range []int{0, 2, 5} {
		if tiers[i].MaxLateDays != want {
			t.Fatalf("tier %d not sorted: %+v", i, tiers)
		}
	}
	if tiers[0].Rating != "EXCELLENT" {
		t.Fatalf("rating not normalized: %+v", tiers[0])
	}
}

func TestFollowupConfig_Rating(t *testing.T) {
	cfg := FollowupConfig{
		RatingTiers:    parseRatingTiers("0:EXCELLENT,2:GOOD,5:FAIR"),
		FallbackRating: "POOR",
	}
	cases := []struct {
		late int
		want string
	}{
		{-3, "EXCELLENT"},
		{0, "EXCELLENT"},
		{1, "GOOD"},
		{2, "GOOD"},
		{3, "FAIR"},
		{5, "FAIR"},
		{6, "POOR"},
	}
	for _, tc := range cases {
		if got := cfg.Rating(tc.late); got != tc.want {
			t.Fatalf("late=%d: expected %s got %s", tc.late, tc.want, got)
		}
	}
}

func TestFollowupConfig_IntervalsAndOffsets(t *testing.T) {
	cfg := FollowupConfig{
		ReminderIntervalDays: map[string]int{"URGENT": 1, "HIGH": 2, "MEDIUM": 3, "LOW": 5},
		DeadlineOffsetDays:   map[string]int{"URGENT": 1, "HIGH": 3, "MEDIUM": 7, "LOW": 14},
	}

	if got := cfg.ReminderInterval("urgent"); got != 24*time.Hour {
		t.Fatalf("urgent interval = %v", got)
	}
	if got := cfg.ReminderInterval("UNKNOWN"); got != 72*time.Hour {
		t.Fatalf("unknown priority must fall back to MEDIUM, got %v", got)
	}
	if got := cfg.DeadlineOffset("LOW"); got != 14*24*time.Hour {
		t.Fatalf("low offset = %v", got)
	}
	if got := cfg.DeadlineOffset(""); got != 7*24*time.Hour {
		t.Fatalf("empty priority must fall back to MEDIUM, got %v", got)
	}
}
