package reply

import (
	"regexp"
	"strings"
)

// Intent is the classified meaning of a status segment
type Intent string

const (
	IntentComplete Intent = "COMPLETE"
	IntentPending  Intent = "PENDING"
	IntentNoChange Intent = "NO_CHANGE"
)

// Update is one (task id, intent, segment) tuple extracted from a reply
type Update struct {
	TaskID  string
	Intent  Intent
	Segment string
}

var (
	taskIDPattern = regexp.MustCompile(`(?i)\bMOM-\d{8}-\d{1,3}-T\d+\b`)
	blankLine     = regexp.MustCompile(`\n[ \t]*\n`)

	// Completion keywords are checked before pending keywords so a
	// segment carrying both reads as completed, deterministically.
	completionKeywords = regexp.MustCompile(`(?i)\b(completed|complete|done|finished|closed|resolved)\b`)
	pendingKeywords    = regexp.MustCompile(`(?i)\b(pending|in progress|working on|awaiting|need|waiting for)\b`)
)

// ParseUpdates scans a reply for task-id tokens and classifies the text
// window following each one. A segment with no recognized keyword maps
// to NO_CHANGE: unclear intent never mutates status. When the same id
// appears more than once, the last occurrence wins.
func ParseUpdates(body string) []Update {
	locs := taskIDPattern.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		return nil
	}

	byID := make(map[string]Update)
	var order []string

	for i, loc := range locs {
		id := strings.ToUpper(body[loc[0]:loc[1]])

		segEnd := len(body)
		if i+1 < len(locs) {
			segEnd = locs[i+1][0]
		}
		window := body[loc[1]:segEnd]
		if m := blankLine.FindStringIndex(window); m != nil {
			window = window[:m[0]]
		}
		segment := strings.Trim(strings.TrimSpace(window), ":-, \t")

		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = Update{
			TaskID:  id,
			Intent:  classify(segment),
			Segment: segment,
		}
	}

	updates := make([]Update, 0, len(order))
	for _, id := range order {
		updates = append(updates, byID[id])
	}
	return updates
}

func classify(segment string) Intent {
	switch {
	case completionKeywords.MatchString(segment):
		return IntentComplete
	case pendingKeywords.MatchString(segment):
		return IntentPending
	default:
		return IntentNoChange
	}
}
