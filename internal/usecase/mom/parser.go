package mom

import (
	"regexp"
	"strings"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// Draft is one candidate task extracted from meeting notes, before id
// assignment and owner resolution.
type Draft struct {
	Text       string
	OwnerToken string
	Priority   entities.TaskPriority
}

var (
	bulletPrefix  = regexp.MustCompile(`^\s*(?:[-•*]+|\d+[.)])\s*`)
	mentionToken  = regexp.MustCompile(`@([A-Za-z][A-Za-z0-9._]*)`)
	trailingDash  = regexp.MustCompile(`\s-\s*([A-Za-z][A-Za-z .]{1,40})\s*$`)
	trailingParen = regexp.MustCompile(`\(([A-Za-z][A-Za-z .]{0,40})\)\s*$`)

	urgentMarker = regexp.MustCompile(`(?i)\burgent\b|\basap\b`)
	highMarker   = regexp.MustCompile(`(?i)\bhigh priority\b|\bimportant\b`)
	lowMarker    = regexp.MustCompile(`(?i)\blow priority\b`)
)

var salutationPrefixes = []string{
	"hi", "hello", "dear", "good morning", "good afternoon", "good evening",
	"regards", "best regards", "warm regards", "kind regards", "thanks",
	"thank you", "sincerely", "cheers",
}

// Parser turns raw meeting-notes text into task drafts. It never fails
// on malformed input; unusable lines are simply dropped and missing
// markers degrade to "unassigned" / MEDIUM.
type Parser struct {
	minLen int
}

// NewParser creates a parser with the configured minimum content length
func NewParser(cfg *config.FollowupConfig) *Parser {
	minLen := cfg.MinTaskLength
	if minLen <= 0 {
		minLen = 10
	}
	return &Parser{minLen: minLen}
}

// Parse extracts task drafts in source order. Zero drafts is a valid
// outcome when no actionable line is found.
func (p *Parser) Parse(text string) []Draft {
	var drafts []Draft
	for _, candidate := range splitCandidates(text) {
		line := bulletPrefix.ReplaceAllString(candidate, "")
		line = strings.TrimSpace(line)
		if line == "" || isSalutation(line) {
			continue
		}

		owner, cleaned := extractOwner(line)
		cleaned = strings.TrimSpace(cleaned)
		if len(cleaned) < p.minLen {
			continue
		}

		drafts = append(drafts, Draft{
			Text:       cleaned,
			OwnerToken: owner,
			Priority:   detectPriority(line),
		})
	}
	return drafts
}

// splitCandidates breaks text on line boundaries, then on sentence
// boundaries within each line.
func splitCandidates(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, splitSentences(line)...)
	}
	return out
}

// splitSentences splits after sentence-ending punctuation followed by
// whitespace. A crude heuristic, but deterministic.
func splitSentences(line string) []string {
	var parts []string
	start := 0
	runes := []rune(line)
	for i := 0; i < len(runes)-1; i++ {
		if (runes[i] == '.' || runes[i] == '!' || runes[i] == '?') && runes[i+1] == ' ' {
			part := strings.TrimSpace(string(runes[start : i+1]))
			if part != "" {
				parts = append(parts, part)
			}
			start = i + 1
		}
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

func isSalutation(line string) bool {
	lower := strings.ToLower(strings.TrimRight(line, ",.!: "))
	for _, prefix := range salutationPrefixes {
		if lower == prefix || strings.HasPrefix(lower, prefix+" ") || strings.HasPrefix(lower, prefix+",") {
			return true
		}
	}
	return false
}

// extractOwner pulls the owner marker out of a line: an @mention first,
// then a trailing "- Name" or "(Name)" annotation. Returns "unassigned"
// when no marker is present.
func extractOwner(line string) (owner, cleaned string) {
	if m := mentionToken.FindStringSubmatch(line); m != nil {
		return m[1], strings.TrimSpace(mentionToken.ReplaceAllString(line, ""))
	}
	if m := trailingDash.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(trailingDash.ReplaceAllString(line, ""))
	}
	if m := trailingParen.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(trailingParen.ReplaceAllString(line, ""))
	}
	return "unassigned", line
}

// detectPriority looks for explicit markers; MEDIUM is the default and
// completion keywords never influence it.
func detectPriority(line string) entities.TaskPriority {
	switch {
	case urgentMarker.MatchString(line) || strings.Contains(line, "!!"):
		return entities.PriorityUrgent
	case highMarker.MatchString(line):
		return entities.PriorityHigh
	case lowMarker.MatchString(line):
		return entities.PriorityLow
	default:
		return entities.PriorityMedium
	}
}
