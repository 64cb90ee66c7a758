package mom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	meetingIDPattern = regexp.MustCompile(`^MOM-(\d{8})-(\d+)$`)
	subjectIDPattern = regexp.MustCompile(`(?i)\bMOM-\d{8}-\d{1,3}\b`)
)

// NextMeetingID returns the next meeting id for a submission date given
// the ids already assigned that day. Sequences start at 1 and are
// zero-padded to three digits.
func NextMeetingID(date time.Time, existing []string) string {
	day := date.Format("20060102")
	maxSeq := 0
	for _, id := range existing {
		m := meetingIDPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(id)))
		if m == nil || m[1] != day {
			continue
		}
		if n, err := strconv.Atoi(m[2]); err == nil && n > maxSeq {
			maxSeq = n
		}
	}
	return fmt.Sprintf("MOM-%s-%03d", day, maxSeq+1)
}

// TaskID returns the id of the n-th task (1-based) within a meeting
func TaskID(meetingID string, n int) string {
	return fmt.Sprintf("%s-T%d", meetingID, n)
}

// ExtractMeetingID pulls a pre-assigned meeting id token out of a
// subject line, normalized to upper case.
func ExtractMeetingID(subject string) (string, bool) {
	m := subjectIDPattern.FindString(subject)
	if m == "" {
		return "", false
	}
	return strings.ToUpper(m), true
}
