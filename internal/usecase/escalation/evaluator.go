package escalation

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// Evaluate selects the open tasks whose deadline has passed and that
// have not yet been escalated, and builds one event per task. Pure
// function so the selection can be tested without wiring mail or
// storage.
func Evaluate(tasks []entities.Task, now time.Time) []*entities.EscalationEvent {
	var events []*entities.EscalationEvent
	for i := range tasks {
		task := &tasks[i]
		if task.Status != entities.StatusOpen || task.Escalated {
			continue
		}
		if !now.After(task.Deadline) {
			continue
		}
		events = append(events, &entities.EscalationEvent{
			ID:          uuid.New(),
			TaskID:      task.TaskID,
			MeetingID:   task.MeetingID,
			Owner:       task.Owner,
			TaskText:    task.TaskText,
			Priority:    task.Priority,
			Deadline:    task.Deadline,
			DaysOverdue: floorDays(now.Sub(task.Deadline)),
			CreatedAt:   now,
		})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].DaysOverdue != events[j].DaysOverdue {
			return events[i].DaysOverdue > events[j].DaysOverdue
		}
		return events[i].TaskID < events[j].TaskID
	})
	return events
}

func floorDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
