package presenter

import (
	"github.com/praveenchdev/followup-agent/internal/adapter/dto/followup"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
)

// ToTaskResponse converts a Task entity to TaskResponse DTO
func ToTaskResponse(t *entities.Task) *followup.TaskResponse {
	if t == nil {
		return nil
	}

	response := &followup.TaskResponse{
		TaskID:            t.TaskID,
		MeetingID:         t.MeetingID,
		Owner:             t.Owner,
		OwnerResolved:     t.OwnerResolved,
		TaskText:          t.TaskText,
		Status:            string(t.Status),
		Priority:          string(t.Priority),
		CreatedOn:         t.CreatedOn,
		Deadline:          t.Deadline,
		LastReminderDate:  t.LastReminderDate,
		CompletedDate:     t.CompletedDate,
		DaysTaken:         t.DaysTaken,
		PerformanceRating: t.PerformanceRating,
		Escalated:         t.Escalated,
	}

	for _, n := range t.NoteList() {
		response.Notes = append(response.Notes, followup.NoteItem{
			At:   n.At,
			By:   n.By,
			Text: n.Text,
		})
	}

	return response
}

// ToTaskResponseList converts a task slice to response DTOs
func ToTaskResponseList(tasks []entities.Task) []followup.TaskResponse {
	out := make([]followup.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, *ToTaskResponse(&tasks[i]))
	}
	return out
}

// ToResolveUserResponse converts a directory lookup result to a DTO
func ToResolveUserResponse(u *entities.User, resolved bool) *followup.ResolveUserResponse {
	if !resolved || u == nil {
		return &followup.ResolveUserResponse{Resolved: false}
	}
	return &followup.ResolveUserResponse{
		Resolved: true,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
	}
}
