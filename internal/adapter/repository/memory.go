package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
)

// MemoryTaskRepository keeps the registry in process memory. Backs tests
// and DB-less runs; all reads hand out deep copies.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*entities.Task
}

// NewMemoryTaskRepository creates an empty in-memory registry
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{tasks: make(map[string]*entities.Task)}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.TaskID]; exists {
		return entities.ErrTaskAlreadyExists
	}
	r.tasks[task.TaskID] = task.Clone()
	return nil
}

func (r *MemoryTaskRepository) Get(_ context.Context, taskID string) (*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, exists := r.tasks[taskID]
	if !exists {
		return nil, entities.ErrTaskNotFound
	}
	return task.Clone(), nil
}

func (r *MemoryTaskRepository) List(_ context.Context, filter repo.TaskFilter) ([]*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Task
	for _, task := range r.tasks {
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		if filter.Owner != "" && !strings.EqualFold(task.Owner, filter.Owner) {
			continue
		}
		if filter.Meeting != "" && task.MeetingID != filter.Meeting {
			continue
		}
		out = append(out, task.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out, nil
}

func (r *MemoryTaskRepository) Update(_ context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.TaskID]; !exists {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.TaskID] = task.Clone()
	return nil
}

// MemoryMeetingRepository keeps meetings in process memory
type MemoryMeetingRepository struct {
	mu       sync.RWMutex
	meetings map[string]*entities.Meeting
}

// NewMemoryMeetingRepository creates an empty in-memory meeting store
func NewMemoryMeetingRepository() *MemoryMeetingRepository {
	return &MemoryMeetingRepository{meetings: make(map[string]*entities.Meeting)}
}

func (r *MemoryMeetingRepository) Create(_ context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meetings[meeting.MeetingID]; exists {
		return entities.ErrMeetingAlreadyExists
	}
	m := *meeting
	r.meetings[meeting.MeetingID] = &m
	return nil
}

func (r *MemoryMeetingRepository) Get(_ context.Context, meetingID string) (*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meeting, exists := r.meetings[meetingID]
	if !exists {
		return nil, entities.ErrMeetingNotFound
	}
	m := *meeting
	return &m, nil
}

func (r *MemoryMeetingRepository) ListIDsByDate(_ context.Context, yyyymmdd string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix := "MOM-" + yyyymmdd + "-"
	var ids []string
	for id := range r.meetings {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// MemoryUserRepository keeps the directory in process memory
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []*entities.User
}

// NewMemoryUserRepository creates an in-memory directory with the given entries
func NewMemoryUserRepository(users ...*entities.User) *MemoryUserRepository {
	return &MemoryUserRepository{users: users}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = append(r.users, user)
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *MemoryUserRepository) ListActive(_ context.Context) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.User
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

// MemoryEscalationRepository keeps the escalation log in process memory
type MemoryEscalationRepository struct {
	mu     sync.RWMutex
	events []*entities.EscalationEvent
}

// NewMemoryEscalationRepository creates an empty in-memory escalation log
func NewMemoryEscalationRepository() *MemoryEscalationRepository {
	return &MemoryEscalationRepository{}
}

func (r *MemoryEscalationRepository) Create(_ context.Context, event *entities.EscalationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := *event
	r.events = append(r.events, &e)
	return nil
}

func (r *MemoryEscalationRepository) ListByTask(_ context.Context, taskID string) ([]*entities.EscalationEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.EscalationEvent
	for _, e := range r.events {
		if e.TaskID == taskID {
			ev := *e
			out = append(out, &ev)
		}
	}
	return out, nil
}
