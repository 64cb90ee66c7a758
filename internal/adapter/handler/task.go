package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/adapter/dto/followup"
	"github.com/praveenchdev/followup-agent/internal/adapter/presenter"
	"github.com/praveenchdev/followup-agent/internal/domain/entities"
	repo "github.com/praveenchdev/followup-agent/internal/domain/repositories"
	"github.com/praveenchdev/followup-agent/internal/usecase/registry"
)

// Task handles registry HTTP requests
type Task struct {
	registryService *registry.Service
	logger          *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(registryService *registry.Service, logger *zap.Logger) *Task {
	return &Task{
		registryService: registryService,
		logger:          logger,
	}
}

// List handles GET /tasks
func (h *Task) List(c echo.Context) error {
	var req followup.ListTasksRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	filter := repo.TaskFilter{
		Status:   entities.TaskStatus(req.Status),
		Priority: entities.TaskPriority(req.Priority),
		Owner:    req.Owner,
		Meeting:  req.Meeting,
	}

	tasks, err := h.registryService.List(c.Request().Context(), filter)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := followup.ListTasksResponse{
		Tasks: presenter.ToTaskResponseList(tasks),
		Total: len(tasks),
	}
	return HandleSuccess(h.logger, c, resp)
}

// Get handles GET /tasks/:id
func (h *Task) Get(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("task id is required"))
	}

	task, err := h.registryService.Get(c.Request().Context(), taskID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(task))
}

// Transition handles POST /tasks/:id/transition
func (h *Task) Transition(c echo.Context) error {
	taskID := c.Param("id")
	if taskID == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("task id is required"))
	}

	var req followup.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	now := time.Now()
	var note *entities.Note
	if req.Note != "" {
		note = &entities.Note{At: now, By: req.By, Text: req.Note}
	}

	task, err := h.registryService.Transition(c.Request().Context(), taskID, entities.TaskStatus(req.Status), note, now)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToTaskResponse(task))
}
