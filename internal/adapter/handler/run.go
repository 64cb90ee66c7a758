package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/praveenchdev/followup-agent/internal/usecase/escalation"
	"github.com/praveenchdev/followup-agent/internal/usecase/reminder"
)

// Run triggers the scheduled passes on demand. External cron calls
// these endpoints; the passes themselves are idempotent.
type Run struct {
	scheduler         *reminder.Scheduler
	escalationService *escalation.Service
	logger            *zap.Logger
}

// NewRunHandler creates a new run handler
func NewRunHandler(scheduler *reminder.Scheduler, escalationService *escalation.Service, logger *zap.Logger) *Run {
	return &Run{
		scheduler:         scheduler,
		escalationService: escalationService,
		logger:            logger,
	}
}

// Reminders handles POST /runs/reminders
func (h *Run) Reminders(c echo.Context) error {
	report, err := h.scheduler.Run(c.Request().Context(), time.Now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, report)
}

// Escalations handles POST /runs/escalations
func (h *Run) Escalations(c echo.Context) error {
	report, err := h.escalationService.Run(c.Request().Context(), time.Now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, report)
}
