package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/adapter/dto/followup"
	"github.com/praveenchdev/followup-agent/internal/adapter/presenter"
	momUsecase "github.com/praveenchdev/followup-agent/internal/usecase/mom"
)

// Meeting handles meeting-notes HTTP requests
type Meeting struct {
	momService *momUsecase.Service
	logger     *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(momService *momUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		momService: momService,
		logger:     logger,
	}
}

// Submit handles POST /meetings
func (h *Meeting) Submit(c echo.Context) error {
	var req followup.SubmitMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	submittedOn := time.Now()
	if req.SubmittedOn != nil {
		submittedOn = *req.SubmittedOn
	}

	result, err := h.momService.Submit(c.Request().Context(), momUsecase.Submission{
		Subject:     req.Subject,
		Text:        req.Text,
		SubmittedOn: submittedOn,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := followup.SubmitMeetingResponse{
		MeetingID:        result.Meeting.MeetingID,
		Subject:          result.Meeting.Subject,
		SubmittedOn:      result.Meeting.SubmittedOn,
		TaskCount:        result.Meeting.TaskCount,
		ArchiveKey:       result.Meeting.ArchiveKey,
		UnresolvedOwners: result.UnresolvedOwners,
	}
	for _, t := range result.Tasks {
		resp.Tasks = append(resp.Tasks, *presenter.ToTaskResponse(t))
	}

	return HandleSuccess(h.logger, c, resp)
}

// Get handles GET /meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	meetingID := c.Param("id")
	if meetingID == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("meeting id is required"))
	}

	meeting, err := h.momService.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, meeting)
}
