package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/adapter/dto/followup"
	replyUsecase "github.com/praveenchdev/followup-agent/internal/usecase/reply"
)

// Reply handles inbound reply ingestion requests
type Reply struct {
	replyService *replyUsecase.Service
	logger       *zap.Logger
}

// NewReplyHandler creates a new reply handler
func NewReplyHandler(replyService *replyUsecase.Service, logger *zap.Logger) *Reply {
	return &Reply{
		replyService: replyService,
		logger:       logger,
	}
}

// Ingest handles POST /replies
func (h *Reply) Ingest(c echo.Context) error {
	var req followup.IngestReplyRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	report, err := h.replyService.Ingest(c.Request().Context(), req.Sender, req.Body, time.Now())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, report)
}
