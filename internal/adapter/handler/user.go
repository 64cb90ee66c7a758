package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/internal/adapter/dto/followup"
	"github.com/praveenchdev/followup-agent/internal/adapter/presenter"
	"github.com/praveenchdev/followup-agent/internal/usecase/directory"
)

// User handles directory HTTP requests
type User struct {
	dirService *directory.Service
	logger     *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(dirService *directory.Service, logger *zap.Logger) *User {
	return &User{
		dirService: dirService,
		logger:     logger,
	}
}

// Resolve handles GET /users/resolve
func (h *User) Resolve(c echo.Context) error {
	var req followup.ResolveUserRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	user, ok := h.dirService.Resolve(c.Request().Context(), req.Token)
	return HandleSuccess(h.logger, c, presenter.ToResolveUserResponse(user, ok))
}
