package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/praveenchdev/followup-agent/errors"
	"github.com/praveenchdev/followup-agent/pkg/jwt"
)

// AuthMiddleware validates service tokens on protected routes
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *jwt.Manager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Require returns an echo middleware that rejects requests without a
// valid bearer token and stores the claims on the context.
func (m *AuthMiddleware) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				err := apperrors.ErrUnauthenticated()
				return c.JSON(err.HTTPCode, map[string]interface{}{
					"code":    err.Code,
					"message": err.Message,
				})
			}

			claims, validateErr := m.jwtManager.ValidateToken(token)
			if validateErr != nil {
				m.logger.Warn("token validation failed",
					zap.String("path", c.Path()),
					zap.Error(validateErr),
				)
				err := apperrors.ErrInvalidToken()
				return c.JSON(err.HTTPCode, map[string]interface{}{
					"code":    err.Code,
					"message": err.Message,
				})
			}

			c.Set("subject", claims.Subject)
			c.Set("role", claims.Role)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}
