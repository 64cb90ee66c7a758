package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/praveenchdev/followup-agent/internal/infrastructure/http/middleware"
	"github.com/praveenchdev/followup-agent/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	taskHandler    *Task
	replyHandler   *Reply
	runHandler     *Run
	userHandler    *User
	auth           *middleware.AuthMiddleware
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, taskHandler *Task, replyHandler *Reply, runHandler *Run, userHandler *User, auth *middleware.AuthMiddleware) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		taskHandler:    taskHandler,
		replyHandler:   replyHandler,
		runHandler:     runHandler,
		userHandler:    userHandler,
		auth:           auth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupTaskRoutes(v1)
	rt.setupReplyRoutes(v1)
	rt.setupRunRoutes(v1)
	rt.setupUserRoutes(v1)
}

// setupMeetingRoutes configures meeting-notes routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("", rt.meetingHandler.Submit, rt.protected()...)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
}

// setupTaskRoutes configures registry routes
func (rt *Router) setupTaskRoutes(g *echo.Group) {
	taskGroup := g.Group("/tasks")

	taskGroup.GET("", rt.taskHandler.List)
	taskGroup.GET("/:id", rt.taskHandler.Get)
	taskGroup.POST("/:id/transition", rt.taskHandler.Transition, rt.protected()...)
}

// setupReplyRoutes configures reply ingestion routes
func (rt *Router) setupReplyRoutes(g *echo.Group) {
	replyGroup := g.Group("/replies")

	replyGroup.POST("", rt.replyHandler.Ingest, rt.protected()...)
}

// setupRunRoutes configures on-demand pass triggers
func (rt *Router) setupRunRoutes(g *echo.Group) {
	runGroup := g.Group("/runs")

	runGroup.POST("/reminders", rt.runHandler.Reminders, rt.protected()...)
	runGroup.POST("/escalations", rt.runHandler.Escalations, rt.protected()...)
}

// setupUserRoutes configures directory routes
func (rt *Router) setupUserRoutes(g *echo.Group) {
	userGroup := g.Group("/users")

	userGroup.GET("/resolve", rt.userHandler.Resolve)
}

// protected returns the middleware chain for mutating routes; empty
// when no auth middleware is wired (tests, local runs).
func (rt *Router) protected() []echo.MiddlewareFunc {
	if rt.auth == nil {
		return nil
	}
	return []echo.MiddlewareFunc{rt.auth.Require()}
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
