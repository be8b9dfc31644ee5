// Package tasksrepobridge exposes the owner-scoped task endpoints.
package tasksrepobridge

import (
	"time"

	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/infrastructure/web"
	"github.com/jrazmi/taskline/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	// Middleware runs on every task route. It must include authentication.
	Middleware []web.Middleware
	// Now is the clock used for the timeline today marker.
	Now func() time.Time
}

// AddHttpRoutes registers all HTTP routes for Task
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/tasks", b.httpList, cfg.Middleware...)
	group.GET("/tasks/timeline", b.httpTimeline, cfg.Middleware...)
	group.GET("/tasks/{task_id}", b.httpGetByID, cfg.Middleware...)
	group.POST("/tasks", b.httpCreate, cfg.Middleware...)
	group.PUT("/tasks/{task_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/tasks/{task_id}", b.httpDelete, cfg.Middleware...)
}
