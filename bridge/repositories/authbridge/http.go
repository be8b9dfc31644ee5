// Package authbridge exposes registration, login and logout.
package authbridge

import (
	"github.com/jrazmi/taskline/core/cases/authcase"
	"github.com/jrazmi/taskline/infrastructure/web"
	"github.com/jrazmi/taskline/sdk/logger"
)

// Config holds configuration for the auth bridge
type Config struct {
	Log     *logger.Logger
	Service *authcase.Service
	// Authenticated runs on routes that need a session, such as logout.
	Authenticated []web.Middleware
}

// AddHttpRoutes registers the auth routes under group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.POST("/auth/register", b.httpRegister)
	group.POST("/auth/login", b.httpLogin)
	group.POST("/auth/logout", b.httpLogout, cfg.Authenticated...)
}
