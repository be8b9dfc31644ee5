// Package api wires the HTTP routes for the taskline service.
package api

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"os"

	"github.com/jrazmi/taskline/app/taskline/config"
	"github.com/jrazmi/taskline/bridge/repositories/authbridge"
	"github.com/jrazmi/taskline/bridge/repositories/tasksrepobridge"
	"github.com/jrazmi/taskline/bridge/scaffolding/errs"
	"github.com/jrazmi/taskline/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/taskline/bridge/scaffolding/mid"
	"github.com/jrazmi/taskline/infrastructure/web"
)

// Handler builds the complete route table.
func Handler(cfg config.Taskline) (http.Handler, error) {
	wh := web.NewWebHandler(
		web.WithLogging(cfg.Logger),
		web.WithTelemetry(cfg.Telemetry),
		web.WithGlobalMiddleware(
			mid.CORS(cfg.Server.CORSOrigins...),
			mid.Logger(cfg.Logger),
			mid.Errors(cfg.Logger),
			mid.Metrics(),
			mid.Panics(),
		),
	)
	wh.Preflight()

	authenticated := []web.Middleware{mid.Authenticate(cfg.Auth)}

	api := wh.Group(config.ApiRoute)
	api.GET("/health", health(cfg))

	authbridge.AddHttpRoutes(api, authbridge.Config{
		Log:           cfg.Logger,
		Service:       cfg.Auth,
		Authenticated: authenticated,
	})

	tasksrepobridge.AddHttpRoutes(api, tasksrepobridge.Config{
		Log:        cfg.Logger,
		Repository: cfg.Repositories.Tasks,
		Middleware: authenticated,
		Now:        cfg.Now,
	})

	if cfg.Server.EnableDebug {
		wh.HandleRaw("GET /debug/vars", expvar.Handler())
	}

	if cfg.Static.Dir != "" {
		if err := wh.FileServerReact(os.DirFS(cfg.Static.Dir), "/"); err != nil {
			return nil, fmt.Errorf("static files: %w", err)
		}
	}

	return wh, nil
}

func health(cfg config.Taskline) web.HandlerFunc {
	return func(ctx context.Context, r *http.Request) web.Encoder {
		if cfg.Health != nil {
			if err := cfg.Health(ctx); err != nil {
				return errs.Newf(errs.InternalOnlyLog, "health: %s", err)
			}
		}
		return fopbridge.NewStatusResponse("ok", http.StatusOK)
	}
}
