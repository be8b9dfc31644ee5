package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jrazmi/taskline/app/taskline/api"
	"github.com/jrazmi/taskline/app/taskline/config"
	"github.com/jrazmi/taskline/app/taskline/storage"
	"github.com/jrazmi/taskline/core/cases/authcase"
	"github.com/jrazmi/taskline/infrastructure/scheduler"
	"github.com/jrazmi/taskline/infrastructure/web"
	"github.com/jrazmi/taskline/sdk/environment"
	"github.com/jrazmi/taskline/sdk/logger"
	"github.com/jrazmi/taskline/sdk/telemetry"
	"golang.org/x/sync/errgroup"
)

var build = "develop"
var appName = "TASKLINE"

func main() {
	if err := environment.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "reading .env:", err)
	}

	tel := telemetry.NewTelemetry()
	log, err := logger.NewFromEnv(appName,
		logger.WithService("taskline"),
		logger.WithTraceID(tel.GetTraceID),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuring logger:", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if err := run(ctx, log, tel); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger, tel telemetry.Telemetry) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// CONFIG
	var storageCfg config.Storage
	if err := environment.ParseEnvTags(appName, &storageCfg); err != nil {
		return fmt.Errorf("parsing storage config: %w", err)
	}
	var authCfg config.Auth
	if err := environment.ParseEnvTags(appName, &authCfg); err != nil {
		return fmt.Errorf("parsing auth config: %w", err)
	}
	var static config.Static
	if err := environment.ParseEnvTags(appName, &static); err != nil {
		return fmt.Errorf("parsing static config: %w", err)
	}

	// STORES & REPOSITORIES
	stores, err := storage.Open(ctx, log, appName, storageCfg.Driver)
	if err != nil {
		return err
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing store connections")
		stores.Close()
	}()

	authService := authcase.NewService(log, stores.Users, stores.Sessions,
		authcase.WithSessionTTL(authCfg.SessionTTL),
		authcase.WithBcryptCost(authCfg.BcryptCost),
	)

	// SCHEDULER
	sched := scheduler.New(log)
	if _, err := sched.Add("purge-expired-sessions", authCfg.PurgeSchedule, func(ctx context.Context) error {
		_, err := authService.PurgeExpired(ctx)
		return err
	}); err != nil {
		return err
	}

	// WEB
	server, err := web.NewServerFromEnv(appName, web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)))
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	handler, err := api.Handler(config.Taskline{
		Build:     build,
		Logger:    log,
		Telemetry: tel,
		Server:    server.Config,
		Static:    static,
		Repositories: config.Repositories{
			Tasks: stores.Tasks,
		},
		Auth:   authService,
		Health: stores.Health,
	})
	if err != nil {
		return err
	}
	server.Handler = handler

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.InfoContext(gctx, "startup", "status", "api router started", "host", server.Addr, "store", storageCfg.Driver)
		return server.Serve(gctx)
	})

	g.Go(func() error {
		return sched.Run(gctx)
	})

	err = g.Wait()
	log.InfoContext(ctx, "shutdown", "status", "shutdown complete")
	return err
}
