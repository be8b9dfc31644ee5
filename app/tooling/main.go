package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jrazmi/taskline/app/taskline/config"
	"github.com/jrazmi/taskline/app/taskline/storage"
	"github.com/jrazmi/taskline/app/tooling/commands"
	"github.com/jrazmi/taskline/infrastructure/mongodb"
	"github.com/jrazmi/taskline/infrastructure/postgresdb"
	"github.com/jrazmi/taskline/sdk/environment"
	"github.com/jrazmi/taskline/sdk/logger"
)

var build = "develop"
var appName = "TOOLING"

func processCommands(ctx context.Context, log *logger.Logger, command string) error {
	switch command {
	case "migrate":
		pg, err := postgresdb.NewFromEnv(appName, postgresdb.WithTracer(postgresdb.NewLoggingQueryTracer(log.Logger)))
		if err != nil {
			return fmt.Errorf("configuring postgres support: %w", err)
		}
		defer pg.Close()
		log.InfoContext(ctx, "init", "service", "postgres")

		if err := commands.Migrate(ctx, pg, log.Logger); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil

	case "mongo-indexes":
		db, err := mongodb.NewFromEnv(ctx, appName)
		if err != nil {
			return fmt.Errorf("configuring mongo support: %w", err)
		}
		defer db.Close(context.Background())
		log.InfoContext(ctx, "init", "service", "mongo")

		if err := commands.MongoIndexes(ctx, db, log.Logger); err != nil {
			return fmt.Errorf("mongo indexes failed: %w", err)
		}
		return nil

	case "purge-sessions":
		var storageCfg config.Storage
		if err := environment.ParseEnvTags(appName, &storageCfg); err != nil {
			return fmt.Errorf("parsing storage config: %w", err)
		}
		if storageCfg.Driver == config.DriverMemory {
			return fmt.Errorf("purge-sessions needs a persistent store, got %q", storageCfg.Driver)
		}

		stores, err := storage.Open(ctx, log, appName, storageCfg.Driver)
		if err != nil {
			return err
		}
		defer stores.Close()

		return commands.PurgeSessions(ctx, stores.Sessions, log.Logger)

	default:
		printHelp()
		return nil
	}
}

func printHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  migrate        - apply pending postgres migrations")
	fmt.Println("  mongo-indexes  - create the mongo collection indexes")
	fmt.Println("  purge-sessions - delete expired sessions from the configured store")
	fmt.Println()
	fmt.Println("Connection settings are read from TOOLING_* environment variables.")
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	var command string
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if command == "" || command == "help" || command == "--help" || command == "-h" {
		printHelp()
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		done <- processCommands(ctx, log, command)
	}()

	select {
	case err := <-done:
		return err

	case <-ctx.Done():
		log.InfoContext(ctx, "shutdown", "status", "shutdown started")

		// Give a short time for commands to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		select {
		case err := <-done:
			return err
		case <-shutdownCtx.Done():
			return fmt.Errorf("shutdown timeout: %w", shutdownCtx.Err())
		}
	}
}

func main() {
	environment.LoadEnv()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Println("oh no we couldn't even get logging going.")
		os.Exit(1)
	}
	ctx := context.Background()

	if err = run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}
