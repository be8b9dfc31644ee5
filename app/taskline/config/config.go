// Package config holds the runtime configuration for the taskline service.
package config

import (
	"context"
	"time"

	"github.com/jrazmi/taskline/core/cases/authcase"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/infrastructure/web"
	"github.com/jrazmi/taskline/sdk/logger"
	"github.com/jrazmi/taskline/sdk/telemetry"
)

// site wide globals.
const (
	ApiRoute = "/api"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Storage selects the backing store for every repository.
type Storage struct {
	Driver string `env:"STORE_DRIVER" default:"postgres"`
}

// Auth configures sessions.
type Auth struct {
	SessionTTL    time.Duration `env:"SESSION_TTL" default:"168h"`
	PurgeSchedule string        `env:"SESSION_PURGE_SCHEDULE" default:"@hourly"`
	BcryptCost    int           `env:"BCRYPT_COST" default:"10"`
}

// Static configures optional single page app hosting.
type Static struct {
	Dir string `env:"STATIC_DIR"`
}

// Repositories represents the repositories the API serves.
type Repositories struct {
	Tasks *tasksrepo.Repository
}

// Taskline is the overall configuration for the HTTP handler.
type Taskline struct {
	Build     string
	Logger    *logger.Logger
	Telemetry telemetry.Telemetry
	Server    web.ServerConfig
	Static    Static

	Repositories Repositories
	Auth         *authcase.Service

	// Health reports whether the backing store is reachable.
	Health func(ctx context.Context) error
	// Now is the clock for the timeline today marker. nil means time.Now.
	Now func() time.Time
}
