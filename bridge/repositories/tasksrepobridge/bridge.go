package tasksrepobridge

import (
	"time"

	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/sdk/logger"
)

// bridge provides HTTP handlers for Task operations.
type bridge struct {
	log            *logger.Logger
	taskRepository *tasksrepo.Repository
	now            func() time.Time
}

func newBridge(cfg Config) *bridge {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &bridge{
		log:            cfg.Log,
		taskRepository: cfg.Repository,
		now:            now,
	}
}
