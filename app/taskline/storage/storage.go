// Package storage opens every repository over the configured store driver.
package storage

import (
	"context"
	"fmt"

	"github.com/jrazmi/taskline/app/taskline/config"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo/stores/tasksmongostore"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo/stores/taskspgxstore"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo/stores/usersessionsmemstore"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo/stores/usersessionsmongostore"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo/stores/usersessionspgxstore"
	"github.com/jrazmi/taskline/core/repositories/usersrepo"
	"github.com/jrazmi/taskline/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/taskline/core/repositories/usersrepo/stores/usersmongostore"
	"github.com/jrazmi/taskline/core/repositories/usersrepo/stores/userspgxstore"
	"github.com/jrazmi/taskline/infrastructure/mongodb"
	"github.com/jrazmi/taskline/infrastructure/postgresdb"
	"github.com/jrazmi/taskline/sdk/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

// Set is every repository built over one storage driver.
type Set struct {
	Tasks    *tasksrepo.Repository
	Users    *usersrepo.Repository
	Sessions *usersessionsrepo.Repository

	// Health pings the backing store. nil for the memory driver.
	Health func(ctx context.Context) error
	Close  func()
}

// Open connects to the store named by driver using PREFIX_* connection
// variables and builds the repositories over it.
func Open(ctx context.Context, log *logger.Logger, prefix, driver string) (Set, error) {
	switch driver {
	case config.DriverPostgres:
		pg, err := postgresdb.NewFromEnv(prefix, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return Set{}, fmt.Errorf("configuring postgres support: %w", err)
		}
		log.InfoContext(ctx, "init", "service", "postgres")

		return Set{
			Tasks:    tasksrepo.NewRepository(log, taskspgxstore.NewStore(log, pg)),
			Users:    usersrepo.NewRepository(log, userspgxstore.NewStore(log, pg)),
			Sessions: usersessionsrepo.NewRepository(log, usersessionspgxstore.NewStore(log, pg)),
			Health: func(ctx context.Context) error {
				return postgresdb.StatusCheck(ctx, pg)
			},
			Close: pg.Close,
		}, nil

	case config.DriverMongo:
		db, err := mongodb.NewFromEnv(ctx, prefix)
		if err != nil {
			return Set{}, fmt.Errorf("configuring mongo support: %w", err)
		}
		log.InfoContext(ctx, "init", "service", "mongo")

		if err := mongodb.EnsureIndexes(ctx, db.Database, MongoIndexes); err != nil {
			db.Close(context.Background())
			return Set{}, err
		}

		return Set{
			Tasks:    tasksrepo.NewRepository(log, tasksmongostore.NewStore(log, db.Database)),
			Users:    usersrepo.NewRepository(log, usersmongostore.NewStore(log, db.Database)),
			Sessions: usersessionsrepo.NewRepository(log, usersessionsmongostore.NewStore(log, db.Database)),
			Health:   db.StatusCheck,
			Close: func() {
				db.Close(context.Background())
			},
		}, nil

	case config.DriverMemory:
		log.WarnContext(ctx, "init", "service", "memory", "note", "data is lost on restart")

		return Set{
			Tasks:    tasksrepo.NewRepository(log, tasksmemstore.NewStore()),
			Users:    usersrepo.NewRepository(log, usersmemstore.NewStore()),
			Sessions: usersessionsrepo.NewRepository(log, usersessionsmemstore.NewStore()),
			Close:    func() {},
		}, nil
	}

	return Set{}, fmt.Errorf("unknown store driver %q", driver)
}

// MongoIndexes lists the indexes each document store needs.
var MongoIndexes = map[string][]mongo.IndexModel{
	tasksmongostore.Collection:        tasksmongostore.Indexes,
	usersmongostore.Collection:        usersmongostore.Indexes,
	usersessionsmongostore.Collection: usersessionsmongostore.Indexes,
}
