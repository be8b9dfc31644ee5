// Package mongodb opens the MongoDB client used by the document stores.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/jrazmi/taskline/sdk/environment"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Options represents the exportable database configuration
type Options struct {
	URI            string        `env:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" default:"taskline"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" default:"10s"`
	MaxPoolSize    int           `env:"MONGO_MAX_POOL_SIZE" default:"50"`
}

// DB bundles the client with the database the stores use.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewFromEnv connects using PREFIX_MONGO_* variables.
func NewFromEnv(ctx context.Context, prefix string) (*DB, error) {
	var cfg Options
	if err := environment.ParseEnvTags(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing mongo config: %w", err)
	}
	return New(ctx, cfg)
}

// New connects and pings the server.
func New(ctx context.Context, cfg Options) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(uint64(cfg.MaxPoolSize))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &DB{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

// StatusCheck returns nil if it can successfully talk to the server.
func (db *DB) StatusCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (db *DB) Close(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes for each collection. Creating an index
// that already exists with the same definition is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database, indexes map[string][]mongo.IndexModel) error {
	for coll, models := range indexes {
		if len(models) == 0 {
			continue
		}
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("creating indexes on %s: %w", coll, err)
		}
	}
	return nil
}
