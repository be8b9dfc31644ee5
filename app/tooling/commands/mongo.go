package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jrazmi/taskline/app/taskline/storage"
	"github.com/jrazmi/taskline/infrastructure/mongodb"
)

// MongoIndexes creates the indexes every document store relies on.
func MongoIndexes(ctx context.Context, db *mongodb.DB, log *slog.Logger) error {
	if err := db.StatusCheck(ctx); err != nil {
		return fmt.Errorf("mongo status check failed: %w", err)
	}

	if err := mongodb.EnsureIndexes(ctx, db.Database, storage.MongoIndexes); err != nil {
		return err
	}

	log.InfoContext(ctx, "mongo indexes ensured", "collections", len(storage.MongoIndexes))
	return nil
}
