package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo"
)

// PurgeSessions deletes every expired session once, outside the server's
// schedule.
func PurgeSessions(ctx context.Context, sessions *usersessionsrepo.Repository, log *slog.Logger) error {
	n, err := sessions.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}
	log.InfoContext(ctx, "expired sessions purged", "count", n)
	return nil
}
