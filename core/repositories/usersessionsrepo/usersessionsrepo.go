// Package usersessionsrepo stores login sessions. Only a hash of the bearer
// token is ever persisted.
package usersessionsrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/sdk/logger"
)

var ErrNotFound = repositories.ErrNotFound

type UserSession struct {
	SessionID string    `db:"session_id" bson:"_id"`
	UserID    string    `db:"user_id" bson:"user_id"`
	TokenHash string    `db:"token_hash" bson:"token_hash"`
	ExpiresAt time.Time `db:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `db:"created_at" bson:"created_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s UserSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Storer interface {
	Create(ctx context.Context, session UserSession) error
	GetByTokenHash(ctx context.Context, tokenHash string) (UserSession, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Repository struct {
	log    *logger.Logger
	storer Storer
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Create opens a session for userID that is valid until expiresAt.
func (r *Repository) Create(ctx context.Context, userID, tokenHash string, now, expiresAt time.Time) (UserSession, error) {
	session := UserSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: now.UTC(),
	}
	if err := r.storer.Create(ctx, session); err != nil {
		return UserSession{}, fmt.Errorf("session repository create: %w", err)
	}
	return session, nil
}

// GetActive returns the session for tokenHash. Expired sessions are reported
// as ErrNotFound.
func (r *Repository) GetActive(ctx context.Context, tokenHash string, now time.Time) (UserSession, error) {
	session, err := r.storer.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return UserSession{}, fmt.Errorf("session repository get: %w", err)
	}
	if session.Expired(now) {
		return UserSession{}, ErrNotFound
	}
	return session, nil
}

func (r *Repository) Delete(ctx context.Context, tokenHash string) error {
	if err := r.storer.DeleteByTokenHash(ctx, tokenHash); err != nil {
		return fmt.Errorf("session repository delete: %w", err)
	}
	return nil
}

// PurgeExpired removes every session that has expired at now.
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.storer.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("session repository purge: %w", err)
	}
	if n > 0 {
		r.log.InfoContext(ctx, "expired sessions purged", "count", n)
	}
	return n, nil
}
