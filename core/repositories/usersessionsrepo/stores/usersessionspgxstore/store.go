package usersessionspgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo"
	"github.com/jrazmi/taskline/infrastructure/postgresdb"
	"github.com/jrazmi/taskline/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, session usersessionsrepo.UserSession) error {
	query := `
		INSERT INTO user_sessions (session_id, user_id, token_hash, expires_at, created_at)
		VALUES (@session_id, @user_id, @token_hash, @expires_at, @created_at)`

	args := pgx.NamedArgs{
		"session_id": session.SessionID,
		"user_id":    session.UserID,
		"token_hash": session.TokenHash,
		"expires_at": session.ExpiresAt,
		"created_at": session.CreatedAt,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) GetByTokenHash(ctx context.Context, tokenHash string) (usersessionsrepo.UserSession, error) {
	query := `SELECT session_id, user_id, token_hash, expires_at, created_at
		FROM user_sessions
		WHERE token_hash = @token_hash`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"token_hash": tokenHash})
	if err != nil {
		return usersessionsrepo.UserSession{}, storeError(err)
	}
	defer rows.Close()

	session, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersessionsrepo.UserSession])
	if err != nil {
		return usersessionsrepo.UserSession{}, storeError(err)
	}
	return session, nil
}

func (s *Store) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	query := `DELETE FROM user_sessions WHERE token_hash = @token_hash`

	if _, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"token_hash": tokenHash}); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM user_sessions WHERE expires_at <= @now`

	tag, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"now": now})
	if err != nil {
		return 0, storeError(err)
	}
	return tag.RowsAffected(), nil
}

func storeError(err error) error {
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return repositories.ErrDuplicate
	}
	return err
}
