package userspgxstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/usersrepo"
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

func (s *Store) Create(ctx context.Context, user usersrepo.User) error {
	query := `
		INSERT INTO users (user_id, username, email, password_hash, created_at)
		VALUES (@user_id, @username, @email, @password_hash, @created_at)`

	args := pgx.NamedArgs{
		"user_id":       user.UserID,
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	query := `SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE user_id = @user_id`

	return s.queryOne(ctx, query, pgx.NamedArgs{"user_id": userID})
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT user_id, username, email, password_hash, created_at
		FROM users
		WHERE email = @email`

	return s.queryOne(ctx, query, pgx.NamedArgs{"email": email})
}

func (s *Store) queryOne(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, storeError(err)
	}
	defer rows.Close()

	// CollectOneRow returns the first row, or pgx.ErrNoRows if no rows
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, storeError(err)
	}
	return user, nil
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
