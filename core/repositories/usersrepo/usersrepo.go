// Package usersrepo manages user accounts.
package usersrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/sdk/logger"
)

// Set of error values for CRUD operations on user resource
var (
	ErrNotFound   = repositories.ErrNotFound
	ErrEmailTaken = fmt.Errorf("email already registered: %w", repositories.ErrDuplicate)
)

// User is an account that owns tasks.
type User struct {
	UserID       string    `db:"user_id" bson:"_id"`
	Username     string    `db:"username" bson:"username"`
	Email        string    `db:"email" bson:"email"`
	PasswordHash string    `db:"password_hash" bson:"password_hash"`
	CreatedAt    time.Time `db:"created_at" bson:"created_at"`
}

// CreateUser holds the fields for a new account. The password is already hashed.
type CreateUser struct {
	Username     string
	Email        string
	PasswordHash string
}

type Storer interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
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

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *Repository) Create(ctx context.Context, input CreateUser) (User, error) {
	user := User{
		UserID:       uuid.NewString(),
		Username:     strings.TrimSpace(input.Username),
		Email:        NormalizeEmail(input.Email),
		PasswordHash: input.PasswordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := r.storer.Create(ctx, user); err != nil {
		if repositories.IsDuplicate(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("user repository create: %w", err)
	}

	r.log.InfoContext(ctx, "user created", "user_id", user.UserID)
	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, userID string) (User, error) {
	record, err := r.storer.GetByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("user repository get by id: %w", err)
	}
	return record, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	record, err := r.storer.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return User{}, fmt.Errorf("user repository get by email: %w", err)
	}
	return record, nil
}
