// Package authcase registers users, issues bearer sessions and resolves
// bearer tokens back to a user id.
package authcase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo"
	"github.com/jrazmi/taskline/core/repositories/usersrepo"
	"github.com/jrazmi/taskline/sdk/cryptids"
	"github.com/jrazmi/taskline/sdk/logger"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultSessionTTL = 7 * 24 * time.Hour
	MinPasswordLength = 6
)

var (
	ErrEmailTaken         = usersrepo.ErrEmailTaken
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidInput       = errors.New("invalid input")
)

// Register is the input for a new account.
type Register struct {
	Username string
	Email    string
	Password string
}

// Login is the input for opening a session.
type Login struct {
	Email    string
	Password string
}

// Session is an issued bearer token and the user it belongs to. The raw
// token is only ever returned here.
type Session struct {
	Token     string
	User      usersrepo.User
	ExpiresAt time.Time
}

type Service struct {
	log      *logger.Logger
	users    *usersrepo.Repository
	sessions *usersessionsrepo.Repository
	ttl      time.Duration
	now      func() time.Time
	cost     int
}

type Option func(*Service)

// WithSessionTTL sets how long issued sessions stay valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the clock used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func NewService(log *logger.Logger, users *usersrepo.Repository, sessions *usersessionsrepo.Repository, opts ...Option) *Service {
	s := &Service{
		log:      log,
		users:    users,
		sessions: sessions,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates an account and opens its first session.
func (s *Service) Register(ctx context.Context, input Register) (Session, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return Session{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	email := strings.TrimSpace(input.Email)
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return Session{}, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if len(input.Password) < MinPasswordLength {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, usersrepo.CreateUser{
		Username:     username,
		Email:        addr.Address,
		PasswordHash: string(hash),
	})
	if err != nil {
		return Session{}, err
	}

	return s.openSession(ctx, user)
}

// Login checks credentials and opens a session. An unknown email and a wrong
// password produce the same error.
func (s *Service) Login(ctx context.Context, input Login) (Session, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return Session{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

// Authenticate resolves a bearer token to its user id.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}

	session, err := s.sessions.GetActive(ctx, HashToken(token), s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", fmt.Errorf("authenticate: %w", err)
	}
	return session.UserID, nil
}

// Logout ends the session for token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthenticated
	}
	return s.sessions.Delete(ctx, HashToken(token))
}

// PurgeExpired deletes every expired session.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.PurgeExpired(ctx, s.now())
}

func (s *Service) openSession(ctx context.Context, user usersrepo.User) (Session, error) {
	token, err := cryptids.GenerateToken()
	if err != nil {
		return Session{}, fmt.Errorf("generate token: %w", err)
	}

	now := s.now()
	session, err := s.sessions.Create(ctx, user.UserID, HashToken(token), now, now.Add(s.ttl))
	if err != nil {
		return Session{}, err
	}

	s.log.InfoContext(ctx, "session opened", "user_id", user.UserID)
	return Session{
		Token:     token,
		User:      user,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// HashToken is the at-rest form of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
