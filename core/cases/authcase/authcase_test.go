package authcase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/taskline/core/cases/authcase"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo/stores/usersessionsmemstore"
	"github.com/jrazmi/taskline/core/repositories/usersrepo"
	"github.com/jrazmi/taskline/core/repositories/usersrepo/stores/usersmemstore"
	"github.com/jrazmi/taskline/sdk/logger"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc  *authcase.Service
	now  time.Time
	sess *usersessionsmemstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewDiscard()
	f := &fixture{
		now:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		sess: usersessionsmemstore.NewStore(),
	}
	f.svc = authcase.NewService(
		log,
		usersrepo.NewRepository(log, usersmemstore.NewStore()),
		usersessionsrepo.NewRepository(log, f.sess),
		authcase.WithSessionTTL(time.Hour),
		authcase.WithClock(func() time.Time { return f.now }),
		authcase.WithBcryptCost(bcrypt.MinCost),
	)
	return f
}

func (f *fixture) register(t *testing.T, email string) authcase.Session {
	t.Helper()
	s, err := f.svc.Register(context.Background(), authcase.Register{
		Username: "alice",
		Email:    email,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register(%q) error = %v", email, err)
	}
	return s
}

func TestRegisterLoginLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	reg := f.register(t, "Alice@Example.com")
	if reg.Token == "" {
		t.Fatal("Expected a token")
	}
	if reg.User.Email != "alice@example.com" {
		t.Errorf("Expected lower-cased email, got %q", reg.User.Email)
	}
	if reg.User.PasswordHash == "secret123" {
		t.Error("Expected password to be hashed")
	}

	login, err := f.svc.Login(ctx, authcase.Login{Email: "ALICE@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.User.UserID != reg.User.UserID {
		t.Errorf("Expected same user, got %s and %s", reg.User.UserID, login.User.UserID)
	}
	if login.Token == reg.Token {
		t.Error("Expected a new token per login")
	}

	userID, err := f.svc.Authenticate(ctx, login.Token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if userID != reg.User.UserID {
		t.Errorf("Expected user %s, got %s", reg.User.UserID, userID)
	}

	if err := f.svc.Logout(ctx, login.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, login.Token); !errors.Is(err, authcase.ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated after logout, got %v", err)
	}
	if _, err := f.svc.Authenticate(ctx, reg.Token); err != nil {
		t.Errorf("Expected the other session to survive, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "bob@example.com")

	_, err := f.svc.Register(context.Background(), authcase.Register{
		Username: "bob2",
		Email:    "BOB@example.com",
		Password: "another1",
	})
	if !errors.Is(err, authcase.ErrEmailTaken) {
		t.Fatalf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		input authcase.Register
	}{
		{"missing username", authcase.Register{Email: "a@b.co", Password: "secret123"}},
		{"bad email", authcase.Register{Username: "a", Email: "nope", Password: "secret123"}},
		{"display name email", authcase.Register{Username: "a", Email: "Bob <bob@x.com>", Password: "secret123"}},
		{"bracketed email", authcase.Register{Username: "a", Email: "<bob@x.com>", Password: "secret123"}},
		{"short password", authcase.Register{Username: "a", Email: "a@b.co", Password: "123"}},
	}

	f := newFixture(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.input)
			if !errors.Is(err, authcase.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "carol@example.com")

	_, wrongPassword := f.svc.Login(ctx, authcase.Login{Email: "carol@example.com", Password: "wrong-pass"})
	_, unknownEmail := f.svc.Login(ctx, authcase.Login{Email: "nobody@example.com", Password: "secret123"})

	if !errors.Is(wrongPassword, authcase.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, authcase.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("Expected identical messages, got %q and %q", wrongPassword, unknownEmail)
	}
}

func TestExpiredSessionRejectedAndPurged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	reg := f.register(t, "dave@example.com")

	f.now = f.now.Add(2 * time.Hour)

	if _, err := f.svc.Authenticate(ctx, reg.Token); !errors.Is(err, authcase.ErrUnauthenticated) {
		t.Fatalf("Expected ErrUnauthenticated for expired session, got %v", err)
	}

	n, err := f.svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 purged session, got %d", n)
	}
	if _, err := f.sess.GetByTokenHash(ctx, authcase.HashToken(reg.Token)); err == nil {
		t.Error("Expected session to be gone after purge")
	}
}

func TestAuthenticateUnknownToken(t *testing.T) {
	f := newFixture(t)

	for _, token := range []string{"", "made-up-token"} {
		if _, err := f.svc.Authenticate(context.Background(), token); !errors.Is(err, authcase.ErrUnauthenticated) {
			t.Errorf("Authenticate(%q): expected ErrUnauthenticated, got %v", token, err)
		}
	}
}

func TestRegisterStoresTrimmedEmail(t *testing.T) {
	f := newFixture(t)

	reg := f.register(t, "  Bob@X.com ")
	if reg.User.Email != "bob@x.com" {
		t.Errorf("Expected stored email bob@x.com, got %q", reg.User.Email)
	}

	if _, err := f.svc.Login(context.Background(), authcase.Login{Email: "bob@x.com", Password: "secret123"}); err != nil {
		t.Errorf("Expected login with the plain address to work, got %v", err)
	}
}
