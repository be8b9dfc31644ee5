package postgresdb

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHandlePgError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil", in: nil, want: nil},
		{name: "no rows", in: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: ErrDBNotFound},
		{name: "unique violation", in: &pgconn.PgError{Code: uniqueViolation}, want: ErrDBDuplicatedEntry},
		{name: "undefined table", in: &pgconn.PgError{Code: undefinedTable}, want: ErrUndefinedTable},
		{name: "check violation", in: &pgconn.PgError{Code: checkViolation, ConstraintName: "tasks_check"}, want: ErrCheckViolation},
		{name: "malformed uuid", in: &pgconn.PgError{Code: invalidTextRepresentation}, want: ErrDBNotFound},
		{name: "other", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HandlePgError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("Expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPoolConfig(t *testing.T) {
	cfg := Options{
		DatabaseURL: "postgres://u:p@localhost:5432/taskline",
		MaxConns:    10,
		MinConns:    2,
		MaxLifetime: time.Hour,
		HealthCheck: time.Minute,
	}

	pc, err := poolConfig(cfg)
	if err != nil {
		t.Fatalf("poolConfig() error = %v", err)
	}
	if pc.MaxConns != 10 || pc.MinConns != 2 {
		t.Errorf("Expected conns 2..10, got %d..%d", pc.MinConns, pc.MaxConns)
	}
	if pc.ConnConfig.Database != "taskline" {
		t.Errorf("Expected database taskline, got %s", pc.ConnConfig.Database)
	}

	cfg.MinConns = 20
	if _, err := poolConfig(cfg); err == nil {
		t.Error("Expected an error when min conns exceeds max conns")
	}
}

func TestConstraintErrorNamesConstraint(t *testing.T) {
	err := HandlePgError(&pgconn.PgError{Code: checkViolation, ConstraintName: "tasks_check"})

	var cerr *ConstraintError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected *ConstraintError, got %T", err)
	}
	if cerr.Constraint != "tasks_check" {
		t.Errorf("Expected constraint tasks_check, got %q", cerr.Constraint)
	}
}
