// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/jrazmi/taskline/infrastructure/web"
)

// ErrNoUserID is returned by GetUserID outside of an authenticated route.
var ErrNoUserID = errors.New("user id not found in context")

type ctxKey int

const (
	userIDKey ctxKey = iota + 1
	tokenKey
)

func setUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok || v == "" {
		return "", ErrNoUserID
	}

	return v, nil
}

func setToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// GetToken returns the bearer token that authenticated the request.
func GetToken(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
