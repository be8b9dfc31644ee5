package mid

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jrazmi/taskline/bridge/scaffolding/errs"
	"github.com/jrazmi/taskline/core/cases/authcase"
	"github.com/jrazmi/taskline/infrastructure/web"
)

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header that
// resolves to a user. The user id is stored in the context for GetUserID.
// An error other than authcase.ErrUnauthenticated is reported as internal.
func Authenticate(auth Authenticator) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			token, ok := bearerToken(r)
			if !ok {
				return errs.Newf(errs.Unauthenticated, "authentication required")
			}

			userID, err := auth.Authenticate(ctx, token)
			if err != nil {
				if errors.Is(err, authcase.ErrUnauthenticated) {
					return errs.Newf(errs.Unauthenticated, "invalid or expired token")
				}
				return errs.Newf(errs.InternalOnlyLog, "authenticate: %s", err)
			}

			ctx = setUserID(ctx, userID)
			ctx = setToken(ctx, token)

			return next(ctx, r)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
