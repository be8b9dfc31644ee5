package mid

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"

	"github.com/jrazmi/taskline/bridge/scaffolding/errs"
	"github.com/jrazmi/taskline/infrastructure/web"
	"github.com/jrazmi/taskline/sdk/logger"
)

// Errors turns any error returned by the chain into an errs.Error. Client
// errors are logged at warn and server errors at error level. Internal
// details never reach the response body.
func Errors(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)
			err := isError(resp)
			if err == nil {
				return resp
			}

			var appErr *errs.Error
			if !errors.As(err, &appErr) {
				appErr = errs.Newf(errs.InternalOnlyLog, "%s", err)
			}

			status := appErr.HTTPStatus()
			level := slog.LevelWarn
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			log.Log(ctx, level, "request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"code", appErr.Code.String(),
				"err", err,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName))

			if appErr.Code == errs.InternalOnlyLog {
				return errs.Newf(errs.Internal, "Internal Server Error")
			}

			return appErr
		}
	}
}
