package mid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jrazmi/taskline/infrastructure/web"
	"github.com/jrazmi/taskline/sdk/logger"
)

type httpStatus interface {
	HTTPStatus() int
}

// Logger writes information about the request to the logs.
func Logger(log *logger.Logger) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = fmt.Sprintf("%s?%s", path, r.URL.RawQuery)
			}

			log.InfoContext(ctx, "request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			status := http.StatusOK
			switch v := resp.(type) {
			case httpStatus:
				status = v.HTTPStatus()
			case error:
				status = http.StatusInternalServerError
			case nil:
				status = http.StatusNoContent
			}

			log.InfoContext(ctx, "request completed", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr,
				"statuscode", status, "since", time.Since(now).String())

			return resp
		}
	}
}
