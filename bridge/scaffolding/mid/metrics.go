package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrazmi/taskline/bridge/scaffolding/errs"
	"github.com/jrazmi/taskline/bridge/scaffolding/metrics"
	"github.com/jrazmi/taskline/infrastructure/web"
)

// goroutineSampleEvery is how many requests pass between goroutine samples.
const goroutineSampleEvery = 1000

// Metrics counts requests, failed requests and rejected credentials.
func Metrics() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = metrics.Set(ctx)

			resp := next(ctx, r)

			if n := metrics.AddRequests(ctx); n%goroutineSampleEvery == 0 {
				metrics.AddGoroutines(ctx)
			}

			err := isError(resp)
			if err == nil {
				return resp
			}

			metrics.AddErrors(ctx)

			var appErr *errs.Error
			if errors.As(err, &appErr) && appErr.HTTPStatus() == http.StatusUnauthorized {
				metrics.AddUnauthorized(ctx)
			}

			return resp
		}
	}
}
