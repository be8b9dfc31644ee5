package web

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jrazmi/taskline/sdk/logger"
)

// WebHandler is the route table. Every route registered through Handle runs
// the global middleware followed by any route or group middleware.
type WebHandler struct {
	mux       *http.ServeMux
	log       *logger.Logger
	telemetry Telemetry

	defaultHeaders map[string]string

	globalMiddleware []Middleware
}

type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	log              *logger.Logger
	telemetry        Telemetry
	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

// WithLogging sets the logger
func WithLogging(log *logger.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(o *handlerOptions) {
		o.telemetry = tel
	}
}

// WithDefaultHeaders sets headers written on every response
func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(o *handlerOptions) {
		for k, v := range headers {
			o.defaultHeaders[k] = v
		}
	}
}

// WithGlobalMiddleware adds middleware that wraps every route, in order.
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// NewWebHandler creates an empty route table.
func NewWebHandler(opts ...HandlerOption) *WebHandler {
	o := &handlerOptions{
		defaultHeaders: make(map[string]string),
	}
	for _, opt := range opts {
		opt(o)
	}

	log := o.log
	if log == nil {
		log = logger.NewDiscard()
	}

	return &WebHandler{
		mux:              http.NewServeMux(),
		log:              log,
		telemetry:        o.telemetry,
		defaultHeaders:   o.defaultHeaders,
		globalMiddleware: o.globalMiddleware,
	}
}

// Handle registers handler for method and path using ServeMux pattern syntax,
// so path may contain wildcards such as {task_id}.
func (a *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := a.buildHandlerChain(handler, middleware...)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if a.telemetry != nil {
			ctx = a.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)

		for k, v := range a.defaultHeaders {
			w.Header().Set(k, v)
		}

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil {
			a.log.ErrorContext(ctx, "respond error", "error", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)
	a.mux.HandleFunc(pattern, httpHandler)
}

// HandleRaw registers a plain http.Handler. Global middleware is not applied.
func (a *WebHandler) HandleRaw(pattern string, handler http.Handler) {
	a.mux.Handle(pattern, handler)
}

// Preflight answers OPTIONS for every path with an empty response after the
// global middleware has run, which is where CORS headers are set.
func (a *WebHandler) Preflight() {
	a.Handle(http.MethodOptions, "/{path...}", func(ctx context.Context, r *http.Request) Encoder {
		return NewNoContent()
	})
}

func (a *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}
