package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jrazmi/taskline/sdk/environment"
)

// WebServer is an http.Server that knows how to shut itself down.
type WebServer struct {
	*http.Server
	Config ServerConfig
}

// ServerConfig holds web server configuration read from the environment.
type ServerConfig struct {
	Port            string        `toml:"port" env:"PORT" default:":8080"`
	CORSOrigins     []string      `toml:"cors_origins" env:"CORS_ORIGINS" default:"*" separator:","`
	EnableDebug     bool          `toml:"enable_debug" env:"ENABLE_DEBUG" default:"false"`
	ReadTimeout     time.Duration `toml:"read_timeout" env:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `toml:"write_timeout" env:"WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `toml:"idle_timeout" env:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" default:"20s"`
}

type serveroptions struct {
	handler  http.Handler
	errorLog *log.Logger
}

// ServerOption configures the parts of the server that do not come from env.
type ServerOption func(*serveroptions)

// WithHandler sets the HTTP handler. It can also be assigned later through
// the embedded http.Server.
func WithHandler(handler http.Handler) ServerOption {
	return func(o *serveroptions) {
		o.handler = handler
	}
}

// WithErrorLog routes net/http internal errors to errorLog.
func WithErrorLog(errorLog *log.Logger) ServerOption {
	return func(o *serveroptions) {
		o.errorLog = errorLog
	}
}

// NewServerFromEnv creates a new WebServer from PREFIX_* variables.
func NewServerFromEnv(prefix string, opts ...ServerOption) (*WebServer, error) {
	var config ServerConfig
	if err := environment.ParseEnvTags(prefix, &config); err != nil {
		return nil, fmt.Errorf("parsing webserver config: %w", err)
	}

	return NewServer(config, opts...), nil
}

// NewServer creates a WebServer from cfg.
func NewServer(cfg ServerConfig, opts ...ServerOption) *WebServer {
	o := &serveroptions{}
	for _, opt := range opts {
		opt(o)
	}

	server := &http.Server{
		Addr:         cfg.Port,
		Handler:      o.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     o.errorLog,
	}

	return &WebServer{
		Server: server,
		Config: cfg,
	}
}

// Serve runs the server until ctx is canceled, then shuts it down within the
// configured ShutdownTimeout.
func (s *WebServer) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		s.Close()
		return fmt.Errorf("could not stop server gracefully: %w", err)
	}
	return nil
}
