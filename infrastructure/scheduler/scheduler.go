// Package scheduler runs recurring background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/jrazmi/taskline/sdk/logger"
	"github.com/robfig/cron/v3"
)

// Job is one unit of scheduled work. The context is canceled when the
// scheduler shuts down or the job's timeout elapses.
type Job func(ctx context.Context) error

// Scheduler wraps a cron runner with logging, panic recovery and a shared
// shutdown context for jobs.
type Scheduler struct {
	log     *logger.Logger
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

type Option func(*Scheduler)

// WithLocation sets the time zone schedules are evaluated in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.cron = cron.New(cron.WithLocation(loc))
	}
}

// WithJobTimeout bounds how long a single job run may take.
func WithJobTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = d
	}
}

func New(log *logger.Logger, opts ...Option) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		log:     log,
		cron:    cron.New(cron.WithLocation(time.UTC)),
		ctx:     ctx,
		cancel:  cancel,
		timeout: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers job under name. spec is a standard five field cron
// expression or a descriptor such as "@hourly" or "@every 15m".
func (s *Scheduler) Add(name, spec string, job Job) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, s.wrap(name, job))
	if err != nil {
		return 0, fmt.Errorf("schedule %s %q: %w", name, spec, err)
	}
	s.log.Info("job scheduled", "job", name, "spec", spec)
	return id, nil
}

// Run starts the scheduler and blocks until ctx is canceled. Running jobs
// see their context canceled and Run waits for them to return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.InfoContext(ctx, "scheduler started", "jobs", len(s.cron.Entries()))

	<-ctx.Done()

	s.cancel()
	<-s.cron.Stop().Done()

	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) wrap(name string, job Job) func() {
	return func() {
		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				s.log.ErrorContext(ctx, "job panicked", "job", name, "panic", rec, "trace", string(debug.Stack()))
			}
		}()

		if err := job(ctx); err != nil {
			s.log.ErrorContext(ctx, "job failed", "job", name, "error", err, "since", time.Since(start).String())
			return
		}
		s.log.DebugContext(ctx, "job completed", "job", name, "since", time.Since(start).String())
	}
}
