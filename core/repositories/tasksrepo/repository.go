// Package tasksrepo owns the task lifecycle: validation of incoming fields and
// owner-scoped access to storage.
//
// Every operation takes the authenticated owner id, and every Storer method is
// keyed by (taskID, ownerID). A task that exists under another owner is
// reported exactly like a task that does not exist.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/sdk/logger"
)

var (
	// ErrNotFound covers both missing tasks and tasks owned by someone else.
	ErrNotFound = repositories.ErrNotFound

	// ErrMissingOwner is returned when an operation is attempted without an
	// authenticated owner.
	ErrMissingOwner = errors.New("owner id is required")
)

// Storer defines the owner-scoped data storage interface for Task.
// Implementations must apply the owner filter inside the query itself.
type Storer interface {
	Create(ctx context.Context, task Task) error
	List(ctx context.Context, ownerID string) ([]Task, error)
	Get(ctx context.Context, ownerID, taskID string) (Task, error)
	Update(ctx context.Context, ownerID, taskID string, patch TaskPatch, updatedAt time.Time) (Task, error)
	Delete(ctx context.Context, ownerID, taskID string) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
	newID  func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithIDGenerator overrides task id generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) {
		r.newID = fn
	}
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer, opts ...Option) *Repository {
	r := &Repository{
		log:    log,
		storer: storer,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns every task owned by ownerID.
func (r *Repository) List(ctx context.Context, ownerID string) ([]Task, error) {
	if ownerID == "" {
		return nil, ErrMissingOwner
	}

	tasks, err := r.storer.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns the task with taskID if ownerID owns it.
func (r *Repository) Get(ctx context.Context, ownerID, taskID string) (Task, error) {
	taskID, err := checkKey(ownerID, taskID)
	if err != nil {
		return Task{}, err
	}

	task, err := r.storer.Get(ctx, ownerID, taskID)
	if err != nil {
		return Task{}, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Create validates input and stores it as a new task owned by ownerID.
func (r *Repository) Create(ctx context.Context, ownerID string, input CreateTask) (Task, error) {
	if ownerID == "" {
		return Task{}, ErrMissingOwner
	}

	nt, err := ValidateCreate(input)
	if err != nil {
		return Task{}, err
	}

	now := r.now().UTC()
	task := Task{
		TaskID:      r.newID(),
		OwnerID:     ownerID,
		Title:       nt.Title,
		Description: nt.Description,
		Status:      nt.Status,
		StartDate:   nt.StartDate,
		EndDate:     nt.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.storer.Create(ctx, task); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", task.TaskID, "owner_id", ownerID)
	return task, nil
}

// Update applies the fields present in input to the task at (taskID, ownerID).
// Nothing is written when validation fails.
func (r *Repository) Update(ctx context.Context, ownerID, taskID string, input UpdateTask) (Task, error) {
	taskID, err := checkKey(ownerID, taskID)
	if err != nil {
		return Task{}, err
	}

	patch, err := ValidateUpdate(input)
	if err != nil {
		return Task{}, err
	}

	if patch.Empty() {
		return r.Get(ctx, ownerID, taskID)
	}

	// a one-sided date change is checked against the stored counterpart
	if (patch.StartDate == nil) != (patch.EndDate == nil) {
		current, err := r.storer.Get(ctx, ownerID, taskID)
		if err != nil {
			return Task{}, fmt.Errorf("update task: %w", err)
		}
		merged := patch.Apply(current, current.UpdatedAt)
		if err := CheckDateRange(merged.StartDate, merged.EndDate); err != nil {
			return Task{}, err
		}
	}

	task, err := r.storer.Update(ctx, ownerID, taskID, patch, r.now().UTC())
	if err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}

	r.log.InfoContext(ctx, "task updated", "task_id", taskID, "owner_id", ownerID)
	return task, nil
}

// Delete permanently removes the task at (taskID, ownerID).
func (r *Repository) Delete(ctx context.Context, ownerID, taskID string) error {
	taskID, err := checkKey(ownerID, taskID)
	if err != nil {
		return err
	}

	if err := r.storer.Delete(ctx, ownerID, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID, "owner_id", ownerID)
	return nil
}

// checkKey rejects a missing owner and returns the canonical form of taskID.
// Malformed ids are reported as not found so callers learn nothing about
// which ids exist.
func checkKey(ownerID, taskID string) (string, error) {
	if ownerID == "" {
		return "", ErrMissingOwner
	}
	id, err := uuid.Parse(taskID)
	if err != nil {
		return "", ErrNotFound
	}
	return id.String(), nil
}
