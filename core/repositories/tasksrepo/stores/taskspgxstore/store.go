// Package taskspgxstore stores tasks in PostgreSQL. Every statement carries
// the owner in its WHERE clause, so an update or delete either matches the
// compound key atomically or touches nothing.
package taskspgxstore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/infrastructure/postgresdb"
	"github.com/jrazmi/taskline/sdk/logger"
)

const taskColumns = `task_id, owner_id, title, description, status, start_date, end_date, created_at, updated_at`

// Store provides database access for Task.
type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

// NewStore creates a new Task store
func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (@task_id, @owner_id, @title, @description, @status, @start_date, @end_date, @created_at, @updated_at)`

	args := pgx.NamedArgs{
		"task_id":     task.TaskID,
		"owner_id":    task.OwnerID,
		"title":       task.Title,
		"description": task.Description,
		"status":      string(task.Status),
		"start_date":  task.StartDate,
		"end_date":    task.EndDate,
		"created_at":  task.CreatedAt,
		"updated_at":  task.UpdatedAt,
	}

	if _, err := s.pool.Exec(ctx, query, args); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, ownerID string) ([]tasksrepo.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_id = @owner_id
		ORDER BY created_at ASC, task_id ASC`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, storeError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, storeError(err)
	}
	return tasks, nil
}

func (s *Store) Get(ctx context.Context, ownerID, taskID string) (tasksrepo.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE task_id = @task_id AND owner_id = @owner_id`

	return s.queryOne(ctx, query, pgx.NamedArgs{"task_id": taskID, "owner_id": ownerID})
}

func (s *Store) Update(ctx context.Context, ownerID, taskID string, patch tasksrepo.TaskPatch, updatedAt time.Time) (tasksrepo.Task, error) {
	var status *string
	if patch.Status != nil {
		v := string(*patch.Status)
		status = &v
	}

	query := `
		UPDATE tasks SET
			title       = COALESCE(@title, title),
			description = COALESCE(@description, description),
			status      = COALESCE(@status, status),
			start_date  = COALESCE(@start_date, start_date),
			end_date    = COALESCE(@end_date, end_date),
			updated_at  = @updated_at
		WHERE task_id = @task_id AND owner_id = @owner_id
		RETURNING ` + taskColumns

	args := pgx.NamedArgs{
		"task_id":     taskID,
		"owner_id":    ownerID,
		"title":       patch.Title,
		"description": patch.Description,
		"status":      status,
		"start_date":  patch.StartDate,
		"end_date":    patch.EndDate,
		"updated_at":  updatedAt,
	}

	return s.queryOne(ctx, query, args)
}

func (s *Store) Delete(ctx context.Context, ownerID, taskID string) error {
	query := `DELETE FROM tasks WHERE task_id = @task_id AND owner_id = @owner_id`

	tag, err := s.pool.Exec(ctx, query, pgx.NamedArgs{"task_id": taskID, "owner_id": ownerID})
	if err != nil {
		return storeError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Store) queryOne(ctx context.Context, query string, args pgx.NamedArgs) (tasksrepo.Task, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, storeError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, storeError(err)
	}
	return task, nil
}

// storeError maps driver errors onto the repository errors.
func storeError(err error) error {
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return repositories.ErrDuplicate
	}

	var cerr *postgresdb.ConstraintError
	if errors.As(err, &cerr) {
		return constraintError(cerr.Constraint)
	}
	return err
}

// constraintError maps the CHECK constraints of the tasks table to the
// validation error the repository would have reported. A concurrent write can
// still trip the date range check after the repository validated a one-sided
// date patch against the row it read.
func constraintError(name string) error {
	switch name {
	case "tasks_title_check":
		return &tasksrepo.ValidationError{Field: "title", Reason: tasksrepo.ErrEmptyTitle}
	case "tasks_status_check":
		return &tasksrepo.ValidationError{Field: "status", Reason: tasksrepo.ErrInvalidStatus}
	}
	return &tasksrepo.ValidationError{Field: "startDate", Reason: tasksrepo.ErrInvalidDateRange}
}
