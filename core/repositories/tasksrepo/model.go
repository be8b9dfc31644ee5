package tasksrepo

import (
	"time"
)

// Status is the progress state of a task.
type Status string

// The set of task statuses. Values are the wire literals.
const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusToDo, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is a user-owned unit of work with a date range.
type Task struct {
	TaskID      string    `db:"task_id" bson:"_id"`
	OwnerID     string    `db:"owner_id" bson:"owner_id"`
	Title       string    `db:"title" bson:"title"`
	Description string    `db:"description" bson:"description"`
	Status      Status    `db:"status" bson:"status"`
	StartDate   time.Time `db:"start_date" bson:"start_date"`
	EndDate     time.Time `db:"end_date" bson:"end_date"`
	CreatedAt   time.Time `db:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" bson:"updated_at"`
}

// Start and End make Task usable as a timeline span.
func (t Task) Start() time.Time { return t.StartDate }
func (t Task) End() time.Time   { return t.EndDate }

// CreateTask is the allow-listed input for a new task. Dates are raw ISO-8601
// strings; an owner is never accepted from input.
type CreateTask struct {
	Title       string
	Description *string
	Status      *string
	StartDate   string
	EndDate     string
}

// UpdateTask is the allow-listed partial update. Nil fields are left untouched.
type UpdateTask struct {
	Title       *string
	Description *string
	Status      *string
	StartDate   *string
	EndDate     *string
}

// NewTask is a validated and normalized CreateTask.
type NewTask struct {
	Title       string
	Description string
	Status      Status
	StartDate   time.Time
	EndDate     time.Time
}

// TaskPatch is a validated and normalized UpdateTask.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
	StartDate   *time.Time
	EndDate     *time.Time
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.StartDate == nil && p.EndDate == nil
}

// Apply returns t with the patch fields and updatedAt applied.
func (p TaskPatch) Apply(t Task, updatedAt time.Time) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	t.UpdatedAt = updatedAt
	return t
}
