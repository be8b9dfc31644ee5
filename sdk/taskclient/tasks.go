package taskclient

import (
	"context"
	"net/http"
	"time"

	"github.com/jrazmi/taskline/core/timeline"
)

// Status literals accepted by the server.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Start and End make Task usable with the timeline package.
func (t Task) Start() time.Time { return t.StartDate }
func (t Task) End() time.Time   { return t.EndDate }

// NewTask is the body for CreateTask. Dates are ISO-8601 strings.
type NewTask struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

// TaskPatch is the body for UpdateTask. Nil fields are not sent.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
}

type Axis struct {
	MinDate     time.Time `json:"minDate"`
	MaxDate     time.Time `json:"maxDate"`
	RangeMillis int64     `json:"rangeMillis"`
}

type TimelineBar struct {
	Task          Task    `json:"task"`
	OffsetPercent float64 `json:"offsetPercent"`
	WidthPercent  float64 `json:"widthPercent"`
}

// Timeline is the server computed chart. Axis is nil when there are no
// tasks and TodayPercent is nil when today is off the chart.
type Timeline struct {
	Axis         *Axis         `json:"axis"`
	Bars         []TimelineBar `json:"bars"`
	TodayPercent *float64      `json:"todayPercent"`
}

type codeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) ListTasks(ctx context.Context, session *Session) ([]Task, error) {
	if !session.Active() {
		return nil, ErrNoSession
	}
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", session, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, session *Session, id string) (Task, error) {
	if !session.Active() {
		return Task{}, ErrNoSession
	}
	var task Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), session, nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (c *Client) CreateTask(ctx context.Context, session *Session, input NewTask) (Task, error) {
	if !session.Active() {
		return Task{}, ErrNoSession
	}
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", session, input, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTask(ctx context.Context, session *Session, id string, patch TaskPatch) (Task, error) {
	if !session.Active() {
		return Task{}, ErrNoSession
	}
	var task Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), session, patch, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, session *Session, id string) error {
	if !session.Active() {
		return ErrNoSession
	}
	var resp codeResponse
	return c.do(ctx, http.MethodDelete, taskPath(id), session, nil, &resp)
}

// Timeline fetches the chart computed by the server.
func (c *Client) Timeline(ctx context.Context, session *Session) (Timeline, error) {
	if !session.Active() {
		return Timeline{}, ErrNoSession
	}
	var tl Timeline
	if err := c.do(ctx, http.MethodGet, "/api/tasks/timeline", session, nil, &tl); err != nil {
		return Timeline{}, err
	}
	return tl, nil
}

// LocalTimeline lays out tasks already held by the caller without a round
// trip, using the same layout rules as the server.
func LocalTimeline(tasks []Task, now time.Time) timeline.Chart[Task] {
	return timeline.Build(tasks, now)
}
