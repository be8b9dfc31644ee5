package tasksrepobridge

// Task is the wire form of a task.
type Task struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateTaskInput is every field a client may set on create. Any other key in
// the body, ownerId included, is ignored.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
}

// UpdateTaskInput is every field a client may change. Absent keys are left
// as they are.
type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

// Axis is the wire form of the timeline axis.
type Axis struct {
	MinDate     string `json:"minDate"`
	MaxDate     string `json:"maxDate"`
	RangeMillis int64  `json:"rangeMillis"`
}

// TimelineBar is one task placed on the axis.
type TimelineBar struct {
	Task          Task    `json:"task"`
	OffsetPercent float64 `json:"offsetPercent"`
	WidthPercent  float64 `json:"widthPercent"`
}

// Timeline is the render model for the caller's tasks. Axis and
// TodayPercent are null when there is nothing to draw or today is off chart.
type Timeline struct {
	Axis         *Axis         `json:"axis"`
	Bars         []TimelineBar `json:"bars"`
	TodayPercent *float64      `json:"todayPercent"`
}
