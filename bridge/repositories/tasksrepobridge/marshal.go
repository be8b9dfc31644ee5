package tasksrepobridge

import (
	"time"

	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/core/timeline"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// MarshalToBridge converts a core task to its wire form.
func MarshalToBridge(task tasksrepo.Task) Task {
	return Task{
		ID:          task.TaskID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		StartDate:   formatTime(task.StartDate),
		EndDate:     formatTime(task.EndDate),
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTime(task.UpdatedAt),
	}
}

// MarshalListToBridge converts a list of core models to bridge models
func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	bridgeTasks := make([]Task, len(tasks))
	for i, task := range tasks {
		bridgeTasks[i] = MarshalToBridge(task)
	}
	return bridgeTasks
}

// MarshalCreateToRepository converts bridge create input to repository input
func MarshalCreateToRepository(input CreateTaskInput) tasksrepo.CreateTask {
	return tasksrepo.CreateTask{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
}

// MarshalUpdateToRepository converts bridge update input to repository input
func MarshalUpdateToRepository(input UpdateTaskInput) tasksrepo.UpdateTask {
	return tasksrepo.UpdateTask{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
}

// MarshalTimelineToBridge converts a computed chart to its wire form.
func MarshalTimelineToBridge(chart timeline.Chart[tasksrepo.Task]) Timeline {
	out := Timeline{
		Bars:         make([]TimelineBar, len(chart.Bars)),
		TodayPercent: chart.Today,
	}

	if chart.Axis != nil {
		out.Axis = &Axis{
			MinDate:     formatTime(chart.Axis.MinDate),
			MaxDate:     formatTime(chart.Axis.MaxDate),
			RangeMillis: chart.Axis.RangeMillis,
		}
	}

	for i, bar := range chart.Bars {
		out.Bars[i] = TimelineBar{
			Task:          MarshalToBridge(bar.Item),
			OffsetPercent: bar.OffsetPercent,
			WidthPercent:  bar.WidthPercent,
		}
	}

	return out
}
