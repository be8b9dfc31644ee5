// Package timeline lays tasks out on a shared time axis for Gantt-style
// rendering. Everything here is pure: results depend only on the inputs and
// the supplied clock reading.
package timeline

import "time"

// Span is anything with a start and end instant.
type Span interface {
	Start() time.Time
	End() time.Time
}

// Axis is the visible window shared by every bar of a chart.
type Axis struct {
	MinDate     time.Time `json:"minDate"`
	MaxDate     time.Time `json:"maxDate"`
	RangeMillis int64     `json:"rangeMillis"`
}

// Degenerate reports whether every span sits on a single instant.
func (a Axis) Degenerate() bool {
	return a.RangeMillis == 0
}

// ComputeAxis returns the window from the earliest start to the latest end.
// The boolean is false for an empty input; there is no axis to lay out on.
func ComputeAxis[T Span](spans []T) (Axis, bool) {
	if len(spans) == 0 {
		return Axis{}, false
	}

	minDate := spans[0].Start()
	maxDate := spans[0].End()
	for _, s := range spans[1:] {
		if start := s.Start(); start.Before(minDate) {
			minDate = start
		}
		if end := s.End(); end.After(maxDate) {
			maxDate = end
		}
	}

	return Axis{
		MinDate:     minDate,
		MaxDate:     maxDate,
		RangeMillis: millisBetween(minDate, maxDate),
	}, true
}

// millisBetween works on Unix milliseconds since time.Duration saturates at
// about 292 years.
func millisBetween(from, to time.Time) int64 {
	return to.UnixMilli() - from.UnixMilli()
}
