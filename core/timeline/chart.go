package timeline

import "time"

// Bar pairs an item with its computed geometry.
type Bar[T Span] struct {
	Item T
	Position
}

// Chart is a complete render model: the axis, one bar per item in input order
// and the today marker.
type Chart[T Span] struct {
	Axis  *Axis
	Bars  []Bar[T]
	Today *float64
}

// Build lays out every span and the marker for now. An empty input yields a
// chart with a nil axis and no bars.
func Build[T Span](spans []T, now time.Time) Chart[T] {
	axis, ok := ComputeAxis(spans)
	if !ok {
		return Chart[T]{Bars: []Bar[T]{}}
	}

	bars := make([]Bar[T], len(spans))
	for i, s := range spans {
		bars[i] = Bar[T]{Item: s, Position: Layout(s, axis)}
	}

	chart := Chart[T]{Axis: &axis, Bars: bars}
	if p, visible := TodayMarkerPercent(axis, now); visible {
		chart.Today = &p
	}

	return chart
}
