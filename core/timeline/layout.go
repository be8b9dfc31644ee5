package timeline

import "time"

const (
	// MinWidthPercent keeps very short spans visible on long axes.
	MinWidthPercent = 1.0
	fullPercent     = 100.0
)

// Position is a bar's horizontal geometry as a percentage of the axis.
type Position struct {
	OffsetPercent float64 `json:"offsetPercent"`
	WidthPercent  float64 `json:"widthPercent"`
}

// Layout maps s onto axis. On a degenerate axis every bar spans the full width.
func Layout(s Span, axis Axis) Position {
	if axis.Degenerate() {
		return Position{OffsetPercent: 0, WidthPercent: fullPercent}
	}

	offset := clamp(percentOf(s.Start(), axis), 0, fullPercent)
	rawEnd := percentOf(s.End(), axis)
	width := clamp(rawEnd-offset, MinWidthPercent, fullPercent)

	return Position{OffsetPercent: offset, WidthPercent: width}
}

// TodayMarkerPercent returns where now falls on the axis. The marker is only
// visible inside [0,100]; outside the window it is omitted, not clamped.
func TodayMarkerPercent(axis Axis, now time.Time) (float64, bool) {
	if axis.Degenerate() {
		return 0, now.Equal(axis.MinDate)
	}

	p := percentOf(now, axis)
	if p < 0 || p > fullPercent {
		return 0, false
	}
	return p, true
}

func percentOf(t time.Time, axis Axis) float64 {
	return float64(millisBetween(axis.MinDate, t)) / float64(axis.RangeMillis) * fullPercent
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
