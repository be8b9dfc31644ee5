package timeline_test

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jrazmi/taskline/core/timeline"
)

type span struct {
	start, end time.Time
}

func (s span) Start() time.Time { return s.start }
func (s span) End() time.Time   { return s.end }

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.05
}

func TestComputeAxisEmpty(t *testing.T) {
	if _, ok := timeline.ComputeAxis([]span{}); ok {
		t.Fatal("Expected no axis for empty input")
	}

	chart := timeline.Build([]span{}, day(1))
	if chart.Axis != nil {
		t.Errorf("Expected nil axis, got %+v", chart.Axis)
	}
	if chart.Today != nil {
		t.Errorf("Expected no today marker, got %v", *chart.Today)
	}
	if len(chart.Bars) != 0 {
		t.Errorf("Expected no bars, got %d", len(chart.Bars))
	}
}

func TestTwoTaskScenario(t *testing.T) {
	spans := []span{
		{day(1), day(5)},
		{day(3), day(10)},
	}

	axis, ok := timeline.ComputeAxis(spans)
	if !ok {
		t.Fatal("Expected an axis")
	}
	if !axis.MinDate.Equal(day(1)) || !axis.MaxDate.Equal(day(10)) {
		t.Fatalf("Expected axis [2024-01-01, 2024-01-10], got [%s, %s]", axis.MinDate, axis.MaxDate)
	}
	if axis.RangeMillis != (9 * 24 * time.Hour).Milliseconds() {
		t.Errorf("Expected 9 days of range, got %dms", axis.RangeMillis)
	}

	first := timeline.Layout(spans[0], axis)
	if first.OffsetPercent != 0 || !approx(first.WidthPercent, 44.4) {
		t.Errorf("Task 1: expected offset 0 width 44.4, got %+v", first)
	}

	second := timeline.Layout(spans[1], axis)
	if !approx(second.OffsetPercent, 22.2) || !approx(second.WidthPercent, 77.8) {
		t.Errorf("Task 2: expected offset 22.2 width 77.8, got %+v", second)
	}
}

func TestLayoutDegenerateAxis(t *testing.T) {
	spans := []span{{day(4), day(4)}, {day(4), day(4)}}
	axis, _ := timeline.ComputeAxis(spans)

	if !axis.Degenerate() {
		t.Fatalf("Expected degenerate axis, got %+v", axis)
	}
	for i, s := range spans {
		pos := timeline.Layout(s, axis)
		if pos.OffsetPercent != 0 || pos.WidthPercent != 100 {
			t.Errorf("Task %d: expected {0 100}, got %+v", i, pos)
		}
	}
}

func TestLayoutMinimumWidth(t *testing.T) {
	instant := span{day(2), day(2)}
	spans := []span{{day(1), day(31)}, instant}
	axis, _ := timeline.ComputeAxis(spans)

	pos := timeline.Layout(instant, axis)
	if pos.WidthPercent != timeline.MinWidthPercent {
		t.Errorf("Expected width floored at %v, got %v", timeline.MinWidthPercent, pos.WidthPercent)
	}
}

func TestLayoutClampsOutsideAxis(t *testing.T) {
	axis, _ := timeline.ComputeAxis([]span{{day(10), day(20)}})

	before := timeline.Layout(span{day(1), day(15)}, axis)
	if before.OffsetPercent != 0 {
		t.Errorf("Expected offset clamped to 0, got %v", before.OffsetPercent)
	}
	if before.WidthPercent != 50 {
		t.Errorf("Expected width 50, got %v", before.WidthPercent)
	}

	after := timeline.Layout(span{day(20), day(20)}, axis)
	if after.OffsetPercent != 100 || after.WidthPercent != timeline.MinWidthPercent {
		t.Errorf("Expected {100 1} at the end of the axis, got %+v", after)
	}
}

func TestTodayMarker(t *testing.T) {
	axis, _ := timeline.ComputeAxis([]span{{day(1), day(11)}})

	tests := []struct {
		name    string
		now     time.Time
		visible bool
		want    float64
	}{
		{"before axis", day(1).Add(-time.Millisecond), false, 0},
		{"at start", day(1), true, 0},
		{"middle", day(6), true, 50},
		{"at end", day(11), true, 100},
		{"after axis", day(11).Add(time.Millisecond), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, visible := timeline.TodayMarkerPercent(axis, tt.now)
			if visible != tt.visible {
				t.Fatalf("Expected visible=%v, got %v", tt.visible, visible)
			}
			if visible && !approx(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTodayMarkerDegenerateAxis(t *testing.T) {
	axis, _ := timeline.ComputeAxis([]span{{day(3), day(3)}})

	if _, visible := timeline.TodayMarkerPercent(axis, day(4)); visible {
		t.Error("Expected marker hidden off the single instant")
	}
	if p, visible := timeline.TodayMarkerPercent(axis, day(3)); !visible || p != 0 {
		t.Errorf("Expected marker at 0 on the instant, got %v (visible=%v)", p, visible)
	}
}

func TestBuildKeepsInputOrder(t *testing.T) {
	spans := []span{{day(5), day(6)}, {day(1), day(2)}, {day(3), day(9)}}
	chart := timeline.Build(spans, day(5))

	if chart.Axis == nil {
		t.Fatal("Expected an axis")
	}
	if len(chart.Bars) != len(spans) {
		t.Fatalf("Expected %d bars, got %d", len(spans), len(chart.Bars))
	}
	for i, bar := range chart.Bars {
		if bar.Item != spans[i] {
			t.Errorf("Bar %d: expected %v, got %v", i, spans[i], bar.Item)
		}
	}
	if chart.Today == nil || !approx(*chart.Today, 50) {
		t.Errorf("Expected today marker at 50, got %v", chart.Today)
	}
}

func TestLayoutProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for round := range 200 {
		n := 1 + r.IntN(8)
		spans := make([]span, n)
		for i := range spans {
			start := day(1).Add(time.Duration(r.IntN(90*24)) * time.Hour)
			spans[i] = span{start, start.Add(time.Duration(r.IntN(30*24)) * time.Hour)}
		}

		axis, ok := timeline.ComputeAxis(spans)
		if !ok {
			t.Fatalf("round %d: expected an axis", round)
		}

		for i, s := range spans {
			if s.start.Before(axis.MinDate) || s.end.After(axis.MaxDate) {
				t.Fatalf("round %d task %d: %v outside axis %+v", round, i, s, axis)
			}

			pos := timeline.Layout(s, axis)
			if pos.WidthPercent < 1 || pos.WidthPercent > 100 {
				t.Fatalf("round %d task %d: width %v out of [1,100]", round, i, pos.WidthPercent)
			}
			if pos.OffsetPercent < 0 || pos.OffsetPercent > 100 {
				t.Fatalf("round %d task %d: offset %v out of [0,100]", round, i, pos.OffsetPercent)
			}
			if axis.Degenerate() && (pos.OffsetPercent != 0 || pos.WidthPercent != 100) {
				t.Fatalf("round %d task %d: degenerate axis gave %+v", round, i, pos)
			}
		}
	}
}

func TestLayoutAcrossCenturies(t *testing.T) {
	year := func(y int) time.Time { return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC) }
	spans := []span{
		{start: year(1000), end: year(1001)},
		{start: year(2000), end: year(2100)},
	}

	chart := timeline.Build(spans, year(2026))
	if chart.Axis == nil {
		t.Fatal("Expected an axis")
	}

	want := year(2100).UnixMilli() - year(1000).UnixMilli()
	if chart.Axis.RangeMillis != want {
		t.Errorf("Expected range %d, got %d", want, chart.Axis.RangeMillis)
	}

	rangeMs := float64(want)
	wantOffset := float64(year(2000).UnixMilli()-year(1000).UnixMilli()) / rangeMs * 100
	wantWidth := float64(year(2100).UnixMilli()-year(2000).UnixMilli()) / rangeMs * 100
	bar := chart.Bars[1]
	if !approx(bar.OffsetPercent, wantOffset) || !approx(bar.WidthPercent, wantWidth) {
		t.Errorf("Expected offset %.2f width %.2f, got %.2f %.2f", wantOffset, wantWidth, bar.OffsetPercent, bar.WidthPercent)
	}

	wantToday := float64(year(2026).UnixMilli()-year(1000).UnixMilli()) / rangeMs * 100
	if chart.Today == nil || !approx(*chart.Today, wantToday) {
		t.Errorf("Expected today marker at %.2f, got %v", wantToday, chart.Today)
	}
}
