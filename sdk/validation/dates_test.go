package validation_test

import (
	"testing"
	"time"

	"github.com/jrazmi/taskline/sdk/validation"
)

func TestParseISODate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", "2024-01-08", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-01-08T10:15:00Z", time.Date(2024, 1, 8, 10, 15, 0, 0, time.UTC)},
		{"offset converted to utc", "2024-01-08T10:15:00+02:00", time.Date(2024, 1, 8, 8, 15, 0, 0, time.UTC)},
		{"fractional seconds", "2024-01-08T10:15:00.500Z", time.Date(2024, 1, 8, 10, 15, 0, 500000000, time.UTC)},
		{"no zone", "2024-01-08T10:15:00", time.Date(2024, 1, 8, 10, 15, 0, 0, time.UTC)},
		{"surrounding space", " 2024-01-08 ", time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validation.ParseISODate(tt.input)
			if err != nil {
				t.Fatalf("ParseISODate(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseISODate(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Expected UTC location, got %s", got.Location())
			}
		})
	}
}

func TestParseISODateRejects(t *testing.T) {
	for _, input := range []string{"", "tomorrow", "2024-13-01", "2024-02-30", "01/02/2024"} {
		if _, err := validation.ParseISODate(input); err == nil {
			t.Errorf("Expected error for %q", input)
		}
	}
}
