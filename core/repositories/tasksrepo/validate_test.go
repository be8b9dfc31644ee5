package tasksrepo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/sdk/validation"
)

func TestValidateCreateDefaults(t *testing.T) {
	nt, err := tasksrepo.ValidateCreate(tasksrepo.CreateTask{
		Title:     "  Write report  ",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-05",
	})
	if err != nil {
		t.Fatalf("ValidateCreate() error = %v", err)
	}

	if nt.Title != "Write report" {
		t.Errorf("Expected trimmed title, got %q", nt.Title)
	}
	if nt.Status != tasksrepo.StatusToDo {
		t.Errorf("Expected default status %q, got %q", tasksrepo.StatusToDo, nt.Status)
	}
	if nt.Description != "" {
		t.Errorf("Expected empty description, got %q", nt.Description)
	}
	if !nt.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected start date %s", nt.StartDate)
	}
}

func TestValidateCreateRejects(t *testing.T) {
	tests := []struct {
		name  string
		input tasksrepo.CreateTask
		want  error
	}{
		{
			name:  "blank title",
			input: tasksrepo.CreateTask{Title: "   ", StartDate: "2024-01-01", EndDate: "2024-01-02"},
			want:  tasksrepo.ErrEmptyTitle,
		},
		{
			name:  "unknown status",
			input: tasksrepo.CreateTask{Title: "x", Status: validation.StringPtr("Blocked"), StartDate: "2024-01-01", EndDate: "2024-01-02"},
			want:  tasksrepo.ErrInvalidStatus,
		},
		{
			name:  "status case matters",
			input: tasksrepo.CreateTask{Title: "x", Status: validation.StringPtr("done"), StartDate: "2024-01-01", EndDate: "2024-01-02"},
			want:  tasksrepo.ErrInvalidStatus,
		},
		{
			name:  "missing start",
			input: tasksrepo.CreateTask{Title: "x", EndDate: "2024-01-02"},
			want:  tasksrepo.ErrMissingDate,
		},
		{
			name:  "garbage end",
			input: tasksrepo.CreateTask{Title: "x", StartDate: "2024-01-01", EndDate: "next tuesday"},
			want:  tasksrepo.ErrInvalidDate,
		},
		{
			name:  "start after end",
			input: tasksrepo.CreateTask{Title: "x", StartDate: "2024-01-10", EndDate: "2024-01-01"},
			want:  tasksrepo.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tasksrepo.ValidateCreate(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, tasksrepo.ErrValidation) {
				t.Errorf("Expected error to match ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidateCreateAllowsEqualDates(t *testing.T) {
	_, err := tasksrepo.ValidateCreate(tasksrepo.CreateTask{
		Title:     "Milestone",
		StartDate: "2024-03-01T12:00:00Z",
		EndDate:   "2024-03-01T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("Expected equal dates to be accepted, got %v", err)
	}
}

func TestValidateUpdatePartial(t *testing.T) {
	patch, err := tasksrepo.ValidateUpdate(tasksrepo.UpdateTask{
		Status: validation.StringPtr("Done"),
	})
	if err != nil {
		t.Fatalf("ValidateUpdate() error = %v", err)
	}
	if patch.Status == nil || *patch.Status != tasksrepo.StatusDone {
		t.Errorf("Expected status Done, got %v", patch.Status)
	}
	if patch.Title != nil || patch.StartDate != nil || patch.EndDate != nil || patch.Description != nil {
		t.Errorf("Expected only status to be set, got %+v", patch)
	}

	empty, err := tasksrepo.ValidateUpdate(tasksrepo.UpdateTask{})
	if err != nil {
		t.Fatalf("ValidateUpdate(empty) error = %v", err)
	}
	if !empty.Empty() {
		t.Errorf("Expected empty patch, got %+v", empty)
	}
}

func TestValidateUpdateRejectsBlankTitle(t *testing.T) {
	_, err := tasksrepo.ValidateUpdate(tasksrepo.UpdateTask{Title: validation.StringPtr("")})
	if !errors.Is(err, tasksrepo.ErrEmptyTitle) {
		t.Fatalf("Expected ErrEmptyTitle, got %v", err)
	}

	var verr *tasksrepo.ValidationError
	if !errors.As(err, &verr) || verr.Field != "title" {
		t.Errorf("Expected ValidationError on title, got %v", err)
	}
}
