package tasksrepo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrazmi/taskline/sdk/validation"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// Validation reasons. Each matches ErrValidation as well.
var (
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrInvalidStatus    = errors.New("status must be one of \"To Do\", \"In Progress\", \"Done\"")
	ErrMissingDate      = errors.New("date is required")
	ErrInvalidDate      = errors.New("date must be an ISO-8601 date")
	ErrInvalidDateRange = errors.New("startDate must not be after endDate")
)

// ValidationError reports which field failed and why.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match both ErrValidation and the specific reason.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation || errors.Is(e.Reason, target)
}

func invalid(field string, reason error) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateCreate checks and normalizes a new task. Status defaults to To Do.
func ValidateCreate(input CreateTask) (NewTask, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return NewTask{}, err
	}

	status := StatusToDo
	if input.Status != nil {
		if status, err = ParseStatus(*input.Status); err != nil {
			return NewTask{}, err
		}
	}

	start, err := parseRequiredDate("startDate", input.StartDate)
	if err != nil {
		return NewTask{}, err
	}
	end, err := parseRequiredDate("endDate", input.EndDate)
	if err != nil {
		return NewTask{}, err
	}
	if err := CheckDateRange(start, end); err != nil {
		return NewTask{}, err
	}

	return NewTask{
		Title:       title,
		Description: validation.GetStringOrEmpty(input.Description),
		Status:      status,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

// ValidateUpdate checks and normalizes only the fields present in input.
// When both dates are present their order is checked here; a one-sided
// change must be checked against the stored task by the caller.
func ValidateUpdate(input UpdateTask) (TaskPatch, error) {
	var patch TaskPatch

	if input.Title != nil {
		title, err := normalizeTitle(*input.Title)
		if err != nil {
			return TaskPatch{}, err
		}
		patch.Title = &title
	}

	if input.Description != nil {
		desc := *input.Description
		patch.Description = &desc
	}

	if input.Status != nil {
		status, err := ParseStatus(*input.Status)
		if err != nil {
			return TaskPatch{}, err
		}
		patch.Status = &status
	}

	if input.StartDate != nil {
		start, err := parseRequiredDate("startDate", *input.StartDate)
		if err != nil {
			return TaskPatch{}, err
		}
		patch.StartDate = &start
	}

	if input.EndDate != nil {
		end, err := parseRequiredDate("endDate", *input.EndDate)
		if err != nil {
			return TaskPatch{}, err
		}
		patch.EndDate = &end
	}

	if patch.StartDate != nil && patch.EndDate != nil {
		if err := CheckDateRange(*patch.StartDate, *patch.EndDate); err != nil {
			return TaskPatch{}, err
		}
	}

	return patch, nil
}

// ParseStatus accepts only the exact status literals.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", invalid("status", ErrInvalidStatus)
	}
	return status, nil
}

// CheckDateRange rejects a start after the end. Equal instants are allowed.
func CheckDateRange(start, end time.Time) error {
	if start.After(end) {
		return invalid("startDate", ErrInvalidDateRange)
	}
	return nil
}

func normalizeTitle(s string) (string, error) {
	title := strings.TrimSpace(s)
	if title == "" {
		return "", invalid("title", ErrEmptyTitle)
	}
	return title, nil
}

func parseRequiredDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, invalid(field, ErrMissingDate)
	}
	t, err := validation.ParseISODate(s)
	if err != nil {
		return time.Time{}, invalid(field, ErrInvalidDate)
	}
	return t, nil
}
