package tasksrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo/stores/tasksmemstore"
	"github.com/jrazmi/taskline/sdk/logger"
	"github.com/jrazmi/taskline/sdk/validation"
)

const (
	ownerU = "5f1c1b7a-0d65-4a53-9d7c-2f3b4f0a1111"
	ownerV = "5f1c1b7a-0d65-4a53-9d7c-2f3b4f0a2222"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newRepo(t *testing.T) (*tasksrepo.Repository, *tasksmemstore.Store) {
	t.Helper()
	store := tasksmemstore.NewStore()
	c := &clock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	repo := tasksrepo.NewRepository(logger.NewDiscard(), store, tasksrepo.WithClock(c.now))
	return repo, store
}

func mustCreate(t *testing.T, repo *tasksrepo.Repository, owner, title, start, end string) tasksrepo.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), owner, tasksrepo.CreateTask{
		Title:     title,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("Create(%q) error = %v", title, err)
	}
	return task
}

func TestCreateStampsOwnerAndDefaults(t *testing.T) {
	repo, _ := newRepo(t)

	task := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")

	if task.OwnerID != ownerU {
		t.Errorf("Expected owner %s, got %s", ownerU, task.OwnerID)
	}
	if task.Status != tasksrepo.StatusToDo {
		t.Errorf("Expected status To Do, got %q", task.Status)
	}
	if _, err := uuid.Parse(task.TaskID); err != nil {
		t.Errorf("Expected a UUID task id, got %q", task.TaskID)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("Expected createdAt == updatedAt on create, got %s and %s", task.CreatedAt, task.UpdatedAt)
	}
}

func TestCreateInvalidLeavesStoreUnchanged(t *testing.T) {
	repo, store := newRepo(t)

	_, err := repo.Create(context.Background(), ownerU, tasksrepo.CreateTask{
		Title:     "",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-05",
	})
	if !errors.Is(err, tasksrepo.ErrValidation) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Expected no stored tasks, got %d", store.Len())
	}
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	task := mustCreate(t, repo, ownerU, "Private", "2024-01-01", "2024-01-05")

	list, err := repo.List(ctx, ownerV)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected V to see no tasks, got %d", len(list))
	}

	if _, err := repo.Get(ctx, ownerV, task.TaskID); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Get by non-owner: expected ErrNotFound, got %v", err)
	}

	_, err = repo.Update(ctx, ownerV, task.TaskID, tasksrepo.UpdateTask{Title: validation.StringPtr("Stolen")})
	if !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Update by non-owner: expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, ownerV, task.TaskID); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Delete by non-owner: expected ErrNotFound, got %v", err)
	}

	got, err := repo.Get(ctx, ownerU, task.TaskID)
	if err != nil {
		t.Fatalf("Get by owner error = %v", err)
	}
	if got.Title != "Private" || !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Errorf("Expected task untouched, got %+v", got)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 stored task, got %d", store.Len())
	}
}

func TestUpdateStatusOnly(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	task := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")

	updated, err := repo.Update(ctx, ownerU, task.TaskID, tasksrepo.UpdateTask{Status: validation.StringPtr("Done")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Status != tasksrepo.StatusDone {
		t.Errorf("Expected status Done, got %q", updated.Status)
	}
	if updated.Title != task.Title || !updated.StartDate.Equal(task.StartDate) || !updated.EndDate.Equal(task.EndDate) {
		t.Errorf("Expected other fields unchanged, got %+v", updated)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Errorf("Expected updatedAt to advance, got %s then %s", task.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(task.CreatedAt) {
		t.Errorf("Expected createdAt unchanged")
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	task := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")

	_, err := repo.Update(ctx, ownerU, task.TaskID, tasksrepo.UpdateTask{Status: validation.StringPtr("Archived")})
	if !errors.Is(err, tasksrepo.ErrInvalidStatus) {
		t.Fatalf("Expected ErrInvalidStatus, got %v", err)
	}

	got, _ := repo.Get(ctx, ownerU, task.TaskID)
	if got.Status != tasksrepo.StatusToDo {
		t.Errorf("Expected stored status unchanged, got %q", got.Status)
	}
}

func TestUpdateRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	task := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")

	_, err := repo.Update(ctx, ownerU, task.TaskID, tasksrepo.UpdateTask{Title: validation.StringPtr("  ")})
	if !errors.Is(err, tasksrepo.ErrEmptyTitle) {
		t.Fatalf("Expected ErrEmptyTitle, got %v", err)
	}

	got, err := repo.Get(ctx, ownerU, task.TaskID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "A" {
		t.Errorf("Expected stored title unchanged, got %q", got.Title)
	}
	if !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Errorf("Expected UpdatedAt unchanged, got %s want %s", got.UpdatedAt, task.UpdatedAt)
	}
}

func TestUpdateOneSidedDateChecksStoredRange(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	task := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")

	_, err := repo.Update(ctx, ownerU, task.TaskID, tasksrepo.UpdateTask{StartDate: validation.StringPtr("2024-01-09")})
	if !errors.Is(err, tasksrepo.ErrInvalidDateRange) {
		t.Fatalf("Expected ErrInvalidDateRange, got %v", err)
	}

	updated, err := repo.Update(ctx, ownerU, task.TaskID, tasksrepo.UpdateTask{EndDate: validation.StringPtr("2024-01-20")})
	if err != nil {
		t.Fatalf("Update(endDate) error = %v", err)
	}
	if !updated.EndDate.Equal(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected end date %s", updated.EndDate)
	}
}

func TestUpdateEmptyReturnsCurrent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	task := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")

	got, err := repo.Update(ctx, ownerU, task.TaskID, tasksrepo.UpdateTask{})
	if err != nil {
		t.Fatalf("Update(empty) error = %v", err)
	}
	if !got.UpdatedAt.Equal(task.UpdatedAt) {
		t.Errorf("Expected no write for an empty update")
	}
}

func TestDeleteThenGet(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	task := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")

	if err := repo.Delete(ctx, ownerU, task.TaskID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, ownerU, task.TaskID); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, ownerU, task.TaskID); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Expected second delete to be ErrNotFound, got %v", err)
	}
}

func TestListIsStableAndScoped(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	a := mustCreate(t, repo, ownerU, "A", "2024-01-01", "2024-01-05")
	b := mustCreate(t, repo, ownerU, "B", "2024-01-03", "2024-01-10")
	mustCreate(t, repo, ownerV, "C", "2024-01-01", "2024-01-02")

	first, err := repo.List(ctx, ownerU)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	second, _ := repo.List(ctx, ownerU)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("Expected 2 tasks for U, got %d and %d", len(first), len(second))
	}
	if first[0].TaskID != a.TaskID || first[1].TaskID != b.TaskID {
		t.Errorf("Expected creation order [A, B], got [%s, %s]", first[0].Title, first[1].Title)
	}
	for i := range first {
		if first[i].TaskID != second[i].TaskID {
			t.Errorf("Expected repeated list to match at %d", i)
		}
	}
}

func TestMalformedTaskIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	if _, err := repo.Get(ctx, ownerU, "not-a-uuid"); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, ownerU, ""); !errors.Is(err, tasksrepo.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for empty id, got %v", err)
	}
}

func TestMissingOwner(t *testing.T) {
	repo, _ := newRepo(t)

	if _, err := repo.List(context.Background(), ""); !errors.Is(err, tasksrepo.ErrMissingOwner) {
		t.Errorf("Expected ErrMissingOwner, got %v", err)
	}
}
