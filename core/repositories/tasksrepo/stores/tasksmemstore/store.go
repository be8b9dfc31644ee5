// Package tasksmemstore keeps tasks in process memory. It backs the "memory"
// storage driver and the tests.
package tasksmemstore

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/tasksrepo"
)

// Store provides in-memory access for Task.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]tasksrepo.Task
}

// NewStore creates an empty Task store.
func NewStore() *Store {
	return &Store{
		tasks: make(map[string]tasksrepo.Task),
	}
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.TaskID]; exists {
		return repositories.ErrDuplicate
	}
	s.tasks[task.TaskID] = task
	return nil
}

func (s *Store) List(ctx context.Context, ownerID string) ([]tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]tasksrepo.Task, 0)
	for _, t := range s.tasks {
		if t.OwnerID == ownerID {
			tasks = append(tasks, t)
		}
	}

	slices.SortFunc(tasks, func(a, b tasksrepo.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.TaskID, b.TaskID)
	})
	return tasks, nil
}

func (s *Store) Get(ctx context.Context, ownerID, taskID string) (tasksrepo.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}
	return t, nil
}

func (s *Store) Update(ctx context.Context, ownerID, taskID string, patch tasksrepo.TaskPatch, updatedAt time.Time) (tasksrepo.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	t = patch.Apply(t, updatedAt)
	s.tasks[taskID] = t
	return t, nil
}

func (s *Store) Delete(ctx context.Context, ownerID, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok || t.OwnerID != ownerID {
		return repositories.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

// Len returns the number of stored tasks across all owners.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
