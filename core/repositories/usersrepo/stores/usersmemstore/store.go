// Package usersmemstore keeps users in process memory.
package usersmemstore

import (
	"context"
	"sync"

	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/usersrepo"
)

type Store struct {
	mu      sync.RWMutex
	byID    map[string]usersrepo.User
	byEmail map[string]string
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]usersrepo.User),
		byEmail: make(map[string]string),
	}
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return repositories.ErrDuplicate
	}
	if _, exists := s.byID[user.UserID]; exists {
		return repositories.ErrDuplicate
	}
	s.byID[user.UserID] = user
	s.byEmail[user.Email] = user.UserID
	return nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[userID]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return usersrepo.User{}, repositories.ErrNotFound
	}
	return s.byID[id], nil
}
