// Package usersessionsmemstore keeps sessions in process memory.
package usersessionsmemstore

import (
	"context"
	"sync"
	"time"

	"github.com/jrazmi/taskline/core/repositories"
	"github.com/jrazmi/taskline/core/repositories/usersessionsrepo"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]usersessionsrepo.UserSession
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]usersessionsrepo.UserSession),
	}
}

func (s *Store) Create(ctx context.Context, session usersessionsrepo.UserSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.TokenHash]; exists {
		return repositories.ErrDuplicate
	}
	s.sessions[session.TokenHash] = session
	return nil
}

func (s *Store) GetByTokenHash(ctx context.Context, tokenHash string) (usersessionsrepo.UserSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[tokenHash]
	if !ok {
		return usersessionsrepo.UserSession{}, repositories.ErrNotFound
	}
	return session, nil
}

func (s *Store) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, tokenHash)
	return nil
}

func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for hash, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, hash)
			n++
		}
	}
	return n, nil
}
