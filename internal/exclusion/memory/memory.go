// Package memory is a process-local exclusion store for development and tests.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu  sync.Mutex
	ids map[string]map[string]struct{}
}

func New() *Store {
	return &Store{ids: make(map[string]map[string]struct{})}
}

func (s *Store) Add(_ context.Context, owner, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.ids[owner]
	if !ok {
		set = make(map[string]struct{})
		s.ids[owner] = set
	}

	if _, ok := set[id]; ok {
		return false, nil
	}

	set[id] = struct{}{}

	return true, nil
}

func (s *Store) Remove(_ context.Context, owner, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[owner][id]; !ok {
		return false, nil
	}

	delete(s.ids[owner], id)

	return true, nil
}

func (s *Store) Clear(_ context.Context, owner string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.ids[owner])
	delete(s.ids, owner)

	return n, nil
}

func (s *Store) List(_ context.Context, owner string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.ids[owner]))
	for id := range s.ids[owner] {
		ids = append(ids, id)
	}

	return ids, nil
}

func (s *Store) Contains(_ context.Context, owner, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[owner][id]

	return ok, nil
}
