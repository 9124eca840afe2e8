package transaction

import (
	"context"
	"fmt"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=transaction
type Source interface {
	// Fetch returns settled transactions dated within [start, end], newest first.
	Fetch(ctx context.Context, start, end time.Time) ([]*Transaction, error)
}

type rangeKey struct {
	start string
	end   string
}

type cacheEntry struct {
	txs       []*Transaction
	fetchedAt time.Time
}

// Service fronts a Source with a short-lived per-range cache so that re-rendering a
// page does not hit the upstream API every time. Refresh drops the cache.
type Service struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[rangeKey]cacheEntry
}

func NewService(source Source, ttl time.Duration) *Service {
	return &Service{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[rangeKey]cacheEntry),
	}
}

// List returns the transactions dated within [start, end]. Results are served from
// the cache while younger than the configured TTL; a zero TTL disables caching.
func (s *Service) List(ctx context.Context, start, end time.Time) ([]*Transaction, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, nil
	}

	key := rangeKey{start: start.Format(time.DateOnly), end: end.Format(time.DateOnly)}

	if txs, ok := s.cached(key); ok {
		return txs, nil
	}

	txs, err := s.source.Fetch(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions %s..%s: %w", key.start, key.end, err)
	}

	if s.ttl > 0 {
		s.store(key, txs)
	}

	return txs, nil
}

// store records txs under key and drops every other expired range, so ranges
// that are never asked for again do not pile up.
func (s *Service) store(key rangeKey, txs []*Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.cache {
		if now.Sub(e.fetchedAt) >= s.ttl {
			delete(s.cache, k)
		}
	}

	s.cache[key] = cacheEntry{txs: txs, fetchedAt: now}
}

func (s *Service) cached(key rangeKey) ([]*Transaction, bool) {
	if s.ttl <= 0 {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.cache[key]
	if !ok {
		return nil, false
	}

	if s.now().Sub(entry.fetchedAt) >= s.ttl {
		delete(s.cache, key)
		return nil, false
	}

	return entry.txs, true
}

// Refresh forces the next List call for every range to go back to the source.
// It returns the number of cached ranges dropped.
func (s *Service) Refresh() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.cache)
	s.cache = make(map[rangeKey]cacheEntry)

	return n
}
