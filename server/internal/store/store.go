package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tenpin/tenpin/pkg/types"
)

// Entry is a scored game together with the time it was stored.
type Entry struct {
	Game     *types.ScoredGame
	StoredAt time.Time
}

// Store is a thread-safe in-memory game store, keyed by game ID.
// A background goroutine (Run) periodically drops games older than the TTL.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// SetTTL changes the retention period. It takes effect on the next List or
// Evict; the Run ticker keeps its original interval.
func (s *Store) SetTTL(ttl time.Duration) {
	s.mu.Lock()
	s.ttl = ttl
	s.mu.Unlock()
}

// TTL returns the current retention period.
func (s *Store) TTL() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ttl
}

// Add stores g unless a game with the same ID is already held, in which case
// the held entry is returned with false. Stale entries that have not been
// evicted still count as held. Callers must not modify g after calling Add.
func (s *Store) Add(g *types.ScoredGame) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.data[g.ID]; ok {
		return e, false
	}
	e := &Entry{Game: g, StoredAt: s.now()}
	s.data[g.ID] = e
	return e, true
}

// Get returns the Entry for id and whether one was found. The entry may be
// past its TTL if it has not been evicted yet.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[id]
	return e, ok
}

// List returns the live entries, most recently stored first.
// Entries past the TTL that have not yet been evicted are excluded.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.StoredAt.After(cutoff) {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StoredAt.Equal(out[j].StoredAt) {
			return out[i].Game.ID < out[j].Game.ID
		}
		return out[i].StoredAt.After(out[j].StoredAt)
	})
	return out
}

// Count returns the number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries stored at or before now minus TTL and returns how
// many were removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, e := range s.data {
		if !e.StoredAt.After(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Run evicts expired games at half the TTL (minimum 1 second) until ctx is
// cancelled.
func (s *Store) Run(ctx context.Context) {
	s.mu.RLock()
	interval := s.ttl / 2
	s.mu.RUnlock()
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted expired games", "count", n)
			}
		}
	}
}
