// Package cache provides a small in-process key-value store with per-entry
// TTL. It is an injected dependency with an explicit lifecycle rather than a
// module-level singleton, so callers (and tests) control when it is created
// and cleared.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value  interface{}
	expiry time.Time
}

// Store is a TTL cache safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a Store with the given default TTL.
func New(defaultTTL time.Duration) *Store {
	return &Store{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// NewWithClock creates a Store whose notion of time comes from the provided
// function. Tests use this to simulate expiry without real waits.
func NewWithClock(defaultTTL time.Duration, now func() time.Time) *Store {
	s := New(defaultTTL)
	s.now = now
	return s
}

// Get returns the cached value for key, or nil and false if it is absent or
// expired. Expired entries are removed on access.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiry) {
		delete(s.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the store's default TTL.
func (s *Store) Set(key string, value interface{}) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL stores value under key, expiring after ttl.
func (s *Store) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, expiry: s.now().Add(ttl)}
}

// Delete removes key from the store.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear removes all entries. Tests call this between runs.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}
