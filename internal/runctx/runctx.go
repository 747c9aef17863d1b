// Package runctx shares data between steps of one test scenario. Stores
// are keyed by an explicit execution-context identifier supplied by the
// runner, never by implicit thread or goroutine identity, so the runtime
// decides what one "execution" is.
package runctx

import "sync"

// Store holds per-context key/value data. Safe for concurrent use across
// contexts; within one context, steps run sequentially by construction.
type Store struct {
	mu   sync.Mutex
	data map[string]map[string]any
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: map[string]map[string]any{}}
}

// Set stores value under key for contextID.
func (s *Store) Set(contextID, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.data[contextID]
	if !ok {
		ctx = map[string]any{}
		s.data[contextID] = ctx
	}
	ctx[key] = value
}

// Get retrieves the value under key for contextID. ok is false when absent.
func (s *Store) Get(contextID, key string) (value any, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, ok := s.data[contextID]
	if !ok {
		return nil, false
	}
	value, ok = ctx[key]
	return value, ok
}

// GetString retrieves a string value, returning def when absent or not a
// string.
func (s *Store) GetString(contextID, key, def string) string {
	v, ok := s.Get(contextID, key)
	if !ok {
		return def
	}
	str, ok := v.(string)
	if !ok {
		return def
	}
	return str
}

// Has reports whether key exists for contextID.
func (s *Store) Has(contextID, key string) bool {
	_, ok := s.Get(contextID, key)
	return ok
}

// Delete removes key for contextID.
func (s *Store) Delete(contextID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx, ok := s.data[contextID]; ok {
		delete(ctx, key)
	}
}

// Clear drops all data for contextID. Called by scenario teardown.
func (s *Store) Clear(contextID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, contextID)
}
