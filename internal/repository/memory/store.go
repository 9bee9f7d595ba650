// Package memory provides in-memory repository implementations.
// Suitable for tests and single-node development; data does not survive
// a restart. All repositories created from one Store share a single
// mutex, which also backs the store's TxManager.
package memory

import (
	"context"
	"sync"
)

// Store is the shared state behind the in-memory repositories.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]*accountRecord
	listings  map[string]*listingRecord
	amenities map[string]*amenityRecord
	reviews   map[string]*reviewRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*accountRecord),
		listings:  make(map[string]*listingRecord),
		amenities: make(map[string]*amenityRecord),
		reviews:   make(map[string]*reviewRecord),
	}
}

// TxManager returns a transaction manager that serializes mutations
// through the store mutex. With a single in-process writer this gives
// the same all-or-nothing visibility the SQL backends get from real
// transactions, as long as fn does not fail halfway - callers keep
// validation ahead of mutation, so a failing fn has written nothing.
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

// TxManager implements repository.TxManager for the in-memory store.
type TxManager struct {
	store *Store
}

type txKey struct{}

// WithTx runs fn while holding the store's write lock. Nested calls
// reuse the outer transaction.
func (t *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

// inTx reports whether ctx already holds the store lock.
func inTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// rlock acquires the read lock unless ctx already holds the write lock.
func (s *Store) rlock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// lock acquires the write lock unless ctx already holds it.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
