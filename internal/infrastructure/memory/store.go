// Package memory is the transient storage backend: mutex-guarded maps with
// the same caller-visible semantics as the Postgres backend, minus
// durability and the database's referential cascade.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/stayhub/stayhub/internal/domain/entity"
)

// Store is a generic id-keyed map with equality lookup over registered
// attributes. Attribute getters are explicit functions, not reflection.
//
// Entities are cloned at the store boundary, on the way in and on the way
// out. Callers always hold a private copy, so the load-mutate-store update
// flow never exposes a half-mutated entity to a concurrent reader; the only
// shared state is the map itself, guarded by the lock. This mirrors the
// isolation a database row gives the durable backend.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	id    func(T) string
	clone func(T) T
	attrs map[string]func(T) string
}

func NewStore[T any](id func(T) string, clone func(T) T, attrs map[string]func(T) string) *Store[T] {
	if attrs == nil {
		attrs = map[string]func(T) string{}
	}
	return &Store[T]{items: make(map[string]T), id: id, clone: clone, attrs: attrs}
}

func (s *Store[T]) Add(_ context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(e)
	if _, exists := s.items[id]; exists {
		return fmt.Errorf("id %q already present", id)
	}
	s.items[id] = s.clone(e)
	return nil
}

func (s *Store[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, entity.ErrNotFound
	}
	return s.clone(e), nil
}

func (s *Store[T]) GetAll(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, id := range s.sortedIDs() {
		out = append(out, s.clone(s.items[id]))
	}
	return out, nil
}

func (s *Store[T]) GetByAttribute(_ context.Context, attr, value string) (T, error) {
	var zero T
	get, ok := s.attrs[attr]
	if !ok {
		return zero, &entity.ValidationError{Field: attr, Reason: "is not a searchable attribute"}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sortedIDs() {
		if get(s.items[id]) == value {
			return s.clone(s.items[id]), nil
		}
	}
	return zero, entity.ErrNotFound
}

// Update swaps the stored entity for a clone of the caller's copy. The swap
// happens under the write lock, so readers see either the old or the new
// state, never a mix.
func (s *Store[T]) Update(_ context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id(e)
	if _, ok := s.items[id]; !ok {
		return entity.ErrNotFound
	}
	s.items[id] = s.clone(e)
	return nil
}

func (s *Store[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return entity.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// where returns a clone of every item matching the predicate, in id order.
func (s *Store[T]) where(match func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, id := range s.sortedIDs() {
		if match(s.items[id]) {
			out = append(out, s.clone(s.items[id]))
		}
	}
	return out
}

// sortedIDs keeps iteration order stable within one store instance.
// Callers must hold at least the read lock.
func (s *Store[T]) sortedIDs() []string {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
