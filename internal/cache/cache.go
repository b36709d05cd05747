// Package cache holds the in-memory entity lists the console works against.
// Lists are read-through mirrors of the backend with no durability: a
// restart discards and refetches them.
package cache

import (
	"sort"
	"sync"
)

// List is an ordered in-memory collection of one entity kind. All methods
// are safe for concurrent use; a user mutation and a poll tick may
// interleave, with the last write winning.
type List[T any] struct {
	mu    sync.Mutex
	id    func(T) string
	less  func(a, b T) bool
	items []T
}

// NewList creates a list keyed by the given id accessor
func NewList[T any](id func(T) string) *List[T] {
	return &List[T]{id: id}
}

// SetSort installs a comparator that is reapplied after every replace or
// mutation, not just on initial load
func (l *List[T]) SetSort(less func(a, b T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.less = less
	l.resort()
}

// resort must be called with the lock held
func (l *List[T]) resort() {
	if l.less == nil {
		return
	}
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.less(l.items[i], l.items[j])
	})
}

// Replace swaps the whole collection for a freshly fetched list
func (l *List[T]) Replace(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = make([]T, len(items))
	copy(l.items, items)
	l.resort()
}

// Items returns a copy of the current collection in order
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]T, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of cached entities
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Find looks an entity up by id
func (l *List[T]) Find(id string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, item := range l.items {
		if l.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Upsert replaces the entity with the same id, or appends when absent
func (l *List[T]) Upsert(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.items {
		if l.id(existing) == l.id(item) {
			l.items[i] = item
			l.resort()
			return
		}
	}
	l.items = append(l.items, item)
	l.resort()
}

// Remove deletes the entity with the given id; reports whether it was present
func (l *List[T]) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, item := range l.items {
		if l.id(item) == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot captures the collection for a later point-in-time Restore
func (l *List[T]) Snapshot() []T {
	return l.Items()
}

// Restore rolls the collection back to a snapshot exactly
func (l *List[T]) Restore(snapshot []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = make([]T, len(snapshot))
	copy(l.items, snapshot)
}

// Selection tracks which entity a detail view is bound to
type Selection[T any] struct {
	mu sync.Mutex
	id string
}

// Select binds the selection to the given entity id
func (s *Selection[T]) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}

// Clear empties the selection
func (s *Selection[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = ""
}

// ID returns the selected entity id, empty when nothing is selected
func (s *Selection[T]) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Rebind re-resolves the selection against a refreshed list. When the id is
// still present the refreshed entity is returned; when it disappeared the
// selection is cleared and ok is false.
func (s *Selection[T]) Rebind(list *List[T]) (T, bool) {
	s.mu.Lock()
	id := s.id
	s.mu.Unlock()

	var zero T
	if id == "" {
		return zero, false
	}

	item, ok := list.Find(id)
	if !ok {
		s.Clear()
		return zero, false
	}
	return item, true
}
