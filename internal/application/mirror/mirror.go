// Package mirror keeps local, read-only copies of the remote
// collections. Each mirror is rebuilt wholesale from every snapshot
// its subscription delivers; nothing else ever mutates it.
package mirror

import (
	"sync"

	"lideranca/internal/adapters/storage/docstore"
)

// Decoder turns one raw document into a typed record. Decoders never
// fail: missing or mistyped fields fall back to zero values.
type Decoder[T any] func(doc docstore.Document) T

// Mirror holds the typed image of one collection.
// INVARIANT: after Replace(docs) returns, Snapshot() reflects exactly
// docs, in order
type Mirror[T any] struct {
	mu     sync.RWMutex
	items  []T
	decode Decoder[T]
}

// New creates an empty mirror with the given decoder.
func New[T any](decode Decoder[T]) *Mirror[T] {
	return &Mirror[T]{decode: decode}
}

// Replace rebuilds the mirror from a full snapshot.
func (m *Mirror[T]) Replace(docs []docstore.Document) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		items = append(items, m.decode(doc))
	}
	m.mu.Lock()
	m.items = items
	m.mu.Unlock()
}

// Snapshot returns a copy of the current records.
func (m *Mirror[T]) Snapshot() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, len(m.items))
	copy(out, m.items)
	return out
}

// Len returns the current record count.
func (m *Mirror[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Reset empties the mirror.
func (m *Mirror[T]) Reset() {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
}
