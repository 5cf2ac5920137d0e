package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"lideranca/internal/adapters/storage"
)

// SQLiteStore implements Store using SQLite, with in-process snapshot
// fan-out to subscribers after every write.
type SQLiteStore struct {
	db storage.SQLDB

	mu   sync.Mutex
	subs map[string][]*subscription

	// GenerateID is a variable for testability.
	GenerateID func() string
}

// NewSQLiteStore creates a new document store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{
		db:         db,
		subs:       make(map[string][]*subscription),
		GenerateID: func() string { return uuid.New().String() },
	}
}

// subscription coalesces snapshots: only the latest pending snapshot
// is delivered, but delivery order stays monotone per collection.
type subscription struct {
	onSnapshot SnapshotFunc
	onError    ErrorFunc

	mu      sync.Mutex
	pending []Document
	hasWork bool

	notify chan struct{}
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func (s *subscription) push(docs []Document) {
	s.mu.Lock()
	s.pending = docs
	s.hasWork = true
	s.mu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscription) run() {
	defer close(s.exited)
	for {
		// Checked first so a stop issued during a delivery wins over
		// any snapshot that queued up meanwhile.
		select {
		case <-s.done:
			return
		default:
		}
		select {
		case <-s.notify:
			s.mu.Lock()
			docs := s.pending
			work := s.hasWork
			s.hasWork = false
			s.mu.Unlock()
			if work {
				s.onSnapshot(docs)
			}
		case <-s.done:
			return
		}
	}
}

// stop blocks until the delivery goroutine has exited, so no
// onSnapshot call can land after stop returns.
func (s *subscription) stop() {
	s.once.Do(func() { close(s.done) })
	<-s.exited
}

// Subscribe opens a realtime subscription on one collection.
// PRE: collection is one of the known collection names
// POST: onSnapshot has received the current snapshot before Subscribe
// returns, and receives a fresh full snapshot after every subsequent
// write, until the returned unsubscribe function is called; once
// unsubscribe returns, no further onSnapshot call is in flight
func (s *SQLiteStore) Subscribe(ctx context.Context, collection string, onSnapshot SnapshotFunc, onError ErrorFunc) (func(), error) {
	docs, err := s.snapshot(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", collection, err)
	}

	// Initial snapshot is delivered synchronously so callers can read
	// their mirror as soon as Subscribe returns.
	onSnapshot(docs)

	sub := &subscription{
		onSnapshot: onSnapshot,
		onError:    onError,
		notify:     make(chan struct{}, 1),
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
	}
	go sub.run()

	s.mu.Lock()
	s.subs[collection] = append(s.subs[collection], sub)
	s.mu.Unlock()

	unsubscribe := func() {
		s.mu.Lock()
		list := s.subs[collection]
		for i, candidate := range list {
			if candidate == sub {
				s.subs[collection] = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		sub.stop()
	}
	return unsubscribe, nil
}

// Add creates a new document with a store-assigned ID.
// PRE: fields is non-nil
// POST: Document is persisted and a snapshot is pushed to subscribers
func (s *SQLiteStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := s.GenerateID()
	raw, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO document (collection, id, fields) VALUES (?, ?, ?)",
		collection, id, string(raw),
	)
	if err != nil {
		return "", err
	}

	s.publish(ctx, collection)
	return id, nil
}

// Update merges fields onto an existing document. Fields not present
// in the update are preserved.
// PRE: id is non-empty
// POST: Document is updated and a snapshot is pushed to subscribers
func (s *SQLiteStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var raw string
	row := tx.QueryRowContext(ctx,
		"SELECT fields FROM document WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("document not found: %s/%s", collection, id)
		}
		return err
	}

	existing := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &existing); err != nil {
		// A corrupt payload is replaced rather than left unwritable.
		slog.Warn("docstore_corrupt_fields", "collection", collection, "id", id, "error", err)
		existing = map[string]any{}
	}
	for k, v := range fields {
		existing[k] = v
	}

	merged, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE document SET fields = ? WHERE collection = ? AND id = ?",
		string(merged), collection, id,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.publish(ctx, collection)
	return nil
}

// Delete removes a document.
// PRE: id is non-empty
// POST: Document is removed and a snapshot is pushed to subscribers
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM document WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return err
	}
	s.publish(ctx, collection)
	return nil
}

// snapshot reads the full current document set in insertion order.
func (s *SQLiteStore) snapshot(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, fields FROM document WHERE collection = ? ORDER BY rowid",
		collection,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		fields := map[string]any{}
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			slog.Warn("docstore_corrupt_fields", "collection", collection, "id", id, "error", err)
			fields = map[string]any{}
		}
		docs = append(docs, Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

// publish pushes a fresh full snapshot to every subscriber of the
// collection. On read failure each subscriber's onError is invoked and
// the previous snapshot stays in place (stale-but-available).
func (s *SQLiteStore) publish(ctx context.Context, collection string) {
	docs, err := s.snapshot(ctx, collection)

	s.mu.Lock()
	subs := append([]*subscription(nil), s.subs[collection]...)
	s.mu.Unlock()

	for _, sub := range subs {
		if err != nil {
			if sub.onError != nil {
				sub.onError(err)
			}
			continue
		}
		sub.push(docs)
	}
}
