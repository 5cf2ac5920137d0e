package docstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"lideranca/internal/adapters/storage"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return db
}

// waitSnapshot blocks until a snapshot satisfying ok arrives.
func waitSnapshot(t *testing.T, ch <-chan []Document, ok func([]Document) bool) []Document {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case docs := <-ch:
			if ok(docs) {
				return docs
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	db := testDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	if _, err := store.Add(ctx, CollectionMembers, map[string]any{"name": "Ana"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	ch := make(chan []Document, 8)
	unsub, err := store.Subscribe(ctx, CollectionMembers, func(docs []Document) { ch <- docs }, nil)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	docs := waitSnapshot(t, ch, func(d []Document) bool { return len(d) == 1 })
	if got := docs[0].Fields["name"]; got != "Ana" {
		t.Errorf("name = %v, want Ana", got)
	}
}

func TestWritesPushFullSnapshots(t *testing.T) {
	db := testDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	ch := make(chan []Document, 8)
	unsub, err := store.Subscribe(ctx, CollectionCells, func(docs []Document) { ch <- docs }, nil)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	waitSnapshot(t, ch, func(d []Document) bool { return len(d) == 0 })

	first, err := store.Add(ctx, CollectionCells, map[string]any{"name": "Cell A"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Add(ctx, CollectionCells, map[string]any{"name": "Cell B"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	docs := waitSnapshot(t, ch, func(d []Document) bool { return len(d) == 2 })
	// Insertion order is preserved across snapshots.
	if docs[0].ID != first {
		t.Errorf("first doc = %s, want %s", docs[0].ID, first)
	}

	if err := store.Delete(ctx, CollectionCells, first); err != nil {
		t.Fatalf("delete: %v", err)
	}
	docs = waitSnapshot(t, ch, func(d []Document) bool { return len(d) == 1 })
	if got := docs[0].Fields["name"]; got != "Cell B" {
		t.Errorf("remaining doc = %v, want Cell B", got)
	}
}

func TestUpdateMergesPartialFields(t *testing.T) {
	db := testDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	id, err := store.Add(ctx, CollectionStudies, map[string]any{
		"title":   "Fé",
		"pdfUrl":  "/estudos/pdf/abc",
		"pdfName": "fe.pdf",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	// Update only the title; untouched fields must survive.
	if err := store.Update(ctx, CollectionStudies, id, map[string]any{"title": "Fé e Obras"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	ch := make(chan []Document, 8)
	unsub, err := store.Subscribe(ctx, CollectionStudies, func(docs []Document) { ch <- docs }, nil)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	docs := waitSnapshot(t, ch, func(d []Document) bool { return len(d) == 1 })
	if got := docs[0].Fields["title"]; got != "Fé e Obras" {
		t.Errorf("title = %v, want Fé e Obras", got)
	}
	if got := docs[0].Fields["pdfUrl"]; got != "/estudos/pdf/abc" {
		t.Errorf("pdfUrl = %v, want /estudos/pdf/abc", got)
	}
	if got := docs[0].Fields["pdfName"]; got != "fe.pdf" {
		t.Errorf("pdfName = %v, want fe.pdf", got)
	}
}

func TestUpdateMissingDocumentFails(t *testing.T) {
	db := testDB(t)
	store := NewSQLiteStore(db)

	err := store.Update(context.Background(), CollectionTracks, "missing", map[string]any{"title": "x"})
	if err == nil {
		t.Fatal("expected error updating missing document")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	db := testDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	ch := make(chan []Document, 8)
	unsub, err := store.Subscribe(ctx, CollectionLeaders, func(docs []Document) { ch <- docs }, nil)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	waitSnapshot(t, ch, func(d []Document) bool { return len(d) == 0 })
	unsub()

	if _, err := store.Add(ctx, CollectionLeaders, map[string]any{"name": "João"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	select {
	case docs := <-ch:
		if len(docs) != 0 {
			t.Errorf("received snapshot after unsubscribe: %v", docs)
		}
	case <-time.After(200 * time.Millisecond):
	}
}

func TestUnsubscribeWaitsForInFlightDelivery(t *testing.T) {
	db := testDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	var calls atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	unsub, err := store.Subscribe(ctx, CollectionMembers, func(docs []Document) {
		// The first call is the synchronous initial snapshot; the
		// second is the write below, which we hold open.
		if calls.Add(1) == 2 {
			close(entered)
			<-release
		}
	}, nil)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if _, err := store.Add(ctx, CollectionMembers, map[string]any{"name": "Ana"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	<-entered

	done := make(chan struct{})
	go func() {
		unsub()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("unsubscribe returned while a delivery was still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("unsubscribe did not return after the delivery finished")
	}
}
