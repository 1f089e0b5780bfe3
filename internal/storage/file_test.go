package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type note struct {
	ID    string   `bson:"_id,omitempty"`
	Body  string   `bson:"body"`
	Tags  []string `bson:"tags"`
	Score *float64 `bson:"score"`
}

func (n *note) SetID(id string) { n.ID = id }

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return s, dir
}

func TestFileStoreInsertAssignsSequentialIDs(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()
	notes := s.Collection("notes")

	for i, want := range []string{"1", "2", "3"} {
		n := &note{Body: "n", Tags: []string{}}
		id, err := notes.Insert(ctx, n)
		if err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
		if id != want || n.ID != want {
			t.Errorf("Insert #%d: id = %q (record %q), want %q", i, id, n.ID, want)
		}
	}
}

func TestFileStoreIsDurableAcrossInstances(t *testing.T) {
	s, dir := newTestFileStore(t)
	ctx := context.Background()

	if _, err := s.Collection("notes").Insert(ctx, &note{Body: "first", Tags: []string{"a", "b"}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	var got note
	if err := reopened.Collection("notes").FindByID(ctx, "1", &got); err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Body != "first" || len(got.Tags) != 2 || got.Tags[1] != "b" || got.Score != nil {
		t.Errorf("unexpected record: %+v", got)
	}

	id, err := reopened.Collection("notes").Insert(ctx, &note{Body: "second", Tags: []string{}})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != "2" {
		t.Errorf("id after reopen = %q, want 2", id)
	}
}

func TestFileStoreLoadAllKeepsInsertionOrder(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()
	notes := s.Collection("notes")

	var empty []note
	if err := notes.LoadAll(ctx, &empty); err != nil {
		t.Fatalf("LoadAll on missing file: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no records, got %d", len(empty))
	}

	for _, body := range []string{"a", "b", "c"} {
		if _, err := notes.Insert(ctx, &note{Body: body, Tags: []string{}}); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	var all []note
	if err := notes.LoadAll(ctx, &all); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 || all[0].Body != "a" || all[2].Body != "c" {
		t.Errorf("unexpected order: %+v", all)
	}
	if n, _ := notes.Count(ctx); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestFileStoreUpdateByID(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()
	notes := s.Collection("notes")

	if _, err := notes.Insert(ctx, &note{Body: "old", Tags: []string{}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var updated note
	err := notes.UpdateByID(ctx, "1", Document{"body": "new", "score": 2.5}, &updated)
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}
	if updated.Body != "new" || updated.Score == nil || *updated.Score != 2.5 {
		t.Errorf("unexpected post-image: %+v", updated)
	}

	var stored note
	if err := notes.FindByID(ctx, "1", &stored); err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Body != "new" {
		t.Errorf("update was not persisted: %+v", stored)
	}
}

func TestFileStoreNotFound(t *testing.T) {
	s, dir := newTestFileStore(t)
	ctx := context.Background()
	notes := s.Collection("notes")

	if _, err := notes.Insert(ctx, &note{Body: "kept", Tags: []string{}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	before, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var n note
	if err := notes.FindByID(ctx, "42", &n); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID err = %v, want ErrNotFound", err)
	}
	if err := notes.UpdateByID(ctx, "42", Document{"body": "x"}, &n); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateByID err = %v, want ErrNotFound", err)
	}
	if err := notes.FindOne(ctx, "body", "missing", &n); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindOne err = %v, want ErrNotFound", err)
	}

	after, err := os.ReadFile(filepath.Join(dir, "notes.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(before) != string(after) {
		t.Error("failed update modified the file")
	}
}

func TestFileStoreConcurrentInsertsGetUniqueIDs(t *testing.T) {
	s, _ := newTestFileStore(t)
	ctx := context.Background()
	notes := s.Collection("notes")

	const workers = 20
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := notes.Insert(ctx, &note{Body: "x", Tags: []string{}})
			if err != nil {
				t.Errorf("Insert: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
	if n, _ := notes.Count(ctx); n != workers {
		t.Errorf("Count = %d, want %d", n, workers)
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	s, dir := newTestFileStore(t)
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	var all []note
	if err := s.Collection("notes").LoadAll(context.Background(), &all); err == nil {
		t.Fatal("expected parse error")
	}
}
