package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// FileStore keeps each collection as a JSON array in <dir>/<name>.json.
// Every call reads the file and every mutation rewrites it before returning,
// so the file is the only copy of the data.
type FileStore struct {
	dir string

	mu          sync.Mutex
	collections map[string]*fileCollection
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{
		dir:         dir,
		collections: make(map[string]*fileCollection),
	}, nil
}

func (s *FileStore) Collection(name string) Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[name]
	if !ok {
		c = &fileCollection{path: filepath.Join(s.dir, name+".json")}
		s.collections[name] = c
	}
	return c
}

// Ping checks that the data directory is still usable.
func (s *FileStore) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

type fileCollection struct {
	path string
	mu   sync.Mutex
}

func (c *fileCollection) LoadAll(ctx context.Context, out interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return err
	}
	return decodeDocuments(docs, out)
}

func (c *fileCollection) Insert(ctx context.Context, record Record) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return "", err
	}

	id := strconv.Itoa(nextID(docs))
	record.SetID(id)

	doc, err := toDocument(record)
	if err != nil {
		return "", err
	}
	docs = append(docs, doc)

	if err := c.write(docs); err != nil {
		return "", err
	}
	return id, nil
}

func (c *fileCollection) FindByID(ctx context.Context, id string, out interface{}) error {
	return c.FindOne(ctx, "_id", id, out)
}

func (c *fileCollection) FindOne(ctx context.Context, field string, value interface{}, out interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if doc[field] == value {
			return decodeDocument(doc, out)
		}
	}
	return ErrNotFound
}

func (c *fileCollection) UpdateByID(ctx context.Context, id string, patch Document, out interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if doc["_id"] != id {
			continue
		}
		for k, v := range patch {
			doc[k] = v
		}
		if err := c.write(docs); err != nil {
			return err
		}
		if out == nil {
			return nil
		}
		return decodeDocument(doc, out)
	}
	return ErrNotFound
}

func (c *fileCollection) Count(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	docs, err := c.read()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// read returns the collection contents. A missing or empty file is an empty
// collection.
func (c *fileCollection) read() ([]Document, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	if len(data) == 0 {
		return []Document{}, nil
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	return docs, nil
}

// write replaces the file atomically and syncs it before returning.
func (c *fileCollection) write(docs []Document) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

// nextID is one past the largest numeric id in the collection. Records are
// never deleted, so ids are never reused.
func nextID(docs []Document) int {
	maxID := 0
	for _, doc := range docs {
		s, ok := doc["_id"].(string)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil && n > maxID {
			maxID = n
		}
	}
	return maxID + 1
}
