package images

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/notesapp/notes-backend/internal/model"
)

type memImageStore struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemStore returns an in-memory image store for tests and the memory driver.
func NewMemStore() Store {
	return &memImageStore{files: make(map[string][]byte)}
}

func (s *memImageStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	name := uuid.New().String() + filepath.Ext(originalName)
	s.mu.Lock()
	s.files[name] = data
	s.mu.Unlock()
	return name, nil
}

func (s *memImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.files[name]
	s.mu.RUnlock()
	if !ok {
		return nil, model.NewNotFoundError("image", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memImageStore) Remove(ctx context.Context, name string) error {
	s.mu.Lock()
	delete(s.files, name)
	s.mu.Unlock()
	return nil
}
