package images

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/notesapp/notes-backend/internal/model"
)

type fsStore struct {
	baseDir string
}

// NewFSStore creates a filesystem-backed image store rooted at baseDir.
func NewFSStore(baseDir string) (Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &fsStore{baseDir: baseDir}, nil
}

func (s *fsStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := uuid.New().String() + safeExt(originalName)
	f, err := os.OpenFile(filepath.Join(s.baseDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

func (s *fsStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !validName(name) {
		return nil, model.NewNotFoundError("image", name)
	}
	f, err := os.Open(filepath.Join(s.baseDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.NewNotFoundError("image", name)
		}
		return nil, err
	}
	return f, nil
}

func (s *fsStore) Remove(ctx context.Context, name string) error {
	if !validName(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// safeExt keeps the original extension but never path fragments.
func safeExt(originalName string) string {
	ext := filepath.Ext(filepath.Base(originalName))
	if strings.ContainsAny(ext, "/\\") || len(ext) > 10 {
		return ""
	}
	return strings.ToLower(ext)
}

// validName rejects anything that could escape baseDir. Stored names are
// always uuid+ext, so a bare base name is the only legal shape.
func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.HasPrefix(name, ".")
}
