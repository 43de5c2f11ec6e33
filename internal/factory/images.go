package factory

import (
	"github.com/rs/zerolog"

	"github.com/notesapp/notes-backend/internal/config"
	"github.com/notesapp/notes-backend/internal/images"
)

// NewImageStore returns the folder image store. The memory DB driver pairs
// with an in-memory image store so nothing touches the filesystem.
func NewImageStore(cfg *config.Config, log zerolog.Logger) (images.Store, error) {
	if cfg.DBDriver == "memory" {
		return images.NewMemStore(), nil
	}
	st, err := images.NewFSStore(cfg.ImageDir)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", cfg.ImageDir).Msg("image store ready")
	return st, nil
}
