// Package factory builds the configured adapters: store, image store and
// authorizer. run.go is its only caller.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/notesapp/notes-backend/internal/config"
	storepkg "github.com/notesapp/notes-backend/internal/store"
	storemem "github.com/notesapp/notes-backend/internal/store/memory"
	storepg "github.com/notesapp/notes-backend/internal/store/postgres"
	storesqlite "github.com/notesapp/notes-backend/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		// Schema application is bounded so a hung database fails startup
		// instead of blocking forever.
		schemaCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.BootstrapTimeoutSeconds)*time.Second)
		defer cancel()
		if err := storepg.EnsureSchema(schemaCtx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Msg("store schema ensured")
		return storepg.NewWithDB(db), nil

	case "sqlite":
		st, err := storesqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("sqlite store opened")
		return st, nil

	case "memory":
		log.Warn().Msg("memory store selected; data will not survive restarts")
		return storemem.New(), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
