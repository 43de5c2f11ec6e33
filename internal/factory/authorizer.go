package factory

import (
	"github.com/rs/zerolog"

	"github.com/notesapp/notes-backend/internal/auth"
	"github.com/notesapp/notes-backend/internal/config"
)

// NewAuthorizer picks the authorizer: configured API keys when present,
// otherwise the hardcoded local development key.
func NewAuthorizer(cfg *config.Config, log zerolog.Logger) auth.Authorizer {
	if cfg.IsDevMode() {
		log.Warn().Msg("no API keys configured; accepting the local development key only")
		return auth.NewMockAuthorizer()
	}
	return auth.NewStaticAuthorizer(cfg.APIKeys)
}
