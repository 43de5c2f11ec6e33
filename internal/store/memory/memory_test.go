package memory

import (
	"testing"

	"github.com/notesapp/notes-backend/internal/store"
	"github.com/notesapp/notes-backend/internal/store/storetest"
)

func TestMemoryStore_Compliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}
