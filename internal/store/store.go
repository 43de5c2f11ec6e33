package store

import (
	"context"

	"github.com/notesapp/notes-backend/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite, memory).
type Store interface {
	Users() Users
	Folders() Folders
	Notes() Notes
}

type Users interface {
	// Create persists the user and their root folder in one transaction.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
}

type Folders interface {
	Create(ctx context.Context, f *model.Folder) (*model.Folder, error)
	Get(ctx context.Context, folderID string) (*model.Folder, error)
	Root(ctx context.Context, ownerID string) (*model.Folder, error)
	// Children returns the direct child folders ordered by title ascending.
	Children(ctx context.Context, folderID string) ([]*model.Folder, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Folder, error)
	CountChildren(ctx context.Context, folderID string) (int, error)
	// Update applies title/image changes. The write is guarded by f.Version;
	// a stale version yields ConflictError, a vanished row NotFoundError.
	Update(ctx context.Context, f *model.Folder) (*model.Folder, error)
	Delete(ctx context.Context, folderID string) error
}

type Notes interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	Get(ctx context.Context, noteID string) (*model.Note, error)
	// ListByFolder returns notes in stable order by the requested key,
	// ties broken by note id.
	ListByFolder(ctx context.Context, req model.ListNotesRequest) ([]*model.Note, error)
	CountByFolder(ctx context.Context, folderID string) (int, error)
	// Search matches the query case-insensitively as a substring of the
	// title across every folder owned by ownerID. Empty query matches all.
	Search(ctx context.Context, ownerID, query string) ([]*model.Note, error)
	ListFavourites(ctx context.Context, ownerID string) ([]*model.Note, error)
	// Update is version-guarded like Folders.Update.
	Update(ctx context.Context, n *model.Note) (*model.Note, error)
	Delete(ctx context.Context, noteID string) error
}
