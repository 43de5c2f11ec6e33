// Package services holds the business rules between the HTTP handlers and
// the store: validation, ownership checks and the optimistic-concurrency
// retry policy. All operations take the acting user id explicitly.
package services

import (
	"context"
	"strings"

	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

// CreateUser registers a user; the store creates the root folder in the same
// transaction.
func (s *UserService) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if strings.TrimSpace(u.UserID) == "" {
		return nil, model.NewValidationError("userId", "must not be empty")
	}
	if strings.TrimSpace(u.Email) == "" {
		return nil, model.NewValidationError("email", "must not be empty")
	}
	return s.store.Users().Create(ctx, u)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

// ownedFolder resolves a folder and verifies it belongs to the actor.
func ownedFolder(ctx context.Context, st store.Store, actorID, folderID string) (*model.Folder, error) {
	f, err := st.Folders().Get(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != actorID {
		return nil, model.NewAuthorizationError("folder", folderID)
	}
	return f, nil
}

// ownedNote resolves a note and verifies ownership through its parent folder.
func ownedNote(ctx context.Context, st store.Store, actorID, noteID string) (*model.Note, error) {
	n, err := st.Notes().Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedFolder(ctx, st, actorID, n.FolderID); err != nil {
		if model.IsAuthorizationError(err) {
			return nil, model.NewAuthorizationError("note", noteID)
		}
		return nil, err
	}
	return n, nil
}
