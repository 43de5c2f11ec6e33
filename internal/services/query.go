package services

import (
	"context"

	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

// QueryService answers the read-side listing operations: folder listings,
// title search and favourites.
type QueryService struct {
	store store.Store
}

func NewQueryService(s store.Store) *QueryService {
	return &QueryService{store: s}
}

// ListByFolder returns the notes of an owned folder in stable order.
// Default is title descending; ties always break by note id.
func (s *QueryService) ListByFolder(ctx context.Context, actorID, folderID string, sortKey model.SortKey, ascending bool) ([]*model.Note, error) {
	if _, err := ownedFolder(ctx, s.store, actorID, folderID); err != nil {
		return nil, err
	}
	return s.store.Notes().ListByFolder(ctx, model.ListNotesRequest{FolderID: folderID, SortKey: sortKey, Ascending: ascending})
}

// SearchAll matches the query case-insensitively against note titles across
// every folder the actor owns. An empty query returns all notes.
func (s *QueryService) SearchAll(ctx context.Context, actorID, query string) ([]*model.Note, error) {
	if _, err := s.store.Users().Get(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.Notes().Search(ctx, actorID, query)
}

// ListFavourites returns the actor's favourite notes across all folders.
func (s *QueryService) ListFavourites(ctx context.Context, actorID string) ([]*model.Note, error) {
	if _, err := s.store.Users().Get(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.Notes().ListFavourites(ctx, actorID)
}
