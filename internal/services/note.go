package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

type NoteService struct {
	store store.Store
}

func NewNoteService(s store.Store) *NoteService {
	return &NoteService{store: s}
}

// NoteInput carries the create/edit form fields shared by both operations.
type NoteInput struct {
	FolderID    string
	Title       string
	Text        string
	Priority    model.Priority
	IsFavourite bool
}

func validateNoteInput(in NoteInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.NewValidationError("title", "must not be empty")
	}
	// Bounds are in characters, not bytes.
	if utf8.RuneCountInString(title) > model.MaxNoteTitleLen {
		return model.NewValidationError("title", fmt.Sprintf("must be at most %d characters", model.MaxNoteTitleLen))
	}
	if utf8.RuneCountInString(in.Text) > model.MaxNoteTextLen {
		return model.NewValidationError("text", fmt.Sprintf("must be at most %d characters", model.MaxNoteTextLen))
	}
	if !in.Priority.Valid() {
		return model.NewValidationError("priority", fmt.Sprintf("unknown priority %d", in.Priority))
	}
	return nil
}

func (s *NoteService) CreateNote(ctx context.Context, actorID string, in NoteInput) (*model.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return nil, err
	}
	if _, err := ownedFolder(ctx, s.store, actorID, in.FolderID); err != nil {
		return nil, err
	}
	return s.store.Notes().Create(ctx, &model.Note{
		FolderID:    in.FolderID,
		Title:       strings.TrimSpace(in.Title),
		Text:        in.Text,
		Priority:    in.Priority,
		IsFavourite: in.IsFavourite,
	})
}

func (s *NoteService) GetNote(ctx context.Context, actorID, noteID string) (*model.Note, error) {
	return ownedNote(ctx, s.store, actorID, noteID)
}

// UpdateNote applies the edit form. The note may move to another folder the
// actor owns; EditTime is refreshed, CreationTime never changes. A version
// conflict is retried once against the reloaded note.
func (s *NoteService) UpdateNote(ctx context.Context, actorID, noteID string, in NoteInput) (*model.Note, error) {
	if err := validateNoteInput(in); err != nil {
		return nil, err
	}
	note, err := ownedNote(ctx, s.store, actorID, noteID)
	if err != nil {
		return nil, err
	}
	if in.FolderID != note.FolderID {
		if _, err := ownedFolder(ctx, s.store, actorID, in.FolderID); err != nil {
			return nil, err
		}
	}

	apply := func(n *model.Note) *model.Note {
		c := *n
		c.FolderID = in.FolderID
		c.Title = strings.TrimSpace(in.Title)
		c.Text = in.Text
		c.Priority = in.Priority
		c.IsFavourite = in.IsFavourite
		c.EditTime = time.Now().UTC()
		return &c
	}

	updated, err := s.store.Notes().Update(ctx, apply(note))
	if model.IsConflictError(err) {
		if note, err = ownedNote(ctx, s.store, actorID, noteID); err == nil {
			updated, err = s.store.Notes().Update(ctx, apply(note))
		}
	}
	return updated, err
}

// DeleteNote removes the note and returns its folder id for the redirect.
func (s *NoteService) DeleteNote(ctx context.Context, actorID, noteID string) (string, error) {
	note, err := ownedNote(ctx, s.store, actorID, noteID)
	if err != nil {
		return "", err
	}
	if err := s.store.Notes().Delete(ctx, noteID); err != nil {
		return "", err
	}
	return note.FolderID, nil
}
