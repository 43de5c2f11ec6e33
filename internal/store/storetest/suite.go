package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()
	email := userID + "@example.test"

	// Users: creating a user also creates their root folder.
	if _, err := s.Users().Create(ctx, &model.User{UserID: userID, Email: email}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if got, err := s.Users().Get(ctx, userID); err != nil || got == nil || got.UserID != userID {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "no-such-user"); !model.IsNotFoundError(err) {
		t.Fatalf("GetUser missing: want NotFoundError, got %v", err)
	}
	if _, err := s.Users().Create(ctx, &model.User{UserID: userID, Email: email}); !model.IsValidationError(err) {
		t.Fatalf("CreateUser duplicate: want ValidationError, got %v", err)
	}

	root, err := s.Folders().Root(ctx, userID)
	if err != nil {
		t.Fatalf("Root: %v", err)
	}
	if !root.IsRoot || root.Title != "Root" || root.Version != 1 {
		t.Fatalf("Root: unexpected folder %+v", root)
	}

	// Folders
	f, err := s.Folders().Create(ctx, &model.Folder{OwnerID: userID, ParentFolderID: &root.FolderID, Title: "Work"})
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if f.FolderID == "" || f.Version != 1 {
		t.Fatalf("CreateFolder: bad result %+v", f)
	}
	if got, err := s.Folders().Get(ctx, f.FolderID); err != nil || got.Title != "Work" {
		t.Fatalf("GetFolder: got=%v err=%v", got, err)
	}
	missingParent := uuid.New().String()
	if _, err := s.Folders().Create(ctx, &model.Folder{OwnerID: userID, ParentFolderID: &missingParent, Title: "orphan"}); !model.IsNotFoundError(err) {
		t.Fatalf("CreateFolder missing parent: want NotFoundError, got %v", err)
	}

	kids, err := s.Folders().Children(ctx, root.FolderID)
	if err != nil || len(kids) != 1 || kids[0].FolderID != f.FolderID {
		t.Fatalf("Children: n=%d err=%v", len(kids), err)
	}
	if n, err := s.Folders().CountChildren(ctx, root.FolderID); err != nil || n != 1 {
		t.Fatalf("CountChildren: n=%d err=%v", n, err)
	}
	if all, err := s.Folders().ListByOwner(ctx, userID); err != nil || len(all) != 2 {
		t.Fatalf("ListByOwner: n=%d err=%v", len(all), err)
	}

	// Version-guarded folder update.
	f.Title = "Work renamed"
	updated, err := s.Folders().Update(ctx, f)
	if err != nil {
		t.Fatalf("UpdateFolder: %v", err)
	}
	if updated.Version != f.Version+1 || updated.Title != "Work renamed" {
		t.Fatalf("UpdateFolder: bad result %+v", updated)
	}
	stale := *f // still carries the old version
	stale.Title = "stale write"
	if _, err := s.Folders().Update(ctx, &stale); !model.IsConflictError(err) {
		t.Fatalf("UpdateFolder stale: want ConflictError, got %v", err)
	}

	// Notes
	n1, err := s.Notes().Create(ctx, &model.Note{FolderID: updated.FolderID, Title: "bbb", Text: "second", Priority: model.PriorityHigh})
	if err != nil {
		t.Fatalf("CreateNote n1: %v", err)
	}
	time.Sleep(5 * time.Millisecond) // keep creation times distinct for date sort
	n2, err := s.Notes().Create(ctx, &model.Note{FolderID: updated.FolderID, Title: "aaa", Text: "first", Priority: model.PriorityCritical, IsFavourite: true})
	if err != nil {
		t.Fatalf("CreateNote n2: %v", err)
	}
	if _, err := s.Notes().Create(ctx, &model.Note{FolderID: uuid.New().String(), Title: "x", Text: "y"}); !model.IsNotFoundError(err) {
		t.Fatalf("CreateNote missing folder: want NotFoundError, got %v", err)
	}

	if got, err := s.Notes().Get(ctx, n1.NoteID); err != nil || got.Title != "bbb" {
		t.Fatalf("GetNote: got=%v err=%v", got, err)
	}

	// Sorting: title descending is the default ordering.
	lst, err := s.Notes().ListByFolder(ctx, model.ListNotesRequest{FolderID: updated.FolderID, SortKey: model.SortByTitle})
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListByFolder: n=%d err=%v", len(lst), err)
	}
	if lst[0].NoteID != n1.NoteID || lst[1].NoteID != n2.NoteID {
		t.Fatalf("ListByFolder title desc: got %s,%s", lst[0].Title, lst[1].Title)
	}
	lst, err = s.Notes().ListByFolder(ctx, model.ListNotesRequest{FolderID: updated.FolderID, SortKey: model.SortByTitle, Ascending: true})
	if err != nil || len(lst) != 2 || lst[0].NoteID != n2.NoteID {
		t.Fatalf("ListByFolder title asc: n=%d err=%v", len(lst), err)
	}
	lst, err = s.Notes().ListByFolder(ctx, model.ListNotesRequest{FolderID: updated.FolderID, SortKey: model.SortByPriority, Ascending: true})
	if err != nil || len(lst) != 2 || lst[0].NoteID != n1.NoteID {
		t.Fatalf("ListByFolder priority asc: n=%d err=%v", len(lst), err)
	}
	lst, err = s.Notes().ListByFolder(ctx, model.ListNotesRequest{FolderID: updated.FolderID, SortKey: model.SortByDate, Ascending: true})
	if err != nil || len(lst) != 2 || lst[0].NoteID != n1.NoteID {
		t.Fatalf("ListByFolder date asc: n=%d err=%v", len(lst), err)
	}
	if n, err := s.Notes().CountByFolder(ctx, updated.FolderID); err != nil || n != 2 {
		t.Fatalf("CountByFolder: n=%d err=%v", n, err)
	}

	// Search is a case-insensitive substring match on the title.
	hits, err := s.Notes().Search(ctx, userID, "BB")
	if err != nil || len(hits) != 1 || hits[0].NoteID != n1.NoteID {
		t.Fatalf("Search: n=%d err=%v", len(hits), err)
	}
	if hits, err = s.Notes().Search(ctx, userID, ""); err != nil || len(hits) != 2 {
		t.Fatalf("Search empty query: n=%d err=%v", len(hits), err)
	}
	if hits, err = s.Notes().Search(ctx, "other-user", "bb"); err != nil || len(hits) != 0 {
		t.Fatalf("Search wrong owner: n=%d err=%v", len(hits), err)
	}
	// LIKE metacharacters in the query are literal text, not wildcards.
	if hits, err = s.Notes().Search(ctx, userID, "%"); err != nil || len(hits) != 0 {
		t.Fatalf("Search %%: n=%d err=%v", len(hits), err)
	}
	if hits, err = s.Notes().Search(ctx, userID, "b_b"); err != nil || len(hits) != 0 {
		t.Fatalf("Search b_b: n=%d err=%v", len(hits), err)
	}
	pct, err := s.Notes().Create(ctx, &model.Note{FolderID: updated.FolderID, Title: "50% done", Text: "almost"})
	if err != nil {
		t.Fatalf("CreateNote pct: %v", err)
	}
	if hits, err = s.Notes().Search(ctx, userID, "50%"); err != nil || len(hits) != 1 || hits[0].NoteID != pct.NoteID {
		t.Fatalf("Search literal %%: n=%d err=%v", len(hits), err)
	}
	if err := s.Notes().Delete(ctx, pct.NoteID); err != nil {
		t.Fatalf("DeleteNote pct: %v", err)
	}

	// Favourites
	favs, err := s.Notes().ListFavourites(ctx, userID)
	if err != nil || len(favs) != 1 || favs[0].NoteID != n2.NoteID {
		t.Fatalf("ListFavourites: n=%d err=%v", len(favs), err)
	}

	// Version-guarded note update.
	n1.Text = "second, edited"
	n1.EditTime = time.Now().UTC()
	un1, err := s.Notes().Update(ctx, n1)
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if un1.Version != n1.Version+1 || un1.Text != "second, edited" {
		t.Fatalf("UpdateNote: bad result %+v", un1)
	}
	staleNote := *n1
	if _, err := s.Notes().Update(ctx, &staleNote); !model.IsConflictError(err) {
		t.Fatalf("UpdateNote stale: want ConflictError, got %v", err)
	}

	// A folder with notes or child folders refuses deletion.
	if err := s.Folders().Delete(ctx, updated.FolderID); !model.IsStructuralError(err) {
		t.Fatalf("DeleteFolder non-empty: want StructuralError, got %v", err)
	}
	if err := s.Folders().Delete(ctx, root.FolderID); !model.IsStructuralError(err) {
		t.Fatalf("DeleteFolder root with children: want StructuralError, got %v", err)
	}

	// Delete notes, then the folder goes away cleanly.
	if err := s.Notes().Delete(ctx, n1.NoteID); err != nil {
		t.Fatalf("DeleteNote n1: %v", err)
	}
	if err := s.Notes().Delete(ctx, n2.NoteID); err != nil {
		t.Fatalf("DeleteNote n2: %v", err)
	}
	if err := s.Notes().Delete(ctx, n2.NoteID); !model.IsNotFoundError(err) {
		t.Fatalf("DeleteNote twice: want NotFoundError, got %v", err)
	}
	if err := s.Folders().Delete(ctx, updated.FolderID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}
	if _, err := s.Folders().Get(ctx, updated.FolderID); !model.IsNotFoundError(err) {
		t.Fatalf("GetFolder after delete: want NotFoundError, got %v", err)
	}
}
