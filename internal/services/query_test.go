package services

import (
	"context"
	"testing"

	"github.com/notesapp/notes-backend/internal/model"
)

func TestQueryService_ListByFolderDefaultsTitleDescending(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.mustUser(t, "alice")
	root, _ := fx.folders.GetRoot(ctx, "alice")

	for _, title := range []string{"banana", "apple", "cherry"} {
		if _, err := fx.notes.CreateNote(ctx, "alice", NoteInput{FolderID: root.FolderID, Title: title}); err != nil {
			t.Fatalf("CreateNote(%s): %v", title, err)
		}
	}

	lst, err := fx.queries.ListByFolder(ctx, "alice", root.FolderID, model.SortByTitle, false)
	if err != nil {
		t.Fatalf("ListByFolder: %v", err)
	}
	want := []string{"cherry", "banana", "apple"}
	for i, w := range want {
		if lst[i].Title != w {
			t.Fatalf("order[%d]: got %s want %s (full: %v)", i, lst[i].Title, w, titles(lst))
		}
	}

	lst, err = fx.queries.ListByFolder(ctx, "alice", root.FolderID, model.SortByTitle, true)
	if err != nil {
		t.Fatalf("ListByFolder asc: %v", err)
	}
	if lst[0].Title != "apple" || lst[2].Title != "cherry" {
		t.Fatalf("ascending order wrong: %v", titles(lst))
	}
}

func TestQueryService_SearchAll(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.mustUser(t, "alice")
	fx.mustUser(t, "bob")
	root, _ := fx.folders.GetRoot(ctx, "alice")
	sub := fx.mustFolder(t, "alice", "Sub", nil)
	bobRoot, _ := fx.folders.GetRoot(ctx, "bob")

	mustNote := func(actor, folderID, title string) {
		t.Helper()
		if _, err := fx.notes.CreateNote(ctx, actor, NoteInput{FolderID: folderID, Title: title}); err != nil {
			t.Fatalf("CreateNote(%s): %v", title, err)
		}
	}
	mustNote("alice", root.FolderID, "Shopping")
	mustNote("alice", sub.FolderID, "shop ideas")
	mustNote("alice", sub.FolderID, "Taxes")
	mustNote("bob", bobRoot.FolderID, "shopping too")

	hits, err := fx.queries.SearchAll(ctx, "alice", "SHOP")
	if err != nil {
		t.Fatalf("SearchAll: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("search should span folders but stay within the owner: %v", titles(hits))
	}

	hits, err = fx.queries.SearchAll(ctx, "alice", "")
	if err != nil || len(hits) != 3 {
		t.Fatalf("empty query should match all: n=%d err=%v", len(hits), err)
	}

	if _, err := fx.queries.SearchAll(ctx, "nobody", "x"); !model.IsNotFoundError(err) {
		t.Fatalf("unknown actor: want NotFoundError, got %v", err)
	}
}

func TestQueryService_ListFavourites(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)
	fx.mustUser(t, "alice")
	root, _ := fx.folders.GetRoot(ctx, "alice")
	sub := fx.mustFolder(t, "alice", "Sub", nil)

	if _, err := fx.notes.CreateNote(ctx, "alice", NoteInput{FolderID: root.FolderID, Title: "fav1", IsFavourite: true}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if _, err := fx.notes.CreateNote(ctx, "alice", NoteInput{FolderID: sub.FolderID, Title: "fav2", IsFavourite: true}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if _, err := fx.notes.CreateNote(ctx, "alice", NoteInput{FolderID: root.FolderID, Title: "plain"}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	favs, err := fx.queries.ListFavourites(ctx, "alice")
	if err != nil {
		t.Fatalf("ListFavourites: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("favourites: %v", titles(favs))
	}
}

func titles(notes []*model.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
