// Package seed populates a fresh local database with demo content so the
// service is explorable right after startup.
package seed

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

// DemoData creates the demo user (if missing) with a "Today's notes" folder
// holding a few notes. Idempotent: a second run is a no-op.
func DemoData(ctx context.Context, st store.Store, userID string, log zerolog.Logger) error {
	if _, err := st.Users().Get(ctx, userID); err != nil {
		if !model.IsNotFoundError(err) {
			return err
		}
		if _, err := st.Users().Create(ctx, &model.User{UserID: userID, Email: userID + "@example.test"}); err != nil {
			return err
		}
		log.Info().Str("user", userID).Msg("demo user created")
	}

	root, err := st.Folders().Root(ctx, userID)
	if err != nil {
		return err
	}
	children, err := st.Folders().Children(ctx, root.FolderID)
	if err != nil {
		return err
	}
	for _, c := range children {
		if c.Title == "Today's notes" {
			return nil
		}
	}

	folder, err := st.Folders().Create(ctx, &model.Folder{
		OwnerID:        userID,
		ParentFolderID: &root.FolderID,
		Title:          "Today's notes",
	})
	if err != nil {
		return err
	}

	demo := []*model.Note{
		{FolderID: folder.FolderID, Title: "Do HW", Text: "Finish homework", Priority: model.PriorityCritical},
		{FolderID: folder.FolderID, Title: "Do chores", Text: "Vacuum the carpet", Priority: model.PriorityHigh},
		{FolderID: folder.FolderID, Title: "Walk the dog", Text: "Walk the dog at 18:00", Priority: model.PriorityCritical},
	}
	for _, n := range demo {
		if _, err := st.Notes().Create(ctx, n); err != nil {
			return err
		}
	}
	log.Info().Str("folder", folder.FolderID).Int("notes", len(demo)).Msg("demo data seeded")
	return nil
}
