package services

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/notesapp/notes-backend/internal/images"
	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

type FolderService struct {
	store  store.Store
	images images.Store
}

func NewFolderService(s store.Store, img images.Store) *FolderService {
	return &FolderService{store: s, images: img}
}

// CreateFolderRequest carries the multipart form fields of the create page.
// ParentFolderID nil means the actor's root folder.
type CreateFolderRequest struct {
	Title          string
	ParentFolderID *string
	ImageName      string
	Image          io.Reader
}

// CreateFolder stores the cover image first and removes it again if the
// folder row fails to commit.
func (s *FolderService) CreateFolder(ctx context.Context, actorID string, req CreateFolderRequest) (*model.Folder, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.NewValidationError("title", "must not be empty")
	}
	if req.Image == nil {
		return nil, model.NewValidationError("image", "an image file is required")
	}

	parentID := req.ParentFolderID
	if parentID == nil {
		root, err := s.store.Folders().Root(ctx, actorID)
		if err != nil {
			return nil, err
		}
		parentID = &root.FolderID
	} else if _, err := ownedFolder(ctx, s.store, actorID, *parentID); err != nil {
		return nil, err
	}

	imageName, err := s.images.Save(ctx, req.ImageName, req.Image)
	if err != nil {
		return nil, err
	}

	folder, err := s.store.Folders().Create(ctx, &model.Folder{
		OwnerID:        actorID,
		ParentFolderID: parentID,
		Title:          title,
		ImageName:      imageName,
	})
	if err != nil {
		if rmErr := s.images.Remove(ctx, imageName); rmErr != nil {
			log.Warn().Err(rmErr).Str("image", imageName).Msg("orphan image left behind after failed folder create")
		}
		return nil, err
	}
	return folder, nil
}

// GetFolderView returns the folder, its child folders (title ascending) and
// its notes in the requested order.
func (s *FolderService) GetFolderView(ctx context.Context, actorID, folderID string, sortKey model.SortKey, ascending bool) (*model.FolderView, error) {
	folder, err := ownedFolder(ctx, s.store, actorID, folderID)
	if err != nil {
		return nil, err
	}
	children, err := s.store.Folders().Children(ctx, folderID)
	if err != nil {
		return nil, err
	}
	notes, err := s.store.Notes().ListByFolder(ctx, model.ListNotesRequest{FolderID: folderID, SortKey: sortKey, Ascending: ascending})
	if err != nil {
		return nil, err
	}
	return &model.FolderView{Folder: folder, ChildFolders: children, Notes: notes}, nil
}

// GetRoot returns the actor's root folder.
func (s *FolderService) GetRoot(ctx context.Context, actorID string) (*model.Folder, error) {
	return s.store.Folders().Root(ctx, actorID)
}

// ListFolders returns every folder the actor owns; the edit page uses it as
// the move-target selector.
func (s *FolderService) ListFolders(ctx context.Context, actorID string) ([]*model.Folder, error) {
	if _, err := s.store.Users().Get(ctx, actorID); err != nil {
		return nil, err
	}
	return s.store.Folders().ListByOwner(ctx, actorID)
}

// UpdateFolderRequest carries the edit form. A nil Image keeps the current one.
type UpdateFolderRequest struct {
	Title     string
	ImageName string
	Image     io.Reader
}

// UpdateFolder renames a folder and optionally replaces its image. Editing
// the root folder is a silent no-op. A concurrent edit is retried once
// against the reloaded version.
func (s *FolderService) UpdateFolder(ctx context.Context, actorID, folderID string, req UpdateFolderRequest) (*model.Folder, error) {
	folder, err := ownedFolder(ctx, s.store, actorID, folderID)
	if err != nil {
		return nil, err
	}
	if folder.IsRoot {
		return folder, nil
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.NewValidationError("title", "must not be empty")
	}

	newImage := ""
	if req.Image != nil {
		newImage, err = s.images.Save(ctx, req.ImageName, req.Image)
		if err != nil {
			return nil, err
		}
	}

	oldImage := folder.ImageName
	apply := func(f *model.Folder) *model.Folder {
		c := *f
		c.Title = title
		if newImage != "" {
			c.ImageName = newImage
		}
		return &c
	}

	updated, err := s.store.Folders().Update(ctx, apply(folder))
	if model.IsConflictError(err) {
		if folder, err = ownedFolder(ctx, s.store, actorID, folderID); err == nil {
			oldImage = folder.ImageName
			updated, err = s.store.Folders().Update(ctx, apply(folder))
		}
	}
	if err != nil {
		if newImage != "" {
			_ = s.images.Remove(ctx, newImage)
		}
		return nil, err
	}
	if newImage != "" && oldImage != "" && oldImage != newImage {
		if rmErr := s.images.Remove(ctx, oldImage); rmErr != nil {
			log.Warn().Err(rmErr).Str("image", oldImage).Msg("could not remove replaced folder image")
		}
	}
	return updated, nil
}

// DeleteFolder removes an empty non-root folder together with its stored
// image and returns the former parent id for the redirect.
func (s *FolderService) DeleteFolder(ctx context.Context, actorID, folderID string) (string, error) {
	folder, err := ownedFolder(ctx, s.store, actorID, folderID)
	if err != nil {
		return "", err
	}
	if folder.IsRoot {
		return "", model.NewStructuralError(folderID, "the root folder cannot be deleted")
	}
	if err := s.store.Folders().Delete(ctx, folderID); err != nil {
		return "", err
	}
	if folder.ImageName != "" {
		if rmErr := s.images.Remove(ctx, folder.ImageName); rmErr != nil {
			log.Warn().Err(rmErr).Str("image", folder.ImageName).Msg("could not remove image of deleted folder")
		}
	}
	parentID := ""
	if folder.ParentFolderID != nil {
		parentID = *folder.ParentFolderID
	}
	return parentID, nil
}

// CanDelete reports whether a delete would succeed, without mutating
// anything. The confirm page uses it to redirect instead of rendering.
func (s *FolderService) CanDelete(ctx context.Context, actorID, folderID string) (bool, error) {
	folder, err := ownedFolder(ctx, s.store, actorID, folderID)
	if err != nil {
		return false, err
	}
	if folder.IsRoot {
		return false, nil
	}
	if n, err := s.store.Folders().CountChildren(ctx, folderID); err != nil || n > 0 {
		return false, err
	}
	if n, err := s.store.Notes().CountByFolder(ctx, folderID); err != nil || n > 0 {
		return false, err
	}
	return true, nil
}

// OpenImage streams a folder's cover image after an ownership check.
func (s *FolderService) OpenImage(ctx context.Context, actorID, folderID string) (io.ReadCloser, string, error) {
	folder, err := ownedFolder(ctx, s.store, actorID, folderID)
	if err != nil {
		return nil, "", err
	}
	if folder.ImageName == "" {
		return nil, "", model.NewNotFoundError("image for folder", folderID)
	}
	rc, err := s.images.Open(ctx, folder.ImageName)
	if err != nil {
		return nil, "", err
	}
	return rc, folder.ImageName, nil
}
