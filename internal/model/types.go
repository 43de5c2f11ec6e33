package model

import "time"

// User represents an account in the system. Accounts are created by the
// external identity provider on signup; the root folder is created in the
// same transaction.
type User struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"displayName,omitempty"`
	CreationTime time.Time `json:"creationTime"`
}

// Folder is a node in a user's folder tree. Children are derived by querying
// parent_folder_id; folders never hold back-references.
type Folder struct {
	FolderID       string    `json:"folderId"`
	OwnerID        string    `json:"ownerId"`
	ParentFolderID *string   `json:"parentFolderId,omitempty"`
	Title          string    `json:"title"`
	ImageName      string    `json:"imageName"`
	IsRoot         bool      `json:"isRoot"`
	Version        int64     `json:"version"`
	CreationTime   time.Time `json:"creationTime"`
}

// Note lives inside exactly one folder and is owned by that folder's owner.
type Note struct {
	NoteID       string    `json:"noteId"`
	FolderID     string    `json:"folderId"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	IsFavourite  bool      `json:"isFavourite"`
	Priority     Priority  `json:"priority"`
	Version      int64     `json:"version"`
	CreationTime time.Time `json:"creationTime"`
	EditTime     time.Time `json:"editTime"`
}

// Field length bounds enforced before persistence.
const (
	MaxNoteTitleLen = 15
	MaxNoteTextLen  = 200
)

// FolderView is the aggregate returned for the folder details page: the
// folder itself, its child folders (title ascending) and its notes in the
// requested order.
type FolderView struct {
	Folder       *Folder   `json:"folder"`
	ChildFolders []*Folder `json:"childFolders"`
	Notes        []*Note   `json:"notes"`
}

// ListNotesRequest captures the folder listing parameters.
type ListNotesRequest struct {
	FolderID  string
	SortKey   SortKey
	Ascending bool
}
