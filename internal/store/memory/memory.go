// Package memory provides a map-backed store used by unit tests and the
// "memory" DB driver. All methods copy entities in and out so callers never
// alias internal state.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store"
)

type memStore struct {
	mu      sync.RWMutex
	users   map[string]*model.User
	folders map[string]*model.Folder
	notes   map[string]*model.Note
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{
		users:   make(map[string]*model.User),
		folders: make(map[string]*model.Folder),
		notes:   make(map[string]*model.Note),
	}
}

func (s *memStore) Users() store.Users     { return &users{s} }
func (s *memStore) Folders() store.Folders { return &folders{s} }
func (s *memStore) Notes() store.Notes     { return &notes{s} }

// HealthPing implements health.HealthPinger; the in-memory store is always up.
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

// --- Users ---

type users struct{ p *memStore }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	u.p.mu.Lock()
	defer u.p.mu.Unlock()

	if _, exists := u.p.users[m.UserID]; exists {
		return nil, model.NewValidationError("userId", "user id or email already registered")
	}
	for _, other := range u.p.users {
		if other.Email == m.Email {
			return nil, model.NewValidationError("email", "user id or email already registered")
		}
	}
	out := *m
	if out.CreationTime.IsZero() {
		out.CreationTime = time.Now().UTC()
	}
	u.p.users[out.UserID] = &out

	// Root folder is born with the user.
	root := &model.Folder{
		FolderID:     uuid.New().String(),
		OwnerID:      out.UserID,
		Title:        "Root",
		IsRoot:       true,
		Version:      1,
		CreationTime: out.CreationTime,
	}
	u.p.folders[root.FolderID] = root

	res := out
	return &res, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	u.p.mu.RLock()
	defer u.p.mu.RUnlock()

	m, ok := u.p.users[userID]
	if !ok {
		return nil, model.NewNotFoundError("user", userID)
	}
	out := *m
	return &out, nil
}

// --- Folders ---

type folders struct{ p *memStore }

func (f *folders) Create(ctx context.Context, in *model.Folder) (*model.Folder, error) {
	f.p.mu.Lock()
	defer f.p.mu.Unlock()

	if _, ok := f.p.users[in.OwnerID]; !ok {
		return nil, model.NewNotFoundError("user", in.OwnerID)
	}
	if in.ParentFolderID != nil {
		if _, ok := f.p.folders[*in.ParentFolderID]; !ok {
			return nil, model.NewNotFoundError("folder", *in.ParentFolderID)
		}
	}
	if in.IsRoot {
		for _, other := range f.p.folders {
			if other.OwnerID == in.OwnerID && other.IsRoot {
				return nil, fmt.Errorf("root folder already exists for user %s", in.OwnerID)
			}
		}
	}

	out := *in
	if out.FolderID == "" {
		out.FolderID = uuid.New().String()
	}
	out.Version = 1
	if out.CreationTime.IsZero() {
		out.CreationTime = time.Now().UTC()
	}
	f.p.folders[out.FolderID] = &out

	res := out
	return &res, nil
}

func (f *folders) Get(ctx context.Context, folderID string) (*model.Folder, error) {
	f.p.mu.RLock()
	defer f.p.mu.RUnlock()
	return f.getLocked(folderID)
}

func (f *folders) getLocked(folderID string) (*model.Folder, error) {
	m, ok := f.p.folders[folderID]
	if !ok {
		return nil, model.NewNotFoundError("folder", folderID)
	}
	out := *m
	return &out, nil
}

func (f *folders) Root(ctx context.Context, ownerID string) (*model.Folder, error) {
	f.p.mu.RLock()
	defer f.p.mu.RUnlock()

	for _, m := range f.p.folders {
		if m.OwnerID == ownerID && m.IsRoot {
			out := *m
			return &out, nil
		}
	}
	return nil, model.NewNotFoundError("root folder for user", ownerID)
}

func (f *folders) Children(ctx context.Context, folderID string) ([]*model.Folder, error) {
	f.p.mu.RLock()
	defer f.p.mu.RUnlock()

	var out []*model.Folder
	for _, m := range f.p.folders {
		if m.ParentFolderID != nil && *m.ParentFolderID == folderID {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].FolderID < out[j].FolderID
	})
	return out, nil
}

func (f *folders) ListByOwner(ctx context.Context, ownerID string) ([]*model.Folder, error) {
	f.p.mu.RLock()
	defer f.p.mu.RUnlock()

	var out []*model.Folder
	for _, m := range f.p.folders {
		if m.OwnerID == ownerID {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].FolderID < out[j].FolderID
	})
	return out, nil
}

func (f *folders) CountChildren(ctx context.Context, folderID string) (int, error) {
	f.p.mu.RLock()
	defer f.p.mu.RUnlock()

	n := 0
	for _, m := range f.p.folders {
		if m.ParentFolderID != nil && *m.ParentFolderID == folderID {
			n++
		}
	}
	return n, nil
}

func (f *folders) Update(ctx context.Context, in *model.Folder) (*model.Folder, error) {
	f.p.mu.Lock()
	defer f.p.mu.Unlock()

	cur, ok := f.p.folders[in.FolderID]
	if !ok {
		return nil, model.NewNotFoundError("folder", in.FolderID)
	}
	if cur.Version != in.Version {
		return nil, model.NewConflictError("folder", in.FolderID)
	}

	out := *cur
	out.Title = in.Title
	out.ImageName = in.ImageName
	out.Version = cur.Version + 1
	f.p.folders[out.FolderID] = &out

	res := out
	return &res, nil
}

func (f *folders) Delete(ctx context.Context, folderID string) error {
	f.p.mu.Lock()
	defer f.p.mu.Unlock()

	if _, ok := f.p.folders[folderID]; !ok {
		return model.NewNotFoundError("folder", folderID)
	}
	// Mirror the FK constraints of the SQL adapters.
	for _, m := range f.p.folders {
		if m.ParentFolderID != nil && *m.ParentFolderID == folderID {
			return model.NewStructuralError(folderID, "folder has child folders")
		}
	}
	for _, n := range f.p.notes {
		if n.FolderID == folderID {
			return model.NewStructuralError(folderID, "folder has notes")
		}
	}
	delete(f.p.folders, folderID)
	return nil
}

// --- Notes ---

type notes struct{ p *memStore }

func (n *notes) Create(ctx context.Context, in *model.Note) (*model.Note, error) {
	n.p.mu.Lock()
	defer n.p.mu.Unlock()

	if _, ok := n.p.folders[in.FolderID]; !ok {
		return nil, model.NewNotFoundError("folder", in.FolderID)
	}

	out := *in
	if out.NoteID == "" {
		out.NoteID = uuid.New().String()
	}
	out.Version = 1
	now := time.Now().UTC()
	if out.CreationTime.IsZero() {
		out.CreationTime = now
	}
	if out.EditTime.IsZero() {
		out.EditTime = out.CreationTime
	}
	n.p.notes[out.NoteID] = &out

	res := out
	return &res, nil
}

func (n *notes) Get(ctx context.Context, noteID string) (*model.Note, error) {
	n.p.mu.RLock()
	defer n.p.mu.RUnlock()

	m, ok := n.p.notes[noteID]
	if !ok {
		return nil, model.NewNotFoundError("note", noteID)
	}
	out := *m
	return &out, nil
}

func (n *notes) ListByFolder(ctx context.Context, req model.ListNotesRequest) ([]*model.Note, error) {
	n.p.mu.RLock()
	defer n.p.mu.RUnlock()

	var out []*model.Note
	for _, m := range n.p.notes {
		if m.FolderID == req.FolderID {
			c := *m
			out = append(out, &c)
		}
	}
	sortNotes(out, req.SortKey, req.Ascending)
	return out, nil
}

func (n *notes) CountByFolder(ctx context.Context, folderID string) (int, error) {
	n.p.mu.RLock()
	defer n.p.mu.RUnlock()

	count := 0
	for _, m := range n.p.notes {
		if m.FolderID == folderID {
			count++
		}
	}
	return count, nil
}

func (n *notes) Search(ctx context.Context, ownerID, query string) ([]*model.Note, error) {
	n.p.mu.RLock()
	defer n.p.mu.RUnlock()

	q := strings.ToUpper(query)
	var out []*model.Note
	for _, m := range n.p.notes {
		folder, ok := n.p.folders[m.FolderID]
		if !ok || folder.OwnerID != ownerID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToUpper(m.Title), q) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sortByCreation(out)
	return out, nil
}

func (n *notes) ListFavourites(ctx context.Context, ownerID string) ([]*model.Note, error) {
	n.p.mu.RLock()
	defer n.p.mu.RUnlock()

	var out []*model.Note
	for _, m := range n.p.notes {
		if !m.IsFavourite {
			continue
		}
		folder, ok := n.p.folders[m.FolderID]
		if !ok || folder.OwnerID != ownerID {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	sortByCreation(out)
	return out, nil
}

func (n *notes) Update(ctx context.Context, in *model.Note) (*model.Note, error) {
	n.p.mu.Lock()
	defer n.p.mu.Unlock()

	cur, ok := n.p.notes[in.NoteID]
	if !ok {
		return nil, model.NewNotFoundError("note", in.NoteID)
	}
	if cur.Version != in.Version {
		return nil, model.NewConflictError("note", in.NoteID)
	}
	if _, ok := n.p.folders[in.FolderID]; !ok {
		return nil, model.NewNotFoundError("folder", in.FolderID)
	}

	out := *in
	out.CreationTime = cur.CreationTime
	out.Version = cur.Version + 1
	n.p.notes[out.NoteID] = &out

	res := out
	return &res, nil
}

func (n *notes) Delete(ctx context.Context, noteID string) error {
	n.p.mu.Lock()
	defer n.p.mu.Unlock()

	if _, ok := n.p.notes[noteID]; !ok {
		return model.NewNotFoundError("note", noteID)
	}
	delete(n.p.notes, noteID)
	return nil
}

// sortNotes orders notes by the requested key; ties always fall back to note
// id ascending so the order matches the SQL adapters exactly.
func sortNotes(list []*model.Note, key model.SortKey, ascending bool) {
	cmp := func(i, j *model.Note) int {
		switch key {
		case model.SortByPriority:
			if i.Priority != j.Priority {
				if i.Priority < j.Priority {
					return -1
				}
				return 1
			}
		case model.SortByDate:
			if !i.CreationTime.Equal(j.CreationTime) {
				if i.CreationTime.Before(j.CreationTime) {
					return -1
				}
				return 1
			}
		default:
			if i.Title != j.Title {
				if i.Title < j.Title {
					return -1
				}
				return 1
			}
		}
		return 0
	}
	sort.SliceStable(list, func(i, j int) bool {
		c := cmp(list[i], list[j])
		if c == 0 {
			return list[i].NoteID < list[j].NoteID
		}
		if ascending {
			return c < 0
		}
		return c > 0
	})
}

func sortByCreation(list []*model.Note) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreationTime.Equal(list[j].CreationTime) {
			return list[i].CreationTime.Before(list[j].CreationTime)
		}
		return list[i].NoteID < list[j].NoteID
	})
}
