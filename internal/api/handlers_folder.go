package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/notesapp/notes-backend/internal/api/respond"
	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/services"
)

const maxUploadBytes = 10 << 20

// FolderHandler is a thin HTTP transport over FolderService.
type FolderHandler struct {
	svc   *services.FolderService
	actor *actorResolver
}

func NewFolderHandler(svc *services.FolderService, actor *actorResolver) *FolderHandler {
	return &FolderHandler{svc: svc, actor: actor}
}

// parseListParams reads sortType and dir. The bare presence of dir flips the
// order to ascending; its value does not matter.
func parseListParams(r *http.Request) (model.SortKey, bool, error) {
	key, err := model.ParseSortKey(r.URL.Query().Get("sortType"))
	if err != nil {
		return model.SortByTitle, false, err
	}
	_, ascending := r.URL.Query()["dir"]
	return key, ascending, nil
}

// Details GET /Folders/Details/{id}?sortType=&dir=
func (h *FolderHandler) Details(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	key, ascending, err := parseListParams(r)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	view, err := h.svc.GetFolderView(r.Context(), actorID, mux.Vars(r)["id"], key, ascending)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, view)
}

// Root GET /Folders/Root — entry point into the caller's tree.
func (h *FolderHandler) Root(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	root, err := h.svc.GetRoot(r.Context(), actorID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, root)
}

// List GET /Folders/List — every folder of the caller, for the move-target selector.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	folders, err := h.svc.ListFolders(r.Context(), actorID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"folders": folders, "count": len(folders)})
}

// Create POST /Folders/Create (multipart: title, parentFolderId, image)
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.WriteBadRequest(w, "invalid multipart form")
		return
	}
	req := services.CreateFolderRequest{Title: r.FormValue("title")}
	if pid := r.FormValue("parentFolderId"); pid != "" {
		req.ParentFolderID = &pid
	}
	if file, header, err := r.FormFile("image"); err == nil {
		defer func() { _ = file.Close() }()
		req.Image = file
		req.ImageName = header.Filename
	}
	folder, err := h.svc.CreateFolder(r.Context(), actorID, req)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, folder)
}

// Edit POST /Folders/Edit/{id} (multipart: title, image optional).
// Editing the root folder changes nothing and redirects back to its details.
func (h *FolderHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	folderID := mux.Vars(r)["id"]
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.WriteBadRequest(w, "invalid multipart form")
		return
	}
	req := services.UpdateFolderRequest{Title: r.FormValue("title")}
	if file, header, err := r.FormFile("image"); err == nil {
		defer func() { _ = file.Close() }()
		req.Image = file
		req.ImageName = header.Filename
	}
	folder, err := h.svc.UpdateFolder(r.Context(), actorID, folderID, req)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if folder.IsRoot {
		http.Redirect(w, r, "/Folders/Details/"+folderID, http.StatusSeeOther)
		return
	}
	respond.WriteJSON(w, http.StatusOK, folder)
}

// ConfirmDelete GET /Folders/Delete/{id}. When the delete would be refused
// the browser is sent back to the details page instead of a confirm view.
func (h *FolderHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	folderID := mux.Vars(r)["id"]
	deletable, err := h.svc.CanDelete(r.Context(), actorID, folderID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if !deletable {
		http.Redirect(w, r, "/Folders/Details/"+folderID, http.StatusSeeOther)
		return
	}
	view, err := h.svc.GetFolderView(r.Context(), actorID, folderID, model.SortByTitle, false)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, view.Folder)
}

// Delete POST /Folders/Delete/{id}. Root or non-empty folders are a 409.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	parentID, err := h.svc.DeleteFolder(r.Context(), actorID, mux.Vars(r)["id"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"parentFolderId": parentID})
}

// Image GET /Folders/Image/{id} streams the folder's cover image.
func (h *FolderHandler) Image(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	rc, name, err := h.svc.OpenImage(r.Context(), actorID, mux.Vars(r)["id"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	defer func() { _ = rc.Close() }()
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	_, _ = io.Copy(w, rc)
}
