package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/notesapp/notes-backend/internal/api/respond"
	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/services"
)

// NoteHandler is a thin HTTP transport over NoteService and QueryService.
type NoteHandler struct {
	notes   *services.NoteService
	queries *services.QueryService
	actor   *actorResolver
}

func NewNoteHandler(notes *services.NoteService, queries *services.QueryService, actor *actorResolver) *NoteHandler {
	return &NoteHandler{notes: notes, queries: queries, actor: actor}
}

func parseNoteInput(r *http.Request) (services.NoteInput, error) {
	priority, err := model.ParsePriority(r.PostFormValue("priority"))
	if err != nil {
		return services.NoteInput{}, err
	}
	return services.NoteInput{
		FolderID:    r.PostFormValue("folderId"),
		Title:       r.PostFormValue("title"),
		Text:        r.PostFormValue("text"),
		Priority:    priority,
		IsFavourite: parseCheckbox(r.PostFormValue("isFavourite")),
	}, nil
}

// parseCheckbox accepts the usual HTML checkbox spellings.
func parseCheckbox(v string) bool {
	switch v {
	case "on", "true", "1":
		return true
	}
	return false
}

// Details GET /Notes/Details/{id}
func (h *NoteHandler) Details(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	note, err := h.notes.GetNote(r.Context(), actorID, mux.Vars(r)["id"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, note)
}

// Create POST /Notes/Create (form: folderId, title, text, priority, isFavourite)
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	in, err := parseNoteInput(r)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	note, err := h.notes.CreateNote(r.Context(), actorID, in)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, note)
}

// Edit POST /Notes/Edit/{id}
func (h *NoteHandler) Edit(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	in, err := parseNoteInput(r)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	note, err := h.notes.UpdateNote(r.Context(), actorID, mux.Vars(r)["id"], in)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, note)
}

// ConfirmDelete GET /Notes/Delete/{id} returns the note for the confirm page.
func (h *NoteHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	note, err := h.notes.GetNote(r.Context(), actorID, mux.Vars(r)["id"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, note)
}

// Delete POST /Notes/Delete/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	folderID, err := h.notes.DeleteNote(r.Context(), actorID, mux.Vars(r)["id"])
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"folderId": folderID})
}

// All POST /Notes/All (form field searchQuery) searches across the caller's
// folders; an empty query lists every note.
func (h *NoteHandler) All(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	notes, err := h.queries.SearchAll(r.Context(), actorID, r.PostFormValue("searchQuery"))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notes": notes, "count": len(notes)})
}

// Favourites GET /Notes/Favourites
func (h *NoteHandler) Favourites(w http.ResponseWriter, r *http.Request) {
	actorID, ok := h.actor.requireActor(w, r)
	if !ok {
		return
	}
	notes, err := h.queries.ListFavourites(r.Context(), actorID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notes": notes, "count": len(notes)})
}
