package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/notesapp/notes-backend/internal/api/respond"
	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/services"
)

// UserHandler serves the signup hook called by the identity provider; these
// routes carry no Bearer token.
type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

// Create POST /Users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID      string  `json:"userId"`
		Email       string  `json:"email"`
		DisplayName *string `json:"displayName,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	u := &model.User{UserID: in.UserID, Email: in.Email, DisplayName: in.DisplayName}
	out, err := h.svc.CreateUser(r.Context(), u)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// Get GET /Users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if userID == "" {
		respond.WriteBadRequest(w, "user id required")
		return
	}
	u, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}
