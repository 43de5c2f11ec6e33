// Package api is the HTTP transport: gorilla/mux routes, form/multipart
// parsing and the mapping from domain errors to status codes.
package api

import (
	"net/http"

	"github.com/notesapp/notes-backend/internal/auth"
)

// actorResolver turns the Bearer token of a request into an acting user id.
// Requests without a valid token are redirected to the login page.
type actorResolver struct {
	authorizer auth.Authorizer
	loginURL   string
}

func (a *actorResolver) requireActor(w http.ResponseWriter, r *http.Request) (string, bool) {
	apiKey, err := auth.ExtractAPIKey(r)
	if err != nil {
		http.Redirect(w, r, a.loginURL, http.StatusFound)
		return "", false
	}
	info, err := a.authorizer.Authorize(r.Context(), apiKey)
	if err != nil {
		http.Redirect(w, r, a.loginURL, http.StatusFound)
		return "", false
	}
	return info.UserID, true
}
