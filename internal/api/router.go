package api

import (
	"github.com/gorilla/mux"

	"github.com/notesapp/notes-backend/internal/api/recovery"
	"github.com/notesapp/notes-backend/internal/auth"
	"github.com/notesapp/notes-backend/internal/images"
	"github.com/notesapp/notes-backend/internal/services"
	"github.com/notesapp/notes-backend/internal/store"
)

// NewRouter wires all HTTP routes. The route shapes mirror the MVC-style
// paths the clients already use (/Folders/Details/{id}, /Notes/All, ...).
func NewRouter(st store.Store, img images.Store, authorizer auth.Authorizer, loginURL string) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Services
	userService := services.NewUserService(st)
	folderService := services.NewFolderService(st, img)
	noteService := services.NewNoteService(st)
	queryService := services.NewQueryService(st)

	// Handlers
	actor := &actorResolver{authorizer: authorizer, loginURL: loginURL}
	healthHandler := NewHealthHandler()
	userHandler := NewUserHandler(userService)
	folderHandler := NewFolderHandler(folderService, actor)
	noteHandler := NewNoteHandler(noteService, queryService, actor)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// User endpoints (signup hook, no Bearer token)
	router.HandleFunc("/Users", userHandler.Create).Methods("POST")
	router.HandleFunc("/Users/{id}", userHandler.Get).Methods("GET")

	// Folder endpoints
	router.HandleFunc("/Folders/Root", folderHandler.Root).Methods("GET")
	router.HandleFunc("/Folders/List", folderHandler.List).Methods("GET")
	router.HandleFunc("/Folders/Details/{id}", folderHandler.Details).Methods("GET")
	router.HandleFunc("/Folders/Create", folderHandler.Create).Methods("POST")
	router.HandleFunc("/Folders/Edit/{id}", folderHandler.Edit).Methods("POST")
	router.HandleFunc("/Folders/Delete/{id}", folderHandler.ConfirmDelete).Methods("GET")
	router.HandleFunc("/Folders/Delete/{id}", folderHandler.Delete).Methods("POST")
	router.HandleFunc("/Folders/Image/{id}", folderHandler.Image).Methods("GET")

	// Note endpoints
	router.HandleFunc("/Notes/All", noteHandler.All).Methods("POST")
	router.HandleFunc("/Notes/Favourites", noteHandler.Favourites).Methods("GET")
	router.HandleFunc("/Notes/Details/{id}", noteHandler.Details).Methods("GET")
	router.HandleFunc("/Notes/Create", noteHandler.Create).Methods("POST")
	router.HandleFunc("/Notes/Edit/{id}", noteHandler.Edit).Methods("POST")
	router.HandleFunc("/Notes/Delete/{id}", noteHandler.ConfirmDelete).Methods("GET")
	router.HandleFunc("/Notes/Delete/{id}", noteHandler.Delete).Methods("POST")

	return router
}
