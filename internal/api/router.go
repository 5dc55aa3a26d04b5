package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/startpage/internal/startpage"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *startpage.Service, authEnabled bool, token string, sseHandler http.Handler, searchURL string) chi.Router {
	h := NewHandler(svc, searchURL)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Free notes. The static edit route is matched before {id}.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Delete("/notes/edit", h.CancelNoteEdit)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	r.Post("/notes/{id}/edit", h.EditNote)

	// Date notes.
	r.Delete("/dates/edit", h.CancelDateNoteEdit)
	r.Get("/dates/{date}/notes", h.ListDateNotes)
	r.Post("/dates/{date}/notes", h.CreateDateNote)
	r.Put("/dates/{date}/notes/{id}", h.UpdateDateNote)
	r.Delete("/dates/{date}/notes/{id}", h.DeleteDateNote)
	r.Post("/dates/{date}/notes/{id}/edit", h.EditDateNote)

	// Calendar.
	r.Get("/calendar", h.Calendar)
	r.Post("/calendar/prev", h.PrevMonth)
	r.Post("/calendar/next", h.NextMonth)
	r.Post("/calendar/today", h.ThisMonth)

	// Quick links.
	r.Get("/links", h.ListLinks)
	r.Post("/links", h.CreateLink)
	r.Delete("/links/{index}", h.DeleteLink)

	r.Get("/search", h.Search)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
