package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/startpage/internal/calendar"
	"github.com/starford/startpage/internal/startpage"
)

// Handler holds API route handlers.
type Handler struct {
	svc       *startpage.Service
	searchURL string
}

// NewHandler creates a new Handler. searchURL receives the escaped query
// appended to it.
func NewHandler(svc *startpage.Service, searchURL string) *Handler {
	return &Handler{svc: svc, searchURL: searchURL}
}

func dateParam(r *http.Request) calendar.DateKey {
	return calendar.DateKey(chi.URLParam(r, "date"))
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List free notes, most recently updated first
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NoteListResponse{
		Notes:   h.svc.ListNotes(r.Context()),
		Editing: h.svc.EditingNote(r.Context()),
	})
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create a free note
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		NoteRequest	true	"Note to create"
//	@Success		201		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	note, err := h.svc.AddNote(r.Context(), req.Title, req.Content)
	if err != nil {
		writeError(w, "create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT /api/notes/{id}.
//
//	@Summary		Save a free note and close its editor
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Note id"
//	@Param			body	body		NoteRequest	true	"New title and content"
//	@Success		200		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	note, err := h.svc.UpdateNote(r.Context(), chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		writeError(w, "update note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE /api/notes/{id}. Unknown ids succeed.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	h.svc.DeleteNote(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// EditNote handles POST /api/notes/{id}/edit.
func (h *Handler) EditNote(w http.ResponseWriter, r *http.Request) {
	h.svc.EditNote(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// CancelNoteEdit handles DELETE /api/notes/edit.
func (h *Handler) CancelNoteEdit(w http.ResponseWriter, r *http.Request) {
	h.svc.CancelNoteEdit(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// ListDateNotes handles GET /api/dates/{date}/notes.
//
//	@Summary		List the notes of a date
//	@Tags			dates
//	@Produce		json
//	@Param			date	path		string	true	"YYYY-MM-DD"
//	@Success		200		{object}	DateNotesResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dates/{date}/notes [get]
func (h *Handler) ListDateNotes(w http.ResponseWriter, r *http.Request) {
	date := dateParam(r)
	notes, err := h.svc.ListDateNotes(r.Context(), date)
	if err != nil {
		writeError(w, "list date notes", err)
		return
	}
	writeJSON(w, http.StatusOK, DateNotesResponse{
		Date:    string(date),
		Notes:   notes,
		Editing: h.svc.EditingDateNote(r.Context()),
	})
}

// CreateDateNote handles POST /api/dates/{date}/notes.
//
//	@Summary		Create a note under a date
//	@Tags			dates
//	@Accept			json
//	@Produce		json
//	@Param			date	path		string		true	"YYYY-MM-DD"
//	@Param			body	body		NoteRequest	true	"Note to create"
//	@Success		201		{object}	models.Note
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/dates/{date}/notes [post]
func (h *Handler) CreateDateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	note, err := h.svc.AddDateNote(r.Context(), dateParam(r), req.Title, req.Content)
	if err != nil {
		writeError(w, "create date note", err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateDateNote handles PUT /api/dates/{date}/notes/{id}.
func (h *Handler) UpdateDateNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	note, err := h.svc.UpdateDateNote(r.Context(), dateParam(r), chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		writeError(w, "update date note", err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteDateNote handles DELETE /api/dates/{date}/notes/{id}.
func (h *Handler) DeleteDateNote(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDateNote(r.Context(), dateParam(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, "delete date note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EditDateNote handles POST /api/dates/{date}/notes/{id}/edit.
func (h *Handler) EditDateNote(w http.ResponseWriter, r *http.Request) {
	h.svc.EditDateNote(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// CancelDateNoteEdit handles DELETE /api/dates/edit.
func (h *Handler) CancelDateNoteEdit(w http.ResponseWriter, r *http.Request) {
	h.svc.CancelDateNoteEdit(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
