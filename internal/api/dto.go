package api

import (
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/startpage"
)

// NoteRequest is the body for creating or updating a note.
type NoteRequest struct {
	Title   string `json:"title" example:"Groceries"`
	Content string `json:"content" example:"milk, eggs"`
}

// NoteListResponse lists notes together with the one open for editing.
type NoteListResponse struct {
	Notes   []models.Note `json:"notes" validate:"required"`
	Editing string        `json:"editing"`
}

// DateNotesResponse lists the notes of one date.
type DateNotesResponse struct {
	Date    string        `json:"date" example:"2024-03-05" validate:"required"`
	Notes   []models.Note `json:"notes" validate:"required"`
	Editing string        `json:"editing"`
}

// MonthResponse is the calendar view (aliased from the domain layer).
type MonthResponse = startpage.Month

// LinkRequest is the body for adding a link.
type LinkRequest struct {
	Title string `json:"title" example:"GitHub" validate:"required"`
	URL   string `json:"url" example:"github.com" validate:"required"`
}

// LinkItem is a shelf entry with its position and favicon.
type LinkItem struct {
	Index   int    `json:"index" example:"0"`
	Title   string `json:"title" example:"GitHub"`
	URL     string `json:"url" example:"https://github.com"`
	Favicon string `json:"favicon"`
}

// LinkListResponse wraps the shelf.
type LinkListResponse struct {
	Links []LinkItem `json:"links" validate:"required"`
}
