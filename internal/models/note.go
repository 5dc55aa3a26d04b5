// Package models defines the domain types for the start page.
package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/startpage/internal/apperr"
)

// UntitledTitle replaces an empty note title.
const UntitledTitle = "Untitled"

// Note is a free-standing or date-scoped note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput is the user-supplied part of a note.
type NoteInput struct {
	Title   string
	Content string
}

// NewNoteInput trims title and content.
func NewNoteInput(title, content string) NoteInput {
	return NoteInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
}

// Validate requires a title or a content.
func (in NoteInput) Validate() error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.When(in.Content == "", validation.Required.Error("title or content is required")),
		),
	)
	return apperr.Validation(err)
}

// NewNote builds a note stamped with now. An empty title becomes untitled.
func NewNote(id string, in NoteInput, untitled string, now time.Time) Note {
	n := Note{ID: id, CreatedAt: now}
	n.Apply(in, untitled, now)
	return n
}

// Apply rewrites the mutable fields and bumps UpdatedAt.
func (n *Note) Apply(in NoteInput, untitled string, now time.Time) {
	n.Title = in.Title
	if n.Title == "" {
		n.Title = untitled
	}
	n.Content = in.Content
	n.UpdatedAt = now
}
