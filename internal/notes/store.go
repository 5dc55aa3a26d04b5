// Package notes keeps the flat collection of free-standing notes.
package notes

import (
	"fmt"
	"slices"

	"github.com/starford/startpage/internal/apperr"
	"github.com/starford/startpage/internal/clock"
	"github.com/starford/startpage/internal/editslot"
	"github.com/starford/startpage/internal/ident"
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/storage"
)

// Store holds notes in insertion order and writes the whole collection
// through the gateway after every change. It is not safe for concurrent use.
type Store struct {
	gw       *storage.Gateway
	clock    clock.Clock
	ids      ident.Generator
	untitled string

	slot  editslot.Slot
	notes []models.Note
}

// NewStore loads the collection from gw. An empty untitled uses
// models.UntitledTitle.
func NewStore(gw *storage.Gateway, clk clock.Clock, ids ident.Generator, untitled string) *Store {
	if untitled == "" {
		untitled = models.UntitledTitle
	}
	return &Store{
		gw:       gw,
		clock:    clk,
		ids:      ids,
		untitled: untitled,
		notes:    storage.Get(gw, storage.KeyNotes, []models.Note{}),
	}
}

// Add appends a new note.
func (s *Store) Add(title, content string) (models.Note, error) {
	in := models.NewNoteInput(title, content)
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	n := models.NewNote(s.ids.NewID(), in, s.untitled, s.clock.Now())
	s.notes = append(s.notes, n)
	s.persist()
	return n, nil
}

// Update rewrites the note and closes the edit slot.
func (s *Store) Update(id, title, content string) (models.Note, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("note %s: %w", id, apperr.ErrNotFound)
	}
	in := models.NewNoteInput(title, content)
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	s.notes[i].Apply(in, s.untitled, s.clock.Now())
	s.persist()
	s.slot.Close()
	return s.notes[i], nil
}

// Remove deletes the note and reports whether it existed. Unknown ids are
// ignored and nothing is written.
func (s *Store) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.notes = slices.Delete(s.notes, i, i+1)
	s.persist()
	return true
}

// Get returns the note with id.
func (s *Store) Get(id string) (models.Note, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Note{}, false
	}
	return s.notes[i], true
}

// SetEditing opens id for editing, closing any other note. "" closes the slot.
func (s *Store) SetEditing(id string) { s.slot.Open(id) }

// CancelEditing closes the edit slot.
func (s *Store) CancelEditing() { s.slot.Close() }

// Editing returns the id open for editing or "".
func (s *Store) Editing() string { return s.slot.ID() }

// ListByRecency returns a copy sorted by UpdatedAt, newest first. Stored
// order is untouched.
func (s *Store) ListByRecency() []models.Note {
	out := slices.Clone(s.notes)
	slices.SortStableFunc(out, func(a, b models.Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if out == nil {
		out = []models.Note{}
	}
	return out
}

// All returns a copy in insertion order.
func (s *Store) All() []models.Note {
	return append([]models.Note{}, s.notes...)
}

// Reload replaces the collection with the stored one. The current state is
// kept when the stored value is missing or corrupt.
func (s *Store) Reload() bool {
	notes, ok := storage.Load[[]models.Note](s.gw, storage.KeyNotes)
	if !ok {
		return false
	}
	s.notes = notes
	return true
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n models.Note) bool { return n.ID == id })
}

func (s *Store) persist() {
	s.gw.Set(storage.KeyNotes, s.notes)
}
