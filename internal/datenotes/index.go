// Package datenotes keeps notes partitioned by calendar day.
package datenotes

import (
	"fmt"
	"maps"
	"slices"

	"github.com/starford/startpage/internal/apperr"
	"github.com/starford/startpage/internal/calendar"
	"github.com/starford/startpage/internal/clock"
	"github.com/starford/startpage/internal/editslot"
	"github.com/starford/startpage/internal/ident"
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/storage"
)

// Index maps a DateKey to its notes in insertion order. A key is present
// only while it has at least one note. It is not safe for concurrent use.
type Index struct {
	gw       *storage.Gateway
	clock    clock.Clock
	ids      ident.Generator
	untitled string

	slot    editslot.Slot
	buckets map[calendar.DateKey][]models.Note
}

// NewIndex loads the index from gw. An empty untitled uses
// models.UntitledTitle.
func NewIndex(gw *storage.Gateway, clk clock.Clock, ids ident.Generator, untitled string) *Index {
	if untitled == "" {
		untitled = models.UntitledTitle
	}
	idx := &Index{
		gw:       gw,
		clock:    clk,
		ids:      ids,
		untitled: untitled,
	}
	idx.replace(storage.Get(gw, storage.KeyDateNotes, map[calendar.DateKey][]models.Note{}))
	return idx
}

// AddUnder appends a note to the bucket of key, creating the bucket if needed.
func (x *Index) AddUnder(key calendar.DateKey, title, content string) (models.Note, error) {
	if _, err := calendar.ParseKey(key); err != nil {
		return models.Note{}, err
	}
	in := models.NewNoteInput(title, content)
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	n := models.NewNote(x.ids.NewID(), in, x.untitled, x.clock.Now())
	x.buckets[key] = append(x.buckets[key], n)
	x.persist()
	return n, nil
}

// UpdateUnder rewrites a note of key and closes the edit slot.
func (x *Index) UpdateUnder(key calendar.DateKey, id, title, content string) (models.Note, error) {
	i := x.indexOf(key, id)
	if i < 0 {
		return models.Note{}, fmt.Errorf("date note %s/%s: %w", key, id, apperr.ErrNotFound)
	}
	in := models.NewNoteInput(title, content)
	if err := in.Validate(); err != nil {
		return models.Note{}, err
	}
	bucket := x.buckets[key]
	bucket[i].Apply(in, x.untitled, x.clock.Now())
	x.persist()
	x.slot.Close()
	return bucket[i], nil
}

// RemoveUnder deletes a note of key and drops the bucket once it is empty.
// It reports whether a note was removed. Unknown ids are ignored and nothing
// is written.
func (x *Index) RemoveUnder(key calendar.DateKey, id string) bool {
	i := x.indexOf(key, id)
	if i < 0 {
		return false
	}
	bucket := slices.Delete(x.buckets[key], i, i+1)
	if len(bucket) == 0 {
		delete(x.buckets, key)
	} else {
		x.buckets[key] = bucket
	}
	x.persist()
	return true
}

// HasNotes reports whether key has at least one note.
func (x *Index) HasNotes(key calendar.DateKey) bool {
	_, ok := x.buckets[key]
	return ok
}

// ListUnder returns the notes of key in insertion order.
func (x *Index) ListUnder(key calendar.DateKey) []models.Note {
	return append([]models.Note{}, x.buckets[key]...)
}

// Keys returns every key with notes, oldest day first.
func (x *Index) Keys() []calendar.DateKey {
	return slices.Sorted(maps.Keys(x.buckets))
}

// Dump returns a deep copy of the index.
func (x *Index) Dump() map[calendar.DateKey][]models.Note {
	out := make(map[calendar.DateKey][]models.Note, len(x.buckets))
	for k, v := range x.buckets {
		out[k] = slices.Clone(v)
	}
	return out
}

// SetEditing opens id for editing, closing any other date note. "" closes the slot.
func (x *Index) SetEditing(id string) { x.slot.Open(id) }

// CancelEditing closes the edit slot.
func (x *Index) CancelEditing() { x.slot.Close() }

// Editing returns the id open for editing or "".
func (x *Index) Editing() string { return x.slot.ID() }

// Reload replaces the index with the stored one. The current state is kept
// when the stored value is missing or corrupt.
func (x *Index) Reload() bool {
	buckets, ok := storage.Load[map[calendar.DateKey][]models.Note](x.gw, storage.KeyDateNotes)
	if !ok {
		return false
	}
	x.replace(buckets)
	return true
}

// replace installs buckets, dropping empty ones so the presence check stays exact.
func (x *Index) replace(buckets map[calendar.DateKey][]models.Note) {
	if buckets == nil {
		buckets = make(map[calendar.DateKey][]models.Note)
	}
	maps.DeleteFunc(buckets, func(_ calendar.DateKey, notes []models.Note) bool {
		return len(notes) == 0
	})
	x.buckets = buckets
}

func (x *Index) indexOf(key calendar.DateKey, id string) int {
	return slices.IndexFunc(x.buckets[key], func(n models.Note) bool { return n.ID == id })
}

func (x *Index) persist() {
	x.gw.Set(storage.KeyDateNotes, x.buckets)
}
