// Package startpage holds the application state: the three collections, the
// displayed month and the notifications sent when any of them change.
package startpage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/starford/startpage/internal/calendar"
	"github.com/starford/startpage/internal/clock"
	"github.com/starford/startpage/internal/datenotes"
	"github.com/starford/startpage/internal/export"
	"github.com/starford/startpage/internal/ident"
	"github.com/starford/startpage/internal/links"
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/notes"
	"github.com/starford/startpage/internal/storage"
)

// Collection names a changed collection.
type Collection string

const (
	Notes     Collection = "notes"
	DateNotes Collection = "date_notes"
	Links     Collection = "links"
)

// Publisher is told about every successful mutation. key is the date of a
// changed date note and empty otherwise.
type Publisher interface {
	PublishChange(c Collection, key calendar.DateKey)
}

type nopPublisher struct{}

func (nopPublisher) PublishChange(Collection, calendar.DateKey) {}

// Month is a rendered month view.
type Month struct {
	calendar.View
	Title    string          `json:"title"`
	Weekdays []string        `json:"weekdays"`
	Cells    []calendar.Cell `json:"cells"`
}

// Service serialises every operation on the collections. It is safe for
// concurrent use.
type Service struct {
	mu sync.Mutex

	clock    clock.Clock
	loc      *time.Location
	untitled string
	defaults []models.QuickLink
	pub      Publisher
	logger   *slog.Logger

	notes *notes.Store
	dated *datenotes.Index
	shelf *links.Shelf
	view  calendar.View
}

// New loads every collection through gw and seeds the link shelf when empty.
func New(gw *storage.Gateway, clk clock.Clock, ids ident.Generator, opts ...Option) *Service {
	s := &Service{
		clock:    clk,
		loc:      time.Local,
		untitled: models.UntitledTitle,
		defaults: links.Defaults,
		pub:      nopPublisher{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.notes = notes.NewStore(gw, clk, ids, s.untitled)
	s.dated = datenotes.NewIndex(gw, clk, ids, s.untitled)
	s.shelf = links.NewShelf(gw)
	s.shelf.SeedDefaultsIfEmpty(s.defaults)
	s.view = calendar.ViewOf(s.today())
	return s
}

func (s *Service) today() time.Time {
	return s.clock.Now().In(s.loc)
}

// --- free notes ---

// ListNotes returns free notes, most recently updated first.
func (s *Service) ListNotes(_ context.Context) []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.ListByRecency()
}

// GetNote returns a free note.
func (s *Service) GetNote(_ context.Context, id string) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Get(id)
}

// AddNote creates a free note.
func (s *Service) AddNote(_ context.Context, title, content string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.notes.Add(title, content)
	if err != nil {
		return n, err
	}
	s.pub.PublishChange(Notes, "")
	return n, nil
}

// UpdateNote saves a free note and closes its edit slot.
func (s *Service) UpdateNote(_ context.Context, id, title, content string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.notes.Update(id, title, content)
	if err != nil {
		return n, err
	}
	s.pub.PublishChange(Notes, "")
	return n, nil
}

// DeleteNote removes a free note. Unknown ids are ignored.
func (s *Service) DeleteNote(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notes.Remove(id) {
		s.pub.PublishChange(Notes, "")
	}
}

// EditNote opens a free note for editing.
func (s *Service) EditNote(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes.SetEditing(id)
}

// CancelNoteEdit closes the free-note edit slot.
func (s *Service) CancelNoteEdit(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes.CancelEditing()
}

// EditingNote returns the free note open for editing, or "".
func (s *Service) EditingNote(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Editing()
}

// --- date notes ---

// ListDateNotes returns the notes of a date in insertion order.
func (s *Service) ListDateNotes(_ context.Context, key calendar.DateKey) ([]models.Note, error) {
	if _, err := calendar.ParseKey(key); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dated.ListUnder(key), nil
}

// HasDateNotes reports whether a date has notes.
func (s *Service) HasDateNotes(_ context.Context, key calendar.DateKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dated.HasNotes(key)
}

// AddDateNote creates a note under a date.
func (s *Service) AddDateNote(_ context.Context, key calendar.DateKey, title, content string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.dated.AddUnder(key, title, content)
	if err != nil {
		return n, err
	}
	s.pub.PublishChange(DateNotes, key)
	return n, nil
}

// UpdateDateNote saves a date note and closes its edit slot.
func (s *Service) UpdateDateNote(_ context.Context, key calendar.DateKey, id, title, content string) (models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.dated.UpdateUnder(key, id, title, content)
	if err != nil {
		return n, err
	}
	s.pub.PublishChange(DateNotes, key)
	return n, nil
}

// DeleteDateNote removes a date note. Unknown ids are ignored.
func (s *Service) DeleteDateNote(_ context.Context, key calendar.DateKey, id string) error {
	if _, err := calendar.ParseKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dated.RemoveUnder(key, id) {
		s.pub.PublishChange(DateNotes, key)
	}
	return nil
}

// EditDateNote opens a date note for editing.
func (s *Service) EditDateNote(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dated.SetEditing(id)
}

// CancelDateNoteEdit closes the date-note edit slot.
func (s *Service) CancelDateNoteEdit(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dated.CancelEditing()
}

// EditingDateNote returns the date note open for editing, or "".
func (s *Service) EditingDateNote(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dated.Editing()
}

// --- calendar ---

// Month returns the displayed month.
func (s *Service) Month(_ context.Context) Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(s.view)
}

// Grid returns any month without moving the displayed one.
func (s *Service) Grid(_ context.Context, v calendar.View) Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(calendar.View{Year: v.Year, Month: 1}.Add(int(v.Month) - 1))
}

// PrevMonth moves the displayed month back by one.
func (s *Service) PrevMonth(_ context.Context) Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = s.view.Previous()
	return s.build(s.view)
}

// NextMonth moves the displayed month forward by one.
func (s *Service) NextMonth(_ context.Context) Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = s.view.Next()
	return s.build(s.view)
}

// ThisMonth moves the displayed month back to today.
func (s *Service) ThisMonth(_ context.Context) Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = calendar.ViewOf(s.today())
	return s.build(s.view)
}

// build asks the index for presence on every call; grids are never cached.
func (s *Service) build(v calendar.View) Month {
	names := make([]string, len(calendar.Weekdays))
	for i, wd := range calendar.Weekdays {
		names[i] = wd.String()
	}
	return Month{
		View:     v,
		Title:    v.Title(),
		Weekdays: names,
		Cells:    v.Grid(s.today(), s.dated.HasNotes),
	}
}

// --- links ---

// ListLinks returns the shelf in order.
func (s *Service) ListLinks(_ context.Context) []models.QuickLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shelf.List()
}

// AddLink appends a link to the shelf.
func (s *Service) AddLink(_ context.Context, title, url string) (models.QuickLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, err := s.shelf.Add(title, url)
	if err != nil {
		return l, err
	}
	s.pub.PublishChange(Links, "")
	return l, nil
}

// RemoveLink removes the link at index i. Out of range indexes are ignored.
func (s *Service) RemoveLink(_ context.Context, i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shelf.RemoveAt(i) {
		s.pub.PublishChange(Links, "")
	}
}

// --- sync ---

// Reload re-reads the collection stored under key after an external change
// and reports whether anything was replaced.
func (s *Service) Reload(_ context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		ok bool
		c  Collection
	)
	switch key {
	case storage.KeyNotes:
		ok, c = s.notes.Reload(), Notes
	case storage.KeyDateNotes:
		ok, c = s.dated.Reload(), DateNotes
	case storage.KeyQuickLinks:
		ok, c = s.shelf.Reload(), Links
	default:
		return false
	}
	if !ok {
		s.logger.Warn("reload skipped", slog.String("key", key))
		return false
	}
	s.logger.Info("reloaded", slog.String("key", key))
	s.pub.PublishChange(c, "")
	return true
}

// Export writes every note as Markdown under dir.
func (s *Service) Export(_ context.Context, dir string) (export.Summary, error) {
	fs, err := storage.NewFS(dir, storage.WithExtension(export.Extension))
	if err != nil {
		return export.Summary{}, fmt.Errorf("export: %w", err)
	}

	s.mu.Lock()
	free := s.notes.All()
	dated := s.dated.Dump()
	s.mu.Unlock()

	sum, err := export.Write(fs, free, dated)
	sum.Dir = fs.Root()
	if err != nil {
		return sum, err
	}
	s.logger.Info("exported", slog.String("dir", sum.Dir),
		slog.Int("notes", sum.Notes), slog.Int("date_notes", sum.DateNotes))
	return sum, nil
}
