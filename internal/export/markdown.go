// Package export writes notes out as Markdown files with YAML frontmatter.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/startpage/internal/calendar"
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/storage"
)

// Extension is the file extension of exported notes.
const Extension = ".md"

type frontmatter struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Date    string    `yaml:"date,omitempty"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
}

// Summary counts what an export wrote.
type Summary struct {
	Dir       string `json:"dir"`
	Notes     int    `json:"notes"`
	DateNotes int    `json:"date_notes"`
}

// Markdown renders n as a Markdown document. date is empty for free notes.
func Markdown(n models.Note, date calendar.DateKey) ([]byte, error) {
	fm, err := yaml.Marshal(frontmatter{
		ID:      n.ID,
		Title:   n.Title,
		Date:    string(date),
		Created: n.CreatedAt.UTC(),
		Updated: n.UpdatedAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("export: frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")
	buf.WriteString("# " + n.Title + "\n")
	if body := strings.TrimSpace(n.Content); body != "" {
		buf.WriteString("\n" + body + "\n")
	}
	return buf.Bytes(), nil
}

// NoteKey is the provider key of an exported free note.
func NoteKey(id string) string {
	return "notes/" + id
}

// DateNoteKey is the provider key of an exported date note.
func DateNoteKey(date calendar.DateKey, id string) string {
	return "dates/" + string(date) + "/" + id
}

// Write exports every note through p. Pass a storage.FS created with
// storage.WithExtension(Extension) to get one .md file per note.
func Write(p storage.Provider, notes []models.Note, dated map[calendar.DateKey][]models.Note) (Summary, error) {
	var sum Summary
	for _, n := range notes {
		if err := writeNote(p, NoteKey(n.ID), n, ""); err != nil {
			return sum, err
		}
		sum.Notes++
	}
	for date, bucket := range dated {
		for _, n := range bucket {
			if err := writeNote(p, DateNoteKey(date, n.ID), n, date); err != nil {
				return sum, err
			}
			sum.DateNotes++
		}
	}
	return sum, nil
}

func writeNote(p storage.Provider, key string, n models.Note, date calendar.DateKey) error {
	data, err := Markdown(n, date)
	if err != nil {
		return err
	}
	if err := p.Write(key, data); err != nil {
		return fmt.Errorf("export %s: %w", key, err)
	}
	return nil
}
