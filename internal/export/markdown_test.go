package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/startpage/internal/calendar"
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/storage"
)

var stamp = time.Date(2024, time.March, 5, 8, 30, 0, 0, time.UTC)

func note(id, title, content string) models.Note {
	return models.Note{ID: id, Title: title, Content: content, CreatedAt: stamp, UpdatedAt: stamp.Add(time.Hour)}
}

func TestMarkdown(t *testing.T) {
	data, err := Markdown(note("n1", "Groceries", "milk\neggs\n"), "2024-03-05")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("---\n")) {
		t.Fatalf("missing frontmatter: %q", data)
	}
	parts := strings.SplitN(string(data), "---\n", 3)
	if len(parts) != 3 {
		t.Fatalf("unexpected layout: %q", data)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(parts[1]), &fm); err != nil {
		t.Fatalf("frontmatter yaml: %v", err)
	}
	if fm.ID != "n1" || fm.Title != "Groceries" || fm.Date != "2024-03-05" {
		t.Errorf("frontmatter = %+v", fm)
	}
	if !fm.Updated.Equal(stamp.Add(time.Hour)) {
		t.Errorf("updated = %v", fm.Updated)
	}
	if want := "\n# Groceries\n\nmilk\neggs\n"; parts[2] != want {
		t.Errorf("body = %q, want %q", parts[2], want)
	}
}

func TestMarkdownFreeNoteHasNoDate(t *testing.T) {
	data, err := Markdown(note("n1", "Untitled", ""), "")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "date:") {
		t.Errorf("free note carries a date: %s", data)
	}
	if !strings.HasSuffix(string(data), "# Untitled\n") {
		t.Errorf("empty content rendered a body: %q", data)
	}
}

func TestWriteToFS(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFS(dir, storage.WithExtension(Extension))
	if err != nil {
		t.Fatal(err)
	}
	dated := map[calendar.DateKey][]models.Note{
		"2024-03-05": {note("d1", "a", ""), note("d2", "b", "")},
		"2024-04-01": {note("d3", "c", "")},
	}
	sum, err := Write(fs, []models.Note{note("n1", "free", "x")}, dated)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if sum.Notes != 1 || sum.DateNotes != 3 {
		t.Errorf("summary = %+v", sum)
	}
	for _, rel := range []string{
		"notes/n1.md",
		"dates/2024-03-05/d1.md",
		"dates/2024-03-05/d2.md",
		"dates/2024-04-01/d3.md",
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestWriteRejectsUnsafeIDs(t *testing.T) {
	fs, err := storage.NewFS(t.TempDir(), storage.WithExtension(Extension))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Write(fs, []models.Note{note("../../escape", "x", "")}, nil); err == nil {
		t.Error("expected error for a path-escaping id")
	}
}
