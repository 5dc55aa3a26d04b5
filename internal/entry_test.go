package internal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/storage"
)

func memoryConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Storage = StorageConfig{Driver: DriverMemory}
	cfg.Calendar.Timezone = "UTC"
	return cfg
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()

	file, err := openBackend(StorageConfig{Driver: DriverFile, Path: filepath.Join(dir, "data")})
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if file.fs == nil {
		t.Error("file driver must expose its FS for watching")
	}
	if err := file.provider.Write(storage.KeyNotes, []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "notes.json")); err != nil {
		t.Errorf("notes.json not written: %v", err)
	}

	db, err := openBackend(StorageConfig{Driver: DriverSQLite, Path: filepath.Join(dir, "start.db")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer db.close()
	if db.fs != nil {
		t.Error("sqlite driver has no FS")
	}

	mem, err := openBackend(StorageConfig{Driver: DriverMemory})
	if err != nil || mem.fs != nil {
		t.Fatalf("memory: %v", err)
	}
}

func TestDefaultLinks(t *testing.T) {
	got := defaultLinks(LinksConfig{Defaults: []models.QuickLink{{Title: " Go ", URL: "go.dev"}}})
	if len(got) != 1 || got[0].Title != "Go" || got[0].URL != "https://go.dev" {
		t.Errorf("defaultLinks = %+v", got)
	}
	if got := defaultLinks(LinksConfig{}); len(got) == 0 {
		t.Error("empty config must fall back to the built-in shelf")
	}
}

func TestPrintCalendar(t *testing.T) {
	var out bytes.Buffer
	err := PrintCalendar(context.Background(), 2024, time.February, WithConfig(memoryConfig()), WithOutput(&out))
	if err != nil {
		t.Fatalf("PrintCalendar: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if lines[0] != "February 2024" || len(lines) != 8 {
		t.Errorf("output =\n%s", out.String())
	}

	err = PrintCalendar(context.Background(), 2024, 13, WithConfig(memoryConfig()), WithOutput(&out))
	if err == nil {
		t.Error("month 13 should fail")
	}
}

func TestExportCommand(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Storage = StorageConfig{Driver: DriverFile, Path: t.TempDir()}
	if err := os.WriteFile(filepath.Join(cfg.Storage.Path, "notes.json"),
		[]byte(`[{"id":"n1","title":"kept","content":"x"}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := t.TempDir()
	var out bytes.Buffer
	if err := Export(context.Background(), outDir, WithConfig(cfg), WithOutput(&out)); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(out.String(), "exported 1 notes and 0 date notes") {
		t.Errorf("output = %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, "notes", "n1.md")); err != nil {
		t.Errorf("n1.md missing: %v", err)
	}
}

func TestRunRequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Error("Run without config should fail")
	}
}
