package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/starford/startpage/internal/calendar"
)

func TestRenderMonth(t *testing.T) {
	view := calendar.View{Year: 2024, Month: time.February}
	today := time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	cells := view.Grid(today, func(k calendar.DateKey) bool { return k == "2024-02-05" })

	out := NewCalendar(&bytes.Buffer{}).RenderMonth(view, cells)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if lines[0] != "February 2024" {
		t.Errorf("title = %q", lines[0])
	}
	if got := strings.Fields(lines[1]); strings.Join(got, " ") != "Sa Su Mo Tu We Th Fr" {
		t.Errorf("header = %q", lines[1])
	}
	if got := strings.Join(strings.Fields(lines[2]), " "); got != "27 28 29 30 31 1 2" {
		t.Errorf("first row = %q", got)
	}
	if !strings.Contains(lines[3], " 5*") {
		t.Errorf("note mark missing from %q", lines[3])
	}
	if got := strings.Join(strings.Fields(lines[7]), " "); got != "2 3 4 5 6 7 8" {
		t.Errorf("last row = %q", got)
	}
}

func TestRenderMonthPlainForNonTerminal(t *testing.T) {
	view := calendar.View{Year: 2024, Month: time.June}
	cells := view.Grid(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), nil)
	out := NewCalendar(&bytes.Buffer{}).RenderMonth(view, cells)
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape codes in plain output: %q", out)
	}
}
