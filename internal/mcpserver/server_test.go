package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/startpage/internal/ident"
	"github.com/starford/startpage/internal/models"
	"github.com/starford/startpage/internal/startpage"
	"github.com/starford/startpage/internal/testutil"
)

func testServer(t *testing.T) (*Server, *startpage.Service) {
	t.Helper()
	gw, _ := testutil.Gateway(t)
	svc := startpage.New(gw, testutil.Clock(), &ident.Sequence{},
		startpage.WithLogger(testutil.Logger()),
		startpage.WithLocation(time.UTC),
		startpage.WithDefaultLinks(nil),
	)
	return New(svc, "test"), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no in-process call helper, so dispatch to the handlers directly.
	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"list_notes":       srv.listNotes,
		"add_note":         srv.addNote,
		"delete_note":      srv.deleteNote,
		"list_date_notes":  srv.listDateNotes,
		"add_date_note":    srv.addDateNote,
		"delete_date_note": srv.deleteDateNote,
		"month_calendar":   srv.monthCalendar,
		"list_links":       srv.listLinks,
		"add_link":         srv.addLink,
		"remove_link":      srv.removeLink,
	}
	h, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := h(ctx, req)
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolsRegistered(t *testing.T) {
	srv, _ := testServer(t)
	resp := srv.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"list_notes", "add_note", "delete_note",
		"list_date_notes", "add_date_note", "delete_date_note",
		"month_calendar", "list_links", "add_link", "remove_link",
	} {
		if !strings.Contains(string(raw), `"name":"`+name+`"`) {
			t.Errorf("tool %s not listed in %s", name, raw)
		}
	}
}

func TestAddListDeleteNote(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "add_note", map[string]any{"content": "remember the milk"})
	if r.IsError {
		t.Fatalf("add_note: %s", resultText(r))
	}
	var n models.Note
	if err := json.Unmarshal([]byte(resultText(r)), &n); err != nil {
		t.Fatal(err)
	}
	if n.Title != models.UntitledTitle {
		t.Errorf("title = %q", n.Title)
	}

	if text := resultText(callTool(t, srv, "list_notes", map[string]any{})); !strings.Contains(text, "remember the milk") {
		t.Errorf("list_notes = %q", text)
	}

	callTool(t, srv, "delete_note", map[string]any{"id": n.ID})
	if len(svc.ListNotes(context.Background())) != 0 {
		t.Error("note survived delete_note")
	}
}

func TestAddNoteEmpty(t *testing.T) {
	srv, _ := testServer(t)
	if r := callTool(t, srv, "add_note", map[string]any{}); !r.IsError {
		t.Error("expected error for empty note")
	}
}

func TestDateNotesAndCalendar(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "add_date_note", map[string]any{"date": "2024-02-05", "title": "dentist"})
	if r.IsError {
		t.Fatalf("add_date_note: %s", resultText(r))
	}
	if text := resultText(callTool(t, srv, "list_date_notes", map[string]any{"date": "2024-02-05"})); !strings.Contains(text, "dentist") {
		t.Errorf("list_date_notes = %q", text)
	}

	cal := resultText(callTool(t, srv, "month_calendar", map[string]any{}))
	if !strings.HasPrefix(cal, "February 2024\n") || !strings.Contains(cal, " 5*") {
		t.Errorf("month_calendar =\n%s", cal)
	}

	june := resultText(callTool(t, srv, "month_calendar", map[string]any{"year": 2024, "month": 6}))
	if !strings.HasPrefix(june, "June 2024\n") {
		t.Errorf("month_calendar june =\n%s", june)
	}
	if r := callTool(t, srv, "month_calendar", map[string]any{"year": 2024, "month": 13}); !r.IsError {
		t.Error("expected error for month 13")
	}

	notes, _ := svc.ListDateNotes(context.Background(), "2024-02-05")
	callTool(t, srv, "delete_date_note", map[string]any{"date": "2024-02-05", "id": notes[0].ID})
	if svc.HasDateNotes(context.Background(), "2024-02-05") {
		t.Error("date still has notes")
	}
}

func TestDateNoteBadDate(t *testing.T) {
	srv, _ := testServer(t)
	if r := callTool(t, srv, "list_date_notes", map[string]any{"date": "March 5"}); !r.IsError {
		t.Error("expected error for malformed date")
	}
	if r := callTool(t, srv, "add_date_note", map[string]any{"title": "x"}); !r.IsError {
		t.Error("expected error for missing date")
	}
}

func TestLinks(t *testing.T) {
	srv, svc := testServer(t)

	r := callTool(t, srv, "add_link", map[string]any{"title": "Go", "url": "go.dev"})
	if r.IsError || !strings.Contains(resultText(r), "https://go.dev") {
		t.Fatalf("add_link = %q", resultText(r))
	}
	if text := resultText(callTool(t, srv, "list_links", map[string]any{})); !strings.Contains(text, "go.dev") {
		t.Errorf("list_links = %q", text)
	}

	callTool(t, srv, "remove_link", map[string]any{"index": 0})
	if len(svc.ListLinks(context.Background())) != 0 {
		t.Error("link survived remove_link")
	}
	if r := callTool(t, srv, "remove_link", map[string]any{}); !r.IsError {
		t.Error("expected error for missing index")
	}
}
