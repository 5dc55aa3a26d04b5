// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the start page collections over stdio.
package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/startpage/internal/calendar"
	"github.com/starford/startpage/internal/render"
	"github.com/starford/startpage/internal/startpage"
)

// Server wraps the MCP server with start page tools.
type Server struct {
	mcp *server.MCPServer
	svc *startpage.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *startpage.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Startpage",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List free notes, most recently updated first."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Create a free note. At least one of title or content must be non-empty."),
		mcp.WithString("title", mcp.Description("Note title; a placeholder is used when empty")),
		mcp.WithString("content", mcp.Description("Note body")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a free note by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("list_date_notes",
		mcp.WithDescription("List the notes attached to a calendar date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD")),
	), s.listDateNotes)

	s.mcp.AddTool(mcp.NewTool("add_date_note",
		mcp.WithDescription("Attach a note to a calendar date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD")),
		mcp.WithString("title", mcp.Description("Note title; a placeholder is used when empty")),
		mcp.WithString("content", mcp.Description("Note body")),
	), s.addDateNote)

	s.mcp.AddTool(mcp.NewTool("delete_date_note",
		mcp.WithDescription("Delete a note from a calendar date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date as YYYY-MM-DD")),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteDateNote)

	s.mcp.AddTool(mcp.NewTool("month_calendar",
		mcp.WithDescription("Render a month grid, Saturday first. Days with notes carry a *. "+
			"Defaults to the displayed month."),
		mcp.WithNumber("year", mcp.Description("Year, e.g. 2024")),
		mcp.WithNumber("month", mcp.Description("Month 1-12")),
	), s.monthCalendar)

	s.mcp.AddTool(mcp.NewTool("list_links",
		mcp.WithDescription("List the quick-link shelf in order."),
	), s.listLinks)

	s.mcp.AddTool(mcp.NewTool("add_link",
		mcp.WithDescription("Append a quick link. A url without scheme gets https://."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Link title")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Link address")),
	), s.addLink)

	s.mcp.AddTool(mcp.NewTool("remove_link",
		mcp.WithDescription("Remove the quick link at a zero-based position."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Position in list_links")),
	), s.removeLink)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listNotes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.ListNotes(ctx))
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.svc.AddNote(ctx, req.GetString("title", ""), req.GetString("content", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n)
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.svc.DeleteNote(ctx, id)
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", id)), nil
}

func (s *Server) listDateNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes, err := s.svc.ListDateNotes(ctx, calendar.DateKey(date))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(notes)
}

func (s *Server) addDateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.svc.AddDateNote(ctx, calendar.DateKey(date), req.GetString("title", ""), req.GetString("content", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(n)
}

func (s *Server) deleteDateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteDateNote(ctx, calendar.DateKey(date), id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s/%s", date, id)), nil
}

func (s *Server) monthCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m := s.svc.Month(ctx)
	year, month := req.GetInt("year", 0), req.GetInt("month", 0)
	if year != 0 || month != 0 {
		if year < 1 || month < 1 || month > 12 {
			return mcp.NewToolResultError("year and month must be a valid year and 1-12"), nil
		}
		m = s.svc.Grid(ctx, calendar.View{Year: year, Month: time.Month(month)})
	}
	// A buffer is never a terminal, so the output is plain text.
	return mcp.NewToolResultText(render.NewCalendar(&bytes.Buffer{}).RenderMonth(m.View, m.Cells)), nil
}

func (s *Server) listLinks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.ListLinks(ctx))
}

func (s *Server) addLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	l, err := s.svc.AddLink(ctx, title, url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(l)
}

func (s *Server) removeLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	i, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.svc.RemoveLink(ctx, i)
	return mcp.NewToolResultText(fmt.Sprintf("removed: %d", i)), nil
}
