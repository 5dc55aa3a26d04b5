// Package render draws month grids for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/startpage/internal/calendar"
)

// NoteMark follows the day number of cells that have notes.
const NoteMark = "*"

// Calendar renders month grids with styles bound to one output.
type Calendar struct {
	title   lipgloss.Style
	header  lipgloss.Style
	outside lipgloss.Style
	today   lipgloss.Style
	noted   lipgloss.Style
}

// NewCalendar returns a renderer whose colour profile matches w. Writers that
// are not terminals get plain text.
func NewCalendar(w io.Writer) *Calendar {
	r := lipgloss.NewRenderer(w)
	return &Calendar{
		title:   r.NewStyle().Bold(true),
		header:  r.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		outside: r.NewStyle().Faint(true),
		today:   r.NewStyle().Reverse(true),
		noted:   r.NewStyle().Foreground(lipgloss.Color("63")),
	}
}

// RenderMonth returns the title, a Saturday-first header and the six week
// rows of cells.
func (c *Calendar) RenderMonth(view calendar.View, cells []calendar.Cell) string {
	var b strings.Builder
	b.WriteString(c.title.Render(view.Title()))
	b.WriteByte('\n')

	names := make([]string, len(calendar.Weekdays))
	for i, wd := range calendar.Weekdays {
		names[i] = wd.String()[:2] + " "
	}
	b.WriteString(c.header.Render(strings.Join(names, " ")))
	b.WriteByte('\n')

	for row := 0; row*7 < len(cells); row++ {
		end := min(row*7+7, len(cells))
		parts := make([]string, 0, 7)
		for _, cell := range cells[row*7 : end] {
			parts = append(parts, c.cell(cell))
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func (c *Calendar) cell(cell calendar.Cell) string {
	mark := " "
	if cell.HasNotes {
		mark = NoteMark
	}
	text := fmt.Sprintf("%2d", cell.Day)
	switch {
	case !cell.InMonth:
		text = c.outside.Render(text)
	case cell.Today:
		text = c.today.Render(text)
	case cell.HasNotes:
		text = c.noted.Render(text)
	}
	return text + mark
}
