package calendar

import "time"

// View is the displayed month. Moving it never touches stored notes.
type View struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ViewOf returns the view containing t.
func ViewOf(t time.Time) View {
	return View{Year: t.Year(), Month: t.Month()}
}

// Previous returns the month before v.
func (v View) Previous() View { return v.Add(-1) }

// Next returns the month after v.
func (v View) Next() View { return v.Add(1) }

// Add moves v by months. Out of range months are normalised.
func (v View) Add(months int) View {
	// Anchor on day 1 so that e.g. Jan 31 + 1 month never lands in March.
	t := time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	return ViewOf(t)
}

// Grid builds the cells of v.
func (v View) Grid(today time.Time, hasNotes func(DateKey) bool) []Cell {
	return BuildGrid(v.Year, v.Month, today, hasNotes)
}

// Title returns e.g. "February 2024".
func (v View) Title() string {
	return time.Date(v.Year, v.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Weekdays lists the column headers of the grid, Saturday first.
var Weekdays = [7]time.Weekday{
	time.Saturday, time.Sunday, time.Monday, time.Tuesday,
	time.Wednesday, time.Thursday, time.Friday,
}
