package calendar

import "time"

// GridSize is the number of cells in a month grid (6 weeks of 7 days).
const GridSize = 42

// Cell is one position of the month grid.
type Cell struct {
	Day      int     `json:"day"`
	InMonth  bool    `json:"in_month"`
	Today    bool    `json:"today"`
	HasNotes bool    `json:"has_notes"`
	Key      DateKey `json:"date"`
}

// LeadingBlanks returns how many cells of the previous month precede the 1st
// of month in a week starting on Saturday (Saturday = 0 ... Friday = 6).
func LeadingBlanks(year int, month time.Month) int {
	wd := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(wd) + 1) % 7
}

// DaysIn returns the number of days in month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildGrid returns the GridSize cells for month: the tail of the previous
// month, every day of month, then the head of the next month. today marks at
// most one in-month cell; hasNotes is asked for every cell.
func BuildGrid(year int, month time.Month, today time.Time, hasNotes func(DateKey) bool) []Cell {
	if hasNotes == nil {
		hasNotes = func(DateKey) bool { return false }
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	leading := LeadingBlanks(year, month)
	days := DaysIn(year, month)
	prevDays := DaysIn(prev.Year(), prev.Month())

	todayDay := 0
	if today.Year() == first.Year() && today.Month() == first.Month() {
		todayDay = today.Day()
	}

	cells := make([]Cell, 0, GridSize)
	cell := func(y int, m time.Month, d int, inMonth bool) Cell {
		key := KeyOf(y, m, d)
		return Cell{
			Day:      d,
			InMonth:  inMonth,
			Today:    inMonth && d == todayDay,
			HasNotes: hasNotes(key),
			Key:      key,
		}
	}

	for d := prevDays - leading + 1; d <= prevDays; d++ {
		cells = append(cells, cell(prev.Year(), prev.Month(), d, false))
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, cell(first.Year(), first.Month(), d, true))
	}
	for d := 1; len(cells) < GridSize; d++ {
		cells = append(cells, cell(next.Year(), next.Month(), d, false))
	}
	return cells
}
