package calendar

import (
	"time"

	"github.com/clinicops/backoffice/internal/backend"
)

// GridSize is the fixed cell count of a month view: six rows of seven days,
// regardless of how many rows the month actually needs.
const GridSize = 42

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Cell is one position in the 42-cell month grid. Cells borrowed from the
// adjacent months have InMonth=false and never carry entries.
type Cell struct {
	DayNumber int                     `json:"day_number"`
	InMonth   bool                    `json:"in_month"`
	Date      string                  `json:"date"`
	Entries   []backend.ScheduleEntry `json:"entries,omitempty"`
}

// mondayIndex remaps Go's Sunday-first weekday so Monday=0 … Sunday=6.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// DayKey normalizes a backend date value to its "2006-01-02" calendar day in
// loc. Entries are bucketed by this key rather than by instant comparison, so
// a timezone shift in the raw value cannot push an entry onto the wrong day.
func DayKey(raw string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc).Format("2006-01-02")
	}
	return raw
}

// BuildGrid produces the 42-cell grid for m. Entries must already be filtered
// to the relevant location and person type; filtering is the caller's job.
// The grid starts on Monday: leading cells come from the previous month,
// trailing cells pad out the remainder from the next month.
func BuildGrid(m Month, entries []backend.ScheduleEntry, loc *time.Location) []Cell {
	if loc == nil {
		loc = time.UTC
	}

	byDay := make(map[string][]backend.ScheduleEntry, len(entries))
	for _, e := range entries {
		key := DayKey(e.Date, loc)
		byDay[key] = append(byDay[key], e)
	}

	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := mondayIndex(first.Weekday())

	cells := make([]Cell, 0, GridSize)

	// Leading cells: the previous month's last days, counting backward.
	for i := offset; i > 0; i-- {
		d := first.AddDate(0, 0, -i)
		cells = append(cells, Cell{
			DayNumber: d.Day(),
			InMonth:   false,
			Date:      d.Format("2006-01-02"),
		})
	}

	for day := 1; day <= daysInMonth; day++ {
		d := time.Date(m.Year, m.Month, day, 0, 0, 0, 0, loc)
		key := d.Format("2006-01-02")
		cells = append(cells, Cell{
			DayNumber: day,
			InMonth:   true,
			Date:      key,
			Entries:   byDay[key],
		})
	}

	// Trailing cells: next month's first days, up to exactly 42.
	last := time.Date(m.Year, m.Month, daysInMonth, 0, 0, 0, 0, loc)
	for i := 1; len(cells) < GridSize; i++ {
		d := last.AddDate(0, 0, i)
		cells = append(cells, Cell{
			DayNumber: d.Day(),
			InMonth:   false,
			Date:      d.Format("2006-01-02"),
		})
	}

	return cells
}
