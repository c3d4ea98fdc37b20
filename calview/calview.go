// Package calview derives the week-major day grid and prev/next navigation
// for a month view. Weeks start on Sunday. All calendar arithmetic leans on
// time.Date normalization rather than hand-rolled day counts.
package calview

import "time"

// Cell is one square of the month grid. Day is the day-of-month and InMonth
// is false for the leading/trailing cells borrowed from adjacent months.
type Cell struct {
	Day     int  `json:"day"`
	InMonth bool `json:"inMonth"`
}

// Month frames one month view: the full grid plus where prev/next point,
// with December/January rolling the year.
type Month struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"monthName"`
	Grid      []Cell `json:"grid"`
	PrevYear  int    `json:"prevYear"`
	PrevMonth int    `json:"prevMonth"`
	NextYear  int    `json:"nextYear"`
	NextMonth int    `json:"nextMonth"`
}

// Build lays out the grid for one month. Whole weeks only: the grid always
// starts on a Sunday and ends on a Saturday, so its length is a multiple
// of 7.
func Build(year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	grid := make([]Cell, 0, 42)
	// leading cells from the previous month
	for i := int(first.Weekday()); i > 0; i-- {
		grid = append(grid, Cell{Day: first.AddDate(0, 0, -i).Day()})
	}
	for d := 1; d <= last.Day(); d++ {
		grid = append(grid, Cell{Day: d, InMonth: true})
	}
	// trailing cells up to Saturday
	for i := 1; int(last.Weekday())+i <= 6; i++ {
		grid = append(grid, Cell{Day: i})
	}

	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)
	return Month{
		Year:      year,
		Month:     int(month),
		MonthName: month.String(),
		Grid:      grid,
		PrevYear:  prev.Year(),
		PrevMonth: int(prev.Month()),
		NextYear:  next.Year(),
		NextMonth: int(next.Month()),
	}
}

// Current returns the (year, month) a calendar redirect should land on for
// "now" as seen from the display zone.
func Current(now time.Time, loc *time.Location) (int, time.Month) {
	local := now.In(loc)
	return local.Year(), local.Month()
}
