// Package calendar derives dense month grids from (year, month) pairs.
// It is pure computation: the register and roster packages window their
// sparse attendance events onto the grids built here.
package calendar

import (
	"fmt"
	"time"
)

// DaySlot is one renderable cell of a month grid.
type DaySlot struct {
	Day int    // 1..days-in-month
	Key string // day key, YYYY-MM-DD
}

// DaysIn returns the number of days in the given month.
// "Day 0 of the next month" is the last day of this one; leap years fall out
// of time.Date's normalization.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DayKey renders the canonical key used to match sparse events to grid cells.
func DayKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// ParseDayKey parses a day key back into a UTC midnight timestamp.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}

// BuildGrid returns the slots of a month grid in render order: one nil slot
// per weekday preceding the 1st (Sunday-first), then one slot per day.
// No trailing padding; row wrapping is a layout concern downstream.
func BuildGrid(year int, month time.Month) []*DaySlot {
	firstWeekday := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	days := DaysIn(year, month)

	grid := make([]*DaySlot, 0, firstWeekday+days)
	for i := 0; i < firstWeekday; i++ {
		grid = append(grid, nil)
	}
	for day := 1; day <= days; day++ {
		grid = append(grid, &DaySlot{Day: day, Key: DayKey(year, month, day)})
	}
	return grid
}

// MonthBounds returns the first and last day keys of the given month,
// the window used when fetching raw attendance events.
func MonthBounds(year int, month time.Month) (start, end string) {
	return DayKey(year, month, 1), DayKey(year, month, DaysIn(year, month))
}
