package register

import (
	"time"

	"github.com/trezcool/darasa/core/calendar"
)

// Two reconciliation policies serve two distinct data shapes. The calendar
// screen receives several events per day (one per period) and resolves them
// by precedence; the month register receives at most one event per person
// per day and classifies it by holiday flag and recorded times. Keep them
// apart: their call sites feed them differently shaped fetches.

// calendarPrecedence orders same-day event statuses for the multi-event
// calendar: the first status present among a day's events wins.
var calendarPrecedence = []Status{StatusHoliday, StatusAbsent, StatusLeave, StatusPresent}

// DayStatuses reconciles multi-event calendar data (one person, any number
// of events per day) into at most one status per day key. Days without
// events get no entry; the calendar renders those as bare day numbers.
func DayStatuses(events []Event) map[string]Status {
	byDay := make(map[string]map[Status]bool)
	for _, ev := range events {
		set, ok := byDay[ev.Date]
		if !ok {
			set = make(map[Status]bool)
			byDay[ev.Date] = set
		}
		status := ev.Status
		if ev.Holiday {
			status = StatusHoliday
		}
		set[status] = true
	}

	statuses := make(map[string]Status, len(byDay))
	for day, set := range byDay {
		for _, status := range calendarPrecedence {
			if set[status] {
				statuses[day] = status
				break
			}
		}
	}
	return statuses
}

// MonthCells reconciles single-event-per-day register data into one cell per
// day of the month:
//   - holiday override on the event ⇒ Holiday;
//   - event with an in-time or out-time ⇒ Present;
//   - event with neither ⇒ Absent;
//   - no event for that day key ⇒ Unmarked.
func MonthCells(events []Event, year int, month time.Month) []DayCell {
	byDay := make(map[string]Event, len(events))
	for _, ev := range events {
		byDay[ev.Date] = ev
	}

	days := calendar.DaysIn(year, month)
	cells := make([]DayCell, 0, days)
	for day := 1; day <= days; day++ {
		cell := DayCell{Day: day, Status: StatusUnmarked}
		if ev, ok := byDay[calendar.DayKey(year, month, day)]; ok {
			switch {
			case ev.Holiday:
				cell.Status = StatusHoliday
			case ev.hasTime():
				cell.Status = StatusPresent
				cell.TimeText = ev.timeText()
			default:
				cell.Status = StatusAbsent
			}
		}
		cells = append(cells, cell)
	}
	return cells
}
