package register

import "time"

// Aggregate reduces a month of cells into totals. Holiday and Unmarked days
// count toward TotalDays but toward neither Present nor Absent.
func Aggregate(cells []DayCell) Summary {
	sum := Summary{TotalDays: len(cells)}
	for _, cell := range cells {
		switch cell.Status {
		case StatusPresent:
			sum.TotalPresent++
		case StatusAbsent:
			sum.TotalAbsent++
		}
	}
	return sum
}

// BuildRow reconciles one person's raw events into a register row for the
// given month and aggregates it (the client-side path).
func BuildRow(person Person, events []Event, year int, month time.Month) Row {
	cells := MonthCells(events, year, month)
	return Row{
		PersonName: person.Name,
		RollNumber: person.Code,
		Cells:      cells,
		Summary:    Aggregate(cells),
	}
}

// RowFromServer converts one pre-aggregated row verbatim: day statuses are
// parsed from their wire tokens and the server's totals are copied through,
// never recomputed. The two paths are not interchangeable; see the service.
func RowFromServer(sr ServerRow) Row {
	cells := make([]DayCell, 0, len(sr.Days))
	for _, day := range sr.Days {
		cells = append(cells, DayCell{Day: day.Day, Status: ParseStatus(day.Status)})
	}
	return Row{
		PersonName: sr.StudentName,
		RollNumber: sr.RollNumber,
		Cells:      cells,
		Summary: Summary{
			TotalPresent: sr.TotalPresent,
			TotalAbsent:  sr.TotalAbsent,
			TotalDays:    sr.TotalDays,
		},
	}
}
