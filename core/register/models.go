// Package register turns sparse per-date attendance events into dense month
// grids and aggregates them into present/absent totals.
package register

import (
	"context"
	"strings"
	"time"

	"github.com/trezcool/darasa/core/catalog"
)

// Status is the closed set of per-day attendance states. The wire speaks
// single-character tokens; parse at the boundary, never carry free-form
// strings inward.
type Status uint8

const (
	StatusUnmarked Status = iota
	StatusPresent
	StatusAbsent
	StatusLeave
	StatusHoliday
)

var statusNames = map[Status]string{
	StatusUnmarked: "unmarked",
	StatusPresent:  "present",
	StatusAbsent:   "absent",
	StatusLeave:    "leave",
	StatusHoliday:  "holiday",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unmarked"
}

// Mark renders the register-cell glyph for s. Unmarked days render as "-" and
// are counted in neither total.
func (s Status) Mark() string {
	switch s {
	case StatusPresent:
		return "P"
	case StatusAbsent:
		return "A"
	case StatusLeave:
		return "L"
	case StatusHoliday:
		return "H"
	default:
		return "-"
	}
}

// ParseStatus maps a wire token ('P'/'A'/'L'/'H', any case) to a Status.
// Unknown or empty tokens are Unmarked.
func ParseStatus(token string) Status {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "P", "PRESENT":
		return StatusPresent
	case "A", "ABSENT":
		return StatusAbsent
	case "L", "LEAVE":
		return StatusLeave
	case "H", "HOLIDAY":
		return StatusHoliday
	default:
		return StatusUnmarked
	}
}

type (
	// Event is one raw attendance record for one person on one day.
	// The calendar path may carry several per day (one per period);
	// the register path carries at most one.
	Event struct {
		PersonID string `json:"person_id"`
		Date     string `json:"date" validate:"required,daykey"`
		Status   Status `json:"status"`
		Holiday  bool   `json:"holiday"`
		InTime   string `json:"in_time"`
		OutTime  string `json:"out_time"`
		Remarks  string `json:"remarks"`
	}

	// DayCell is one reconciled cell of a month register. Never mutated
	// after creation.
	DayCell struct {
		Day      int    `json:"day"`
		Status   Status `json:"status"`
		TimeText string `json:"time_text,omitempty"`
	}

	// Summary are the aggregate totals of one register row. TotalDays is
	// the length of the month, not the count of marked days.
	Summary struct {
		TotalPresent int `json:"total_present"`
		TotalAbsent  int `json:"total_absent"`
		TotalDays    int `json:"total_days"`
	}

	// Row is one person's month of the register.
	Row struct {
		PersonName string    `json:"person_name"`
		RollNumber string    `json:"roll_number"`
		Cells      []DayCell `json:"cells"`
		Summary
	}

	// ServerDay and ServerRow mirror the pre-aggregated register endpoint
	// verbatim; their statuses and totals are trusted, not recomputed.
	ServerDay struct {
		Day    int    `json:"day"`
		Status string `json:"status"`
	}

	ServerRow struct {
		StudentName  string      `json:"student_name"`
		RollNumber   string      `json:"roll_number"`
		Days         []ServerDay `json:"days"`
		TotalDays    int         `json:"total_days"`
		TotalPresent int         `json:"total_present"`
		TotalAbsent  int         `json:"total_absent"`
	}

	// Person identifies the single subject of a staff register row.
	Person struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Code string `json:"code"`
	}

	Gateway interface {
		// FetchStaffEvents returns raw per-day events within [start, end]
		// day keys, at most one per day.
		FetchStaffEvents(ctx context.Context, staffID, start, end string) ([]Event, error)
		// FetchStudentRegister returns rows the server already reconciled
		// and aggregated.
		FetchStudentRegister(ctx context.Context, scope catalog.Scope, year int, month time.Month) ([]ServerRow, error)
	}
)

// timeText renders the cell's in/out annotation; empty when the event
// carries no times.
func (e Event) timeText() string {
	in, out := strings.TrimSpace(e.InTime), strings.TrimSpace(e.OutTime)
	switch {
	case in != "" && out != "":
		return in + " - " + out
	case in != "":
		return in
	default:
		return out
	}
}

// hasTime reports whether the event carries a non-empty in-time or out-time,
// the register's presence criterion.
func (e Event) hasTime() bool {
	return strings.TrimSpace(e.InTime) != "" || strings.TrimSpace(e.OutTime) != ""
}
