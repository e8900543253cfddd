package register

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/catalog"
)

type (
	// CalendarDay is one slot of the plain attendance calendar: the grid
	// slot (nil for leading blanks) plus the reconciled status, if any.
	CalendarDay struct {
		Slot      *calendar.DaySlot `json:"slot"`
		Status    Status            `json:"status"`
		HasStatus bool              `json:"has_status"`
	}

	// Service assembles the three monthly views. The staff paths reconcile
	// raw events locally; the student path trusts server-side aggregation.
	// No endpoint serves staff registers pre-aggregated, so the asymmetry
	// stands (see DESIGN.md).
	Service struct {
		gw Gateway
	}
)

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// StaffRegister fetches one staff member's raw events for the month and
// reconciles and aggregates them client-side.
func (svc *Service) StaffRegister(ctx context.Context, staff Person, year int, month time.Month) (Row, error) {
	start, end := calendar.MonthBounds(year, month)
	events, err := svc.gw.FetchStaffEvents(ctx, staff.ID, start, end)
	if err != nil {
		return Row{}, err
	}
	return BuildRow(staff, events, year, month), nil
}

// StaffCalendar builds the one-person attendance calendar: the month grid
// zipped with multi-event day statuses. Days without events carry no status.
func (svc *Service) StaffCalendar(ctx context.Context, staffID string, year int, month time.Month) ([]CalendarDay, error) {
	start, end := calendar.MonthBounds(year, month)
	events, err := svc.gw.FetchStaffEvents(ctx, staffID, start, end)
	if err != nil {
		return nil, err
	}
	statuses := DayStatuses(events)

	grid := calendar.BuildGrid(year, month)
	days := make([]CalendarDay, 0, len(grid))
	for _, slot := range grid {
		day := CalendarDay{Slot: slot}
		if slot != nil {
			day.Status, day.HasStatus = statuses[slot.Key]
		}
		days = append(days, day)
	}
	return days, nil
}

// StudentRegister fetches the server-pre-aggregated multi-student register
// and passes its rows through unchanged.
func (svc *Service) StudentRegister(ctx context.Context, scope catalog.Scope, year int, month time.Month) ([]Row, error) {
	serverRows, err := svc.gw.FetchStudentRegister(ctx, scope, year, month)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(serverRows))
	for _, sr := range serverRows {
		rows = append(rows, RowFromServer(sr))
	}
	return rows, nil
}
