package httpapi

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/register"
)

var _ register.Gateway = (*Client)(nil) // interface compliance check

// staffEvent is the raw wire shape of one staff attendance event. Status
// arrives as a single-character token and the date may carry a time
// component; both are normalized before crossing into the core.
type staffEvent struct {
	StaffID string `json:"staff_id"`
	Date    string `json:"date"`
	Status  string `json:"status"`
	Holiday bool   `json:"holiday"`
	InTime  string `json:"in_time"`
	OutTime string `json:"out_time"`
	Remarks string `json:"remarks"`
}

func (c *Client) FetchStaffEvents(ctx context.Context, staffID, start, end string) ([]register.Event, error) {
	query := url.Values{"startDate": {start}, "endDate": {end}}

	var wire []staffEvent
	err := c.get(ctx, "/staff/"+url.PathEscape(staffID)+"/attendance", query, &wire)
	if err == errNotFound {
		return nil, nil // an unknown staff member has no events
	}
	if err != nil {
		return nil, err
	}

	events := make([]register.Event, 0, len(wire))
	for _, ev := range wire {
		events = append(events, register.Event{
			PersonID: ev.StaffID,
			Date:     dayKeyOf(ev.Date),
			Status:   register.ParseStatus(ev.Status),
			Holiday:  ev.Holiday,
			InTime:   ev.InTime,
			OutTime:  ev.OutTime,
			Remarks:  ev.Remarks,
		})
	}
	return events, nil
}

func (c *Client) FetchStudentRegister(ctx context.Context, scope catalog.Scope, year int, month time.Month) ([]register.ServerRow, error) {
	query := url.Values{
		"courseId":     {scope.CourseID},
		"year":         {scope.Year},
		"month":        {strconv.Itoa(int(month))},
		"calendarYear": {strconv.Itoa(year)},
	}
	if scope.Section != "" {
		query.Set("section", scope.Section)
	}

	var res struct {
		Rows []register.ServerRow `json:"rows"`
	}
	err := c.get(ctx, "/attendance/register", query, &res)
	if err == errNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// dayKeyOf trims a wire date down to its day key; some endpoints append a
// time component.
func dayKeyOf(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
