package httpapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/roster"
)

var _ roster.Gateway = (*Client)(nil) // interface compliance check

// sectionAll is the path segment for a year-wide roster; the API treats it
// as "every section of the year".
const sectionAll = "all"

func (c *Client) FetchDailyRecord(ctx context.Context, scope catalog.Scope, date string) (roster.Record, error) {
	query := url.Values{"date": {date}}
	if scope.Section != "" {
		query.Set("section", scope.Section)
	}

	var rec roster.Record
	err := c.get(ctx, "/attendance/course/"+url.PathEscape(scope.CourseID)+"/year/"+url.PathEscape(scope.Year), query, &rec)
	if err == errNotFound {
		return roster.Record{}, roster.ErrRecordNotFound
	}
	if err != nil {
		return roster.Record{}, err
	}
	if rec.ID == "" && len(rec.Entries) == 0 {
		return roster.Record{}, roster.ErrRecordNotFound
	}
	return rec, nil
}

func (c *Client) FetchStudents(ctx context.Context, scope catalog.Scope, batchID string) ([]roster.Student, error) {
	section := scope.Section
	if section == "" {
		section = sectionAll
	}
	path := "/attendance/course/" + url.PathEscape(scope.CourseID) +
		"/year/" + url.PathEscape(scope.Year) +
		"/section/" + url.PathEscape(section)

	var students []roster.Student
	err := c.get(ctx, path, url.Values{"batchId": {batchID}}, &students)
	if err == errNotFound {
		return nil, nil // an unknown scope has no students, not an error
	}
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) CreateDailyRecord(ctx context.Context, up roster.Upsert) error {
	return c.do(ctx, http.MethodPost, "/attendance", nil, upsertPayload(up), nil)
}

func (c *Client) UpdateDailyRecord(ctx context.Context, up roster.Upsert) error {
	return c.do(ctx, http.MethodPut, "/attendance", nil, upsertPayload(up), nil)
}

// upsertBody flattens the scope into the wire shape the upsert endpoints
// expect.
type upsertBody struct {
	ID             string         `json:"id,omitempty"`
	IdempotencyKey string         `json:"idempotency_key"`
	CourseID       string         `json:"course_id"`
	Year           string         `json:"year"`
	Section        string         `json:"section,omitempty"`
	BatchID        string         `json:"batch_id"`
	Date           string         `json:"date"`
	Entries        []roster.Entry `json:"entries"`
}

func upsertPayload(up roster.Upsert) upsertBody {
	return upsertBody{
		ID:             up.ID,
		IdempotencyKey: up.IdempotencyKey,
		CourseID:       up.Scope.CourseID,
		Year:           up.Scope.Year,
		Section:        up.Scope.Section,
		BatchID:        up.BatchID,
		Date:           up.Date,
		Entries:        up.Entries,
	}
}
