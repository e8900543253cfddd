package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/register"
	"github.com/trezcool/darasa/core/roster"
)

// upstream is a fake platform API built the way our own servers are.
type upstream struct {
	e *echo.Echo

	hierarchy   map[string]interface{}
	record      map[string]interface{}
	students    []map[string]interface{}
	staffEvents []map[string]interface{}
	registers   map[string]interface{}

	lastQuery map[string]string
	lastBody  []byte
	lastAuth  string
}

func newUpstream() *upstream {
	up := &upstream{e: echo.New()}
	capture := func(ctx echo.Context) {
		up.lastAuth = ctx.Request().Header.Get("Authorization")
		up.lastQuery = map[string]string{}
		for key, vals := range ctx.QueryParams() {
			up.lastQuery[key] = vals[0]
		}
	}
	respond := func(ctx echo.Context, body map[string]interface{}) error {
		capture(ctx)
		if body == nil {
			return ctx.NoContent(http.StatusNotFound)
		}
		return ctx.JSON(http.StatusOK, body)
	}

	up.e.GET("/course-catalog/batch/:batchId", func(ctx echo.Context) error {
		return respond(ctx, up.hierarchy)
	})
	up.e.GET("/attendance/course/:courseId/year/:year", func(ctx echo.Context) error {
		return respond(ctx, up.record)
	})
	up.e.GET("/attendance/course/:courseId/year/:year/section/:section", func(ctx echo.Context) error {
		capture(ctx)
		return ctx.JSON(http.StatusOK, up.students)
	})
	up.e.GET("/staff/:staffId/attendance", func(ctx echo.Context) error {
		capture(ctx)
		return ctx.JSON(http.StatusOK, up.staffEvents)
	})
	up.e.GET("/attendance/register", func(ctx echo.Context) error {
		return respond(ctx, up.registers)
	}) // nil seed doubles as the upstream's 404
	upsert := func(ctx echo.Context) error {
		capture(ctx)
		var body json.RawMessage
		if err := ctx.Bind(&body); err != nil {
			return err
		}
		up.lastBody = body
		return ctx.NoContent(http.StatusNoContent)
	}
	up.e.POST("/attendance", upsert)
	up.e.PUT("/attendance", upsert)
	return up
}

func setup(t *testing.T) (*Client, *upstream) {
	up := newUpstream()
	srv := httptest.NewServer(up.e)
	t.Cleanup(srv.Close)

	conf := &core.Config{APIBaseURL: srv.URL, HTTPTimeout: 5 * time.Second}
	return NewClient(conf, "test-token", nil), up
}

func TestClient_fetchHierarchy(t *testing.T) {
	client, up := setup(t)
	up.hierarchy = map[string]interface{}{
		"courses": []map[string]interface{}{
			{"id": "c-1", "name": "Grade 5", "years": []map[string]interface{}{
				{"name": "2024-25", "sections": []map[string]interface{}{{"name": "A"}}},
			}},
		},
	}

	hier, err := client.FetchHierarchy(context.Background(), "batch-1")
	if err != nil {
		t.Fatalf("FetchHierarchy() error = %v", err)
	}
	assert.Equal(t, "Bearer test-token", up.lastAuth)
	assert.Equal(t, "batch-1", hier.BatchID)
	if assert.Len(t, hier.Courses, 1) {
		assert.Equal(t, "Grade 5", hier.Courses[0].Name)
		assert.Len(t, hier.Courses[0].Years, 1)
	}
}

func TestClient_fetchHierarchy_notFound(t *testing.T) {
	client, up := setup(t)
	up.hierarchy = nil

	_, err := client.FetchHierarchy(context.Background(), "nope")
	assert.Equal(t, catalog.ErrNotFound, err)
}

func TestClient_fetchDailyRecord(t *testing.T) {
	client, up := setup(t)
	up.record = map[string]interface{}{
		"id": "rec-1",
		"entries": []map[string]interface{}{
			{"student_id": "st-1", "roll_number": "7", "name": "A. Mwangi", "present": false, "remarks": "sick"},
		},
	}

	scope := catalog.Scope{CourseID: "c-1", Year: "2024-25", Section: "B"}
	rec, err := client.FetchDailyRecord(context.Background(), scope, "2025-03-10")
	if err != nil {
		t.Fatalf("FetchDailyRecord() error = %v", err)
	}
	assert.Equal(t, "2025-03-10", up.lastQuery["date"])
	assert.Equal(t, "B", up.lastQuery["section"])
	assert.Equal(t, "rec-1", rec.ID)
	if assert.Len(t, rec.Entries, 1) {
		assert.False(t, rec.Entries[0].Present)
		assert.Equal(t, "sick", rec.Entries[0].Remarks)
	}
}

func TestClient_fetchDailyRecord_absent(t *testing.T) {
	client, up := setup(t)

	scope := catalog.Scope{CourseID: "c-1", Year: "2024-25"}

	// 404 from upstream
	up.record = nil
	_, err := client.FetchDailyRecord(context.Background(), scope, "2025-03-10")
	assert.Equal(t, roster.ErrRecordNotFound, err)

	// hollow 200 body
	up.record = map[string]interface{}{}
	_, err = client.FetchDailyRecord(context.Background(), scope, "2025-03-10")
	assert.Equal(t, roster.ErrRecordNotFound, err)
}

func TestClient_fetchStudents(t *testing.T) {
	client, up := setup(t)
	up.students = []map[string]interface{}{
		{"id": "st-1", "roll_number": "1", "name": "A. Mwangi", "father_name": "J. Mwangi"},
		{"id": "st-2", "roll_number": "2", "name": "B. Otieno"},
	}

	scope := catalog.Scope{CourseID: "c-1", Year: "2024-25"} // no section: year-wide roster
	students, err := client.FetchStudents(context.Background(), scope, "batch-1")
	if err != nil {
		t.Fatalf("FetchStudents() error = %v", err)
	}
	assert.Equal(t, "batch-1", up.lastQuery["batchId"])
	if assert.Len(t, students, 2) {
		assert.Equal(t, "J. Mwangi", students[0].FatherName)
	}
}

func TestClient_upserts(t *testing.T) {
	client, up := setup(t)
	scope := catalog.Scope{CourseID: "c-1", Year: "2024-25"}
	upsert := roster.Upsert{
		IdempotencyKey: "key-1",
		Scope:          scope,
		BatchID:        "batch-1",
		Date:           "2025-03-10",
		Entries:        []roster.Entry{{StudentID: "st-1", Present: true}, {StudentID: "st-2"}},
	}

	if err := client.CreateDailyRecord(context.Background(), upsert); err != nil {
		t.Fatalf("CreateDailyRecord() error = %v", err)
	}
	var created upsertBody
	if err := json.Unmarshal(up.lastBody, &created); err != nil {
		t.Fatalf("decoding create body: %v", err)
	}
	assert.Empty(t, created.ID)
	assert.Equal(t, "key-1", created.IdempotencyKey)
	assert.Equal(t, "c-1", created.CourseID)
	assert.Len(t, created.Entries, 2)
	assert.False(t, created.Entries[1].Present)

	upsert.ID = "rec-1"
	if err := client.UpdateDailyRecord(context.Background(), upsert); err != nil {
		t.Fatalf("UpdateDailyRecord() error = %v", err)
	}
	var updated upsertBody
	if err := json.Unmarshal(up.lastBody, &updated); err != nil {
		t.Fatalf("decoding update body: %v", err)
	}
	assert.Equal(t, "rec-1", updated.ID)
}

func TestClient_fetchStaffEvents(t *testing.T) {
	client, up := setup(t)
	up.staffEvents = []map[string]interface{}{
		{"staff_id": "s-1", "date": "2025-03-10T00:00:00", "status": "p", "in_time": "08:00"},
		{"staff_id": "s-1", "date": "2025-03-11", "holiday": true},
	}

	events, err := client.FetchStaffEvents(context.Background(), "s-1", "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("FetchStaffEvents() error = %v", err)
	}
	assert.Equal(t, "2025-03-01", up.lastQuery["startDate"])
	assert.Equal(t, "2025-03-31", up.lastQuery["endDate"])
	if assert.Len(t, events, 2) {
		// date trimmed to its day key, status token parsed
		assert.Equal(t, "2025-03-10", events[0].Date)
		assert.Equal(t, register.StatusPresent, events[0].Status)
		assert.True(t, events[1].Holiday)
	}
}

func TestClient_fetchStudentRegister(t *testing.T) {
	client, up := setup(t)
	up.registers = map[string]interface{}{
		"rows": []map[string]interface{}{
			{"student_name": "A. Mwangi", "roll_number": "7", "total_days": 31, "total_present": 20, "total_absent": 5,
				"days": []map[string]interface{}{{"day": 1, "status": "P"}}},
		},
	}

	scope := catalog.Scope{CourseID: "c-1", Year: "2024-25", Section: "A"}
	rows, err := client.FetchStudentRegister(context.Background(), scope, 2025, time.March)
	if err != nil {
		t.Fatalf("FetchStudentRegister() error = %v", err)
	}
	assert.Equal(t, "3", up.lastQuery["month"])
	assert.Equal(t, "2025", up.lastQuery["calendarYear"])
	assert.Equal(t, "A", up.lastQuery["section"])
	if assert.Len(t, rows, 1) {
		assert.Equal(t, 20, rows[0].TotalPresent)
	}
}

func TestClient_sessionExpiry(t *testing.T) {
	e := echo.New()
	e.Any("/*", func(ctx echo.Context) error { return ctx.NoContent(http.StatusUnauthorized) })
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	client := NewClient(&core.Config{APIBaseURL: srv.URL, HTTPTimeout: time.Second}, "stale", nil)
	_, err := client.FetchHierarchy(context.Background(), "batch-1")
	assert.Equal(t, core.ErrSessionExpired, err)
}

func TestClient_serverErrorIsWrapped(t *testing.T) {
	e := echo.New()
	e.Any("/*", func(ctx echo.Context) error { return ctx.NoContent(http.StatusInternalServerError) })
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	client := NewClient(&core.Config{APIBaseURL: srv.URL, HTTPTimeout: time.Second}, "", nil)
	_, err := client.FetchStaffEvents(context.Background(), "s-1", "2025-03-01", "2025-03-31")
	if err == nil {
		t.Fatal("FetchStaffEvents() returned nil error on 500")
	}
	assert.Contains(t, err.Error(), "500")
}
