// Package dummygw is an in-memory gateway used by tests and the CLI's
// offline mode.
package dummygw

import (
	"context"
	"sync"
	"time"

	"github.com/trezcool/darasa/core/catalog"
	"github.com/trezcool/darasa/core/register"
	"github.com/trezcool/darasa/core/roster"
)

type (
	scopeKey struct {
		courseID string
		year     string
		section  string
	}

	recordKey struct {
		scope scopeKey
		date  string
	}

	registerKey struct {
		scope scopeKey
		year  int
		month time.Month
	}

	// Gateway implements every engine gateway over in-memory tables.
	Gateway struct {
		sync.RWMutex
		hierarchies map[string]catalog.Hierarchy
		students    map[scopeKey][]roster.Student
		records     map[recordKey]roster.Record
		staffEvents map[string][]register.Event
		registers   map[registerKey][]register.ServerRow

		// capture for assertions
		Created []roster.Upsert
		Updated []roster.Upsert
	}
)

var (
	_ catalog.Gateway  = (*Gateway)(nil) // interface compliance checks
	_ roster.Gateway   = (*Gateway)(nil)
	_ register.Gateway = (*Gateway)(nil)
)

func Open() *Gateway {
	return &Gateway{
		hierarchies: make(map[string]catalog.Hierarchy),
		students:    make(map[scopeKey][]roster.Student),
		records:     make(map[recordKey]roster.Record),
		staffEvents: make(map[string][]register.Event),
		registers:   make(map[registerKey][]register.ServerRow),
	}
}

func keyOf(scope catalog.Scope) scopeKey {
	return scopeKey{courseID: scope.CourseID, year: scope.Year, section: scope.Section}
}

// seeding

func (gw *Gateway) AddHierarchy(hier catalog.Hierarchy) {
	gw.Lock()
	defer gw.Unlock()
	gw.hierarchies[hier.BatchID] = hier
}

func (gw *Gateway) AddStudents(scope catalog.Scope, students ...roster.Student) {
	gw.Lock()
	defer gw.Unlock()
	gw.students[keyOf(scope)] = append(gw.students[keyOf(scope)], students...)
}

func (gw *Gateway) AddRecord(scope catalog.Scope, rec roster.Record) {
	gw.Lock()
	defer gw.Unlock()
	gw.records[recordKey{scope: keyOf(scope), date: rec.Date}] = rec
}

func (gw *Gateway) AddStaffEvents(staffID string, events ...register.Event) {
	gw.Lock()
	defer gw.Unlock()
	gw.staffEvents[staffID] = append(gw.staffEvents[staffID], events...)
}

func (gw *Gateway) AddRegister(scope catalog.Scope, year int, month time.Month, rows ...register.ServerRow) {
	key := registerKey{scope: keyOf(scope), year: year, month: month}
	gw.Lock()
	defer gw.Unlock()
	gw.registers[key] = append(gw.registers[key], rows...)
}

// catalog.Gateway

func (gw *Gateway) FetchHierarchy(ctx context.Context, batchID string) (catalog.Hierarchy, error) {
	gw.RLock()
	defer gw.RUnlock()
	hier, ok := gw.hierarchies[batchID]
	if !ok {
		return catalog.Hierarchy{}, catalog.ErrNotFound
	}
	return hier, nil
}

// roster.Gateway

func (gw *Gateway) FetchDailyRecord(ctx context.Context, scope catalog.Scope, date string) (roster.Record, error) {
	gw.RLock()
	defer gw.RUnlock()
	rec, ok := gw.records[recordKey{scope: keyOf(scope), date: date}]
	if !ok {
		return roster.Record{}, roster.ErrRecordNotFound
	}
	return rec, nil
}

func (gw *Gateway) FetchStudents(ctx context.Context, scope catalog.Scope, batchID string) ([]roster.Student, error) {
	gw.RLock()
	defer gw.RUnlock()
	return gw.students[keyOf(scope)], nil
}

func (gw *Gateway) CreateDailyRecord(ctx context.Context, up roster.Upsert) error {
	gw.Lock()
	defer gw.Unlock()
	gw.Created = append(gw.Created, up)
	gw.records[recordKey{scope: keyOf(up.Scope), date: up.Date}] = roster.Record{
		ID:      "rec-" + up.IdempotencyKey,
		Date:    up.Date,
		Entries: up.Entries,
	}
	return nil
}

func (gw *Gateway) UpdateDailyRecord(ctx context.Context, up roster.Upsert) error {
	gw.Lock()
	defer gw.Unlock()
	gw.Updated = append(gw.Updated, up)
	gw.records[recordKey{scope: keyOf(up.Scope), date: up.Date}] = roster.Record{
		ID:      up.ID,
		Date:    up.Date,
		Entries: up.Entries,
	}
	return nil
}

// register.Gateway

func (gw *Gateway) FetchStaffEvents(ctx context.Context, staffID, start, end string) ([]register.Event, error) {
	gw.RLock()
	defer gw.RUnlock()
	var events []register.Event
	for _, ev := range gw.staffEvents[staffID] {
		if ev.Date >= start && ev.Date <= end { // day keys sort lexically
			events = append(events, ev)
		}
	}
	return events, nil
}

func (gw *Gateway) FetchStudentRegister(ctx context.Context, scope catalog.Scope, year int, month time.Month) ([]register.ServerRow, error) {
	gw.RLock()
	defer gw.RUnlock()
	return gw.registers[registerKey{scope: keyOf(scope), year: year, month: month}], nil
}
