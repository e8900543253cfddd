// Package roster drives the daily add/edit attendance flow: fetch an
// existing day record or synthesize one from the student roster, edit it in
// memory, then upsert it whole.
package roster

import (
	"context"
	"errors"

	"github.com/trezcool/darasa/core/catalog"
)

var (
	// errors
	ErrRecordNotFound = errors.New("no attendance record for this day")
	ErrNoStudents     = errors.New("no students found for this scope")
	ErrNoScope        = errors.New("select a course, year and date first")
	ErrNoRoster       = errors.New("no roster loaded")
	ErrSaveInFlight   = errors.New("a save is already in flight")
	ErrBadIndex       = errors.New("roster entry index out of range")
)

type (
	// Student is one row of the raw class roster.
	Student struct {
		ID         string `json:"id"`
		RollNumber string `json:"roll_number"`
		Name       string `json:"name"`
		FatherName string `json:"father_name"`
	}

	// Entry is one student's editable line of the daily roster form.
	// Present and Remarks mutate in memory; nothing round-trips per edit.
	Entry struct {
		StudentID  string `json:"student_id" validate:"required"`
		RollNumber string `json:"roll_number"`
		Name       string `json:"name"`
		FatherName string `json:"father_name"`
		Present    bool   `json:"present"`
		Remarks    string `json:"remarks"`
	}

	// Record is one persisted single-day attendance record.
	Record struct {
		ID      string  `json:"id"`
		Date    string  `json:"date"`
		Entries []Entry `json:"entries"`
	}

	// Upsert is the full-roster save payload. The record ID decides
	// create vs. update; the idempotency key lets the server drop an
	// accidental duplicate submission.
	Upsert struct {
		ID             string        `json:"id,omitempty"`
		IdempotencyKey string        `json:"idempotency_key" validate:"required"`
		Scope          catalog.Scope `json:"scope"`
		BatchID        string        `json:"batch_id" validate:"required"`
		Date           string        `json:"date" validate:"required,daykey"`
		Entries        []Entry       `json:"entries" validate:"min=1,dive"`
	}

	Gateway interface {
		// FetchDailyRecord returns the existing record for (scope, date),
		// or ErrRecordNotFound.
		FetchDailyRecord(ctx context.Context, scope catalog.Scope, date string) (Record, error)
		// FetchStudents returns the raw class roster for the scope.
		FetchStudents(ctx context.Context, scope catalog.Scope, batchID string) ([]Student, error)
		CreateDailyRecord(ctx context.Context, up Upsert) error
		UpdateDailyRecord(ctx context.Context, up Upsert) error
	}
)

// newEntry synthesizes the default roster line for a student: present, no
// remarks.
func newEntry(st Student) Entry {
	return Entry{
		StudentID:  st.ID,
		RollNumber: st.RollNumber,
		Name:       st.Name,
		FatherName: st.FatherName,
		Present:    true,
	}
}
