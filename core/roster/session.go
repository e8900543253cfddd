package roster

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/catalog"
)

// State is the session's lifecycle position.
type State uint8

const (
	StateIdle State = iota
	StateFetching
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateLoaded:
		return "loaded"
	default:
		return "idle"
	}
}

// Session owns one daily-roster screen's state: Idle until a scope and date
// are set, Fetching during View, Loaded while the roster is editable, back
// to Idle on any scope change or successful save.
//
// Every scope change bumps an internal generation; a fetch that resolves
// under an old generation is discarded, so a slow response can never
// overwrite a newer selection. Save holds a single-flight guard and stamps
// the payload with an idempotency key, so double submission cannot create
// duplicate records.
type Session struct {
	gw      Gateway
	log     core.Logger
	batchID string

	mu       sync.Mutex
	state    State
	scope    catalog.Scope
	date     string
	gen      uint64
	recordID string
	entries  []Entry
	saving   bool
}

func NewSession(gw Gateway, batchID string, log core.Logger) *Session {
	return &Session{gw: gw, log: log, batchID: batchID}
}

// SetScope targets the session at (scope, date), discarding any loaded
// roster and returning the session to Idle.
func (s *Session) SetScope(scope catalog.Scope, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = scope
	s.date = date
	s.reset()
}

// Reset discards everything and returns to Idle with no scope.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scope = catalog.Scope{}
	s.date = ""
	s.reset()
}

// reset drops loaded data and invalidates in-flight fetches. mu must be held.
func (s *Session) reset() {
	s.state = StateIdle
	s.recordID = ""
	s.entries = nil
	s.gen++
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RecordID returns the adopted record identifier, empty when the roster was
// synthesized and a save would create.
func (s *Session) RecordID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordID
}

// Entries returns a copy of the roster; edits go through ToggleAttendance
// and UpdateRemarks.
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// View performs fetch-or-initialize for the targeted day:
//  1. adopt the existing record verbatim when it has entries, remembering
//     its identifier for update;
//  2. otherwise synthesize one entry per roster student, all present;
//  3. when neither yields students, return ErrNoStudents and stay Idle —
//     an empty day is a notice, not a failure.
func (s *Session) View(ctx context.Context) error {
	s.mu.Lock()
	if s.scope.CourseID == "" || s.scope.Year == "" || s.date == "" {
		s.mu.Unlock()
		return core.NewValidationError(ErrNoScope)
	}
	scope, date, gen := s.scope, s.date, s.gen
	s.state = StateFetching
	s.mu.Unlock()

	entries, recordID, err := s.fetchOrInit(ctx, scope, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// selection changed while the fetch was in flight
		return core.ErrStaleRequest
	}
	if err != nil {
		// prior state stays untouched beyond dropping the flag
		s.state = StateIdle
		return err
	}
	if len(entries) == 0 {
		s.state = StateIdle
		return ErrNoStudents
	}
	s.state = StateLoaded
	s.recordID = recordID
	s.entries = entries
	return nil
}

func (s *Session) fetchOrInit(ctx context.Context, scope catalog.Scope, date string) ([]Entry, string, error) {
	record, err := s.gw.FetchDailyRecord(ctx, scope, date)
	switch {
	case err == nil && len(record.Entries) > 0:
		// adopt verbatim: existing present/absent/remarks are preserved
		return record.Entries, record.ID, nil
	case err != nil && err != ErrRecordNotFound:
		return nil, "", err
	}

	students, err := s.gw.FetchStudents(ctx, scope, s.batchID)
	if err != nil {
		return nil, "", err
	}
	entries := make([]Entry, 0, len(students))
	for _, st := range students {
		entries = append(entries, newEntry(st))
	}
	return entries, "", nil
}

// ToggleAttendance sets the present flag of the entry at idx.
func (s *Session) ToggleAttendance(idx int, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoaded {
		return ErrNoRoster
	}
	if idx < 0 || idx >= len(s.entries) {
		return ErrBadIndex
	}
	s.entries[idx].Present = present
	return nil
}

// UpdateRemarks sets the remarks of the entry at idx.
func (s *Session) UpdateRemarks(idx int, remarks string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoaded {
		return ErrNoRoster
	}
	if idx < 0 || idx >= len(s.entries) {
		return ErrBadIndex
	}
	s.entries[idx].Remarks = remarks
	return nil
}

// Save upserts the whole roster: update when a record identifier was
// adopted, create otherwise. On success the session resets its scope; the
// roster must be re-fetched to edit again. On failure loaded state is kept.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoaded {
		s.mu.Unlock()
		return ErrNoRoster
	}
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	s.saving = true
	up := Upsert{
		ID:             s.recordID,
		IdempotencyKey: uuid.New().String(),
		Scope:          s.scope,
		BatchID:        s.batchID,
		Date:           s.date,
		Entries:        make([]Entry, len(s.entries)),
	}
	copy(up.Entries, s.entries)
	s.mu.Unlock()

	err := s.save(ctx, up)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		if s.log != nil && !core.IsValidationError(err) {
			s.log.Error("saving daily attendance", err, map[string]interface{}{"date": up.Date})
		}
		return err
	}
	s.scope = catalog.Scope{}
	s.date = ""
	s.reset()
	return nil
}

func (s *Session) save(ctx context.Context, up Upsert) error {
	if err := core.Validate.Struct(up); err != nil {
		return err
	}
	if up.ID != "" {
		return s.gw.UpdateDailyRecord(ctx, up)
	}
	return s.gw.CreateDailyRecord(ctx, up)
}
