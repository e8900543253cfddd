// Package catalog holds the course→year→section hierarchy and the cascading
// selection state machine that scopes every attendance fetch.
package catalog

import (
	"context"
	"errors"
)

var (
	// errors
	ErrNotFound = errors.New("course catalog not found")
	ErrNoCourse = errors.New("no course selected")
	ErrNoYear   = errors.New("no year selected")
	ErrNoScope  = errors.New("no attendance scope selected")
)

type (
	Section struct {
		Name string `json:"name"`
	}

	Year struct {
		Name     string    `json:"name"`
		Sections []Section `json:"sections"`
	}

	Course struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Years []Year `json:"years"`
	}

	// Hierarchy is an immutable catalog snapshot for one batch.
	// It is fetched whole and never mutated locally.
	Hierarchy struct {
		BatchID string   `json:"batch_id"`
		Courses []Course `json:"courses"`
	}

	Gateway interface {
		FetchHierarchy(ctx context.Context, batchID string) (Hierarchy, error)
	}
)

// Course returns the course at idx, reporting whether idx is in range.
func (h Hierarchy) Course(idx int) (Course, bool) {
	if idx < 0 || idx >= len(h.Courses) {
		return Course{}, false
	}
	return h.Courses[idx], true
}

// Years returns the years of the course at courseIdx, or an empty list when
// the index is out of range. It never panics.
func (h Hierarchy) Years(courseIdx int) []Year {
	course, ok := h.Course(courseIdx)
	if !ok {
		return nil
	}
	return course.Years
}

// Sections returns the sections of the year at (courseIdx, yearIdx), or an
// empty list when either index is out of range.
func (h Hierarchy) Sections(courseIdx, yearIdx int) []Section {
	years := h.Years(courseIdx)
	if yearIdx < 0 || yearIdx >= len(years) {
		return nil
	}
	return years[yearIdx].Sections
}

// Scope identifies one attendance register/roster target. Section may be
// empty: a year can itself be the attendance scope.
type Scope struct {
	CourseID string `json:"course_id" validate:"required"`
	Year     string `json:"year" validate:"required"`
	Section  string `json:"section"`
}

func (s Scope) IsZero() bool {
	return s.CourseID == "" && s.Year == "" && s.Section == ""
}
