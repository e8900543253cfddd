package catalog

// None marks an unselected cascade index.
const None = -1

// Token identifies one cascade generation. Every transition issues a new
// token; a fetch that resolves under an old token must be discarded instead
// of applied (see Cascade.Current).
type Token uint64

type Selection struct {
	CourseIndex  int
	YearIndex    int
	SectionIndex int
}

// Cascade is the (course, year, section) selection state machine.
// Invariants: YearIndex ≥ 0 ⇒ CourseIndex ≥ 0; SectionIndex ≥ 0 ⇒ YearIndex ≥ 0.
// Section stays optional even when a year is chosen.
//
// The cascade performs no I/O; screens wire their dependent fetches to the
// token it issues on each transition.
type Cascade struct {
	hier Hierarchy
	sel  Selection
	gen  Token
}

func NewCascade(hier Hierarchy) *Cascade {
	return &Cascade{
		hier: hier,
		sel:  Selection{CourseIndex: None, YearIndex: None, SectionIndex: None},
	}
}

// SelectCourse sets the course index and resets year and section.
// Data fetched under the previous selection is invalidated via the new token.
func (c *Cascade) SelectCourse(idx int) Token {
	c.sel = Selection{CourseIndex: idx, YearIndex: None, SectionIndex: None}
	return c.bump()
}

// SelectYear sets the year index and resets the section.
// It requires a selected course.
func (c *Cascade) SelectYear(idx int) (Token, error) {
	if c.sel.CourseIndex == None {
		return c.gen, ErrNoCourse
	}
	c.sel.YearIndex = idx
	c.sel.SectionIndex = None
	return c.bump(), nil
}

// SelectSection sets the section index. It requires a selected year.
func (c *Cascade) SelectSection(idx int) (Token, error) {
	if c.sel.YearIndex == None {
		return c.gen, ErrNoYear
	}
	c.sel.SectionIndex = idx
	return c.bump(), nil
}

// ClearSection unselects the section only; course and year stay put.
func (c *Cascade) ClearSection() Token {
	c.sel.SectionIndex = None
	return c.bump()
}

func (c *Cascade) bump() Token {
	c.gen++
	return c.gen
}

func (c *Cascade) Selection() Selection { return c.sel }

// Token returns the current generation without transitioning.
func (c *Cascade) Token() Token { return c.gen }

// Current reports whether t is still the live generation.
func (c *Cascade) Current(t Token) bool { return t == c.gen }

// Years lists the years of the selected course; empty when none is selected
// or the index ran off the catalog.
func (c *Cascade) Years() []Year {
	return c.hier.Years(c.sel.CourseIndex)
}

// Sections lists the sections of the selected year; empty when out of range.
func (c *Cascade) Sections() []Section {
	return c.hier.Sections(c.sel.CourseIndex, c.sel.YearIndex)
}

func (c *Cascade) Course() (Course, bool) {
	return c.hier.Course(c.sel.CourseIndex)
}

func (c *Cascade) Year() (Year, bool) {
	years := c.Years()
	if c.sel.YearIndex < 0 || c.sel.YearIndex >= len(years) {
		return Year{}, false
	}
	return years[c.sel.YearIndex], true
}

func (c *Cascade) Section() (Section, bool) {
	sections := c.Sections()
	if c.sel.SectionIndex < 0 || c.sel.SectionIndex >= len(sections) {
		return Section{}, false
	}
	return sections[c.sel.SectionIndex], true
}

// Scope resolves the current selection into a fetchable attendance scope.
// A course and year are required; the section is included when selected.
func (c *Cascade) Scope() (Scope, error) {
	course, ok := c.Course()
	if !ok {
		return Scope{}, ErrNoScope
	}
	year, ok := c.Year()
	if !ok {
		return Scope{}, ErrNoScope
	}
	scope := Scope{CourseID: course.ID, Year: year.Name}
	if section, ok := c.Section(); ok {
		scope.Section = section.Name
	}
	return scope, nil
}
