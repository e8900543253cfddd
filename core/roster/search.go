package roster

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/darasa/core"
)

// minimum similarity ratio for a fuzzy name candidate to count as a match
const searchMinRatio = 0.72

// Find returns the indices of loaded entries matching query, for the roster
// screen's find-student box. A case-insensitive substring match on name or
// roll number wins outright; otherwise near-matches on the name (typo
// tolerance) are included.
func (s *Session) Find(query string) []int {
	query = core.CleanString(query, true /* lower */)
	if query == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []int
	for i, entry := range s.entries {
		name := strings.ToLower(entry.Name)
		roll := strings.ToLower(entry.RollNumber)
		if strings.Contains(name, query) || roll == query {
			matches = append(matches, i)
			continue
		}
		if similarity(query, name) >= searchMinRatio {
			matches = append(matches, i)
		}
	}
	return matches
}

func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).QuickRatio()
}
