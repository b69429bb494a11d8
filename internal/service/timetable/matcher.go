package timetable

import (
	"strings"

	"github.com/floreser/school-portal/internal/models"
)

// MatchStudent returns the entries whose free-text students field contains
// the student's full name, case-insensitively.
//
// This is deliberately a substring test, not a token-boundary one: rosters
// are entered by hand ("Lucia, Ana", "Lucia/Ana") and the historical data
// relies on the permissive match. The known hazard that "Ana" also matches
// "Anabel" is kept as-is; tightening it would silently change which classes
// a student sees.
func MatchStudent(fullName string, entries []models.ScheduleEntry) []models.ScheduleEntry {
	name := strings.ToLower(strings.TrimSpace(fullName))
	if name == "" {
		return nil
	}
	var matched []models.ScheduleEntry
	for _, e := range entries {
		if e.Students == "" {
			continue
		}
		if strings.Contains(strings.ToLower(e.Students), name) {
			matched = append(matched, e)
		}
	}
	return matched
}
