// Package timetable contains the pure view-model transformations over the
// flat schedule table: day/time/teacher groupings, the day-by-slot grid and
// the student-name matcher. Everything operates on already-fetched rows;
// nothing here touches the store.
package timetable

import (
	"sort"

	"github.com/floreser/school-portal/internal/models"
)

// Days and TimeSlots are the fixed schedule vocabulary. Adding or removing
// an entry must happen here only; the groupings, views and the PDF export
// all derive their dimensions from these two slices.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

var TimeSlots = []string{
	"9:15am-10:15am",
	"11:00am-11:45am",
	"11:45am-12:30pm",
	"1:00pm-3:00pm",
}

// ValidDay reports whether day is part of the fixed vocabulary.
func ValidDay(day string) bool {
	for _, d := range Days {
		if d == day {
			return true
		}
	}
	return false
}

// GroupByDay buckets entries per vocabulary day, preserving input order.
func GroupByDay(entries []models.ScheduleEntry) map[string][]models.ScheduleEntry {
	grouped := make(map[string][]models.ScheduleEntry, len(Days))
	for _, day := range Days {
		grouped[day] = filter(entries, func(e models.ScheduleEntry) bool { return e.Day == day })
	}
	return grouped
}

// GroupByTimeSlot buckets entries per vocabulary slot (exact label match),
// preserving input order.
func GroupByTimeSlot(entries []models.ScheduleEntry) map[string][]models.ScheduleEntry {
	grouped := make(map[string][]models.ScheduleEntry, len(TimeSlots))
	for _, slot := range TimeSlots {
		grouped[slot] = filter(entries, func(e models.ScheduleEntry) bool { return e.Time == slot })
	}
	return grouped
}

// BuildGrid produces the day-by-slot grid. Every (day, slot) pair in the
// vocabulary has a cell; a cell holds at most one entry, the first one
// encountered when the source data carries duplicates. Entries whose day or
// time falls outside the vocabulary are dropped from the grid.
func BuildGrid(entries []models.ScheduleEntry) map[string]map[string]*models.ScheduleEntry {
	grid := make(map[string]map[string]*models.ScheduleEntry, len(Days))
	for _, day := range Days {
		grid[day] = make(map[string]*models.ScheduleEntry, len(TimeSlots))
		for _, slot := range TimeSlots {
			grid[day][slot] = nil
		}
	}
	for i := range entries {
		e := &entries[i]
		row, ok := grid[e.Day]
		if !ok {
			continue
		}
		if cur, ok := row[e.Time]; ok && cur == nil {
			row[e.Time] = e
		}
	}
	return grid
}

// TeachersPresent returns the distinct non-empty teacher names among
// entries, lexically sorted. Views size their columns from it since not
// every teacher teaches every day.
func TeachersPresent(entries []models.ScheduleEntry) []string {
	seen := make(map[string]struct{})
	var teachers []string
	for _, e := range entries {
		if e.Teacher == "" {
			continue
		}
		if _, ok := seen[e.Teacher]; ok {
			continue
		}
		seen[e.Teacher] = struct{}{}
		teachers = append(teachers, e.Teacher)
	}
	sort.Strings(teachers)
	return teachers
}

// TeacherWeek returns the subset of entries taught by teacher,
// preserving input order.
func TeacherWeek(entries []models.ScheduleEntry, teacher string) []models.ScheduleEntry {
	return filter(entries, func(e models.ScheduleEntry) bool { return e.Teacher == teacher })
}

// FilterByTeacher returns the subset of entries taught by teacher; an empty
// or "All" filter returns entries unchanged.
func FilterByTeacher(entries []models.ScheduleEntry, teacher string) []models.ScheduleEntry {
	if teacher == "" || teacher == "All" {
		return entries
	}
	return TeacherWeek(entries, teacher)
}

func filter(entries []models.ScheduleEntry, keep func(models.ScheduleEntry) bool) []models.ScheduleEntry {
	var out []models.ScheduleEntry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
