package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/floreser/school-portal/internal/models"
)

func entry(day, slot, teacher, subject, students string) models.ScheduleEntry {
	return models.ScheduleEntry{
		Day:      day,
		Time:     slot,
		Teacher:  teacher,
		Subject:  subject,
		Students: students,
	}
}

func TestValidDay(t *testing.T) {
	for _, day := range Days {
		assert.True(t, ValidDay(day), day)
	}
	assert.False(t, ValidDay("Saturday"))
	assert.False(t, ValidDay("monday"))
	assert.False(t, ValidDay(""))
}

func TestGroupByDay(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Monday", TimeSlots[0], "Jo", "Math", ""),
		entry("Wednesday", TimeSlots[1], "Sarah", "Art", ""),
		entry("Monday", TimeSlots[2], "Jo", "English", ""),
	}

	grouped := GroupByDay(entries)

	assert.Len(t, grouped, len(Days))
	assert.Len(t, grouped["Monday"], 2)
	assert.Len(t, grouped["Wednesday"], 1)
	assert.Empty(t, grouped["Friday"])
	// Input order is preserved within a day.
	assert.Equal(t, "Math", grouped["Monday"][0].Subject)
	assert.Equal(t, "English", grouped["Monday"][1].Subject)
}

func TestGroupByTimeSlot(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Monday", TimeSlots[0], "Jo", "Math", ""),
		entry("Tuesday", TimeSlots[0], "Sarah", "Art", ""),
		entry("Monday", "10:00am-10:30am", "Jo", "Recess", ""),
	}

	grouped := GroupByTimeSlot(entries)

	assert.Len(t, grouped, len(TimeSlots))
	assert.Len(t, grouped[TimeSlots[0]], 2)
	// Slot labels match exactly; unknown labels land nowhere.
	for _, slot := range TimeSlots[1:] {
		assert.Empty(t, grouped[slot])
	}
}

func TestBuildGridEveryCellPresent(t *testing.T) {
	grid := BuildGrid(nil)

	assert.Len(t, grid, len(Days))
	for _, day := range Days {
		assert.Len(t, grid[day], len(TimeSlots))
		for _, slot := range TimeSlots {
			cell, ok := grid[day][slot]
			assert.True(t, ok)
			assert.Nil(t, cell)
		}
	}
}

func TestBuildGridFirstEntryWins(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Monday", TimeSlots[0], "Jo", "Math", ""),
		entry("Monday", TimeSlots[0], "Sarah", "Art", ""),
	}

	grid := BuildGrid(entries)

	cell := grid["Monday"][TimeSlots[0]]
	assert.NotNil(t, cell)
	assert.Equal(t, "Math", cell.Subject)
}

func TestBuildGridDropsOutOfVocabulary(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Saturday", TimeSlots[0], "Jo", "Math", ""),
		entry("Monday", "4:00pm-5:00pm", "Jo", "Chess", ""),
		entry("Friday", TimeSlots[3], "Nadir", "Music", ""),
	}

	grid := BuildGrid(entries)

	assert.NotContains(t, grid, "Saturday")
	for _, slot := range TimeSlots {
		assert.Nil(t, grid["Monday"][slot])
	}
	assert.NotNil(t, grid["Friday"][TimeSlots[3]])
}

func TestTeachersPresent(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Monday", TimeSlots[0], "Sarah", "Art", ""),
		entry("Monday", TimeSlots[1], "Jo", "Math", ""),
		entry("Monday", TimeSlots[2], "Sarah", "Art", ""),
		entry("Monday", TimeSlots[3], "", "Lunch", ""),
	}

	teachers := TeachersPresent(entries)

	assert.Equal(t, []string{"Jo", "Sarah"}, teachers)
}

func TestFilterByTeacher(t *testing.T) {
	entries := []models.ScheduleEntry{
		entry("Monday", TimeSlots[0], "Jo", "Math", ""),
		entry("Monday", TimeSlots[1], "Sarah", "Art", ""),
	}

	assert.Equal(t, entries, FilterByTeacher(entries, ""))
	assert.Equal(t, entries, FilterByTeacher(entries, "All"))

	jo := FilterByTeacher(entries, "Jo")
	assert.Len(t, jo, 1)
	assert.Equal(t, "Math", jo[0].Subject)

	assert.Empty(t, FilterByTeacher(entries, "Nadir"))
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "yellow", ColorFor("Jerome").Token)
	assert.Equal(t, "pink", ColorFor("Lucia/Ana").Token)
	assert.Equal(t, NeutralColor, ColorFor("Unknown"))
	assert.Equal(t, NeutralColor, ColorFor(""))
}
