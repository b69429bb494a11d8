// Package export renders a student's resolved weekly schedule as a one-page
// landscape PDF grid, colored per teacher via the shared timetable color
// table.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/service/timetable"
)

// ErrNoSchedule is returned when the resolved schedule is empty; an empty
// document is never produced.
var ErrNoSchedule = errors.New("no schedule entries to export")

// TermLabel appears in the page header under the student name.
const TermLabel = "Floreser Bocas del Toro 2025-2026"

// maxSubjectRunes is the character budget for a subject label inside a grid
// cell; longer labels get an ellipsis.
const maxSubjectRunes = 22

type gridCell struct {
	Day   string
	Slot  string
	Entry *models.ScheduleEntry
}

// bodyCells flattens the day-by-slot grid into row-major cells. The cell
// count is always len(TimeSlots) * len(Days) no matter how sparse the
// schedule is; empty cells still render with the neutral background so the
// grid stays rectangular.
func bodyCells(entries []models.ScheduleEntry) []gridCell {
	grid := timetable.BuildGrid(entries)
	cells := make([]gridCell, 0, len(timetable.TimeSlots)*len(timetable.Days))
	for _, slot := range timetable.TimeSlots {
		for _, day := range timetable.Days {
			cells = append(cells, gridCell{Day: day, Slot: slot, Entry: grid[day][slot]})
		}
	}
	return cells
}

// FileName builds the download name for a student's schedule document:
// whitespace runs collapsed to underscores, fixed "_Schedule.pdf" suffix.
func FileName(studentName string) string {
	return strings.Join(strings.Fields(studentName), "_") + "_Schedule.pdf"
}

// BuildSchedulePDF renders one fixed-size landscape page: a header with the
// student name and term label, then a (len(Days)+1) x (len(TimeSlots)+1)
// grid with one column per day and one row per time slot.
func BuildSchedulePDF(studentName string, entries []models.ScheduleEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrNoSchedule
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(21, 94, 117)
	pdf.CellFormat(0, 9, tr(studentName+"'s Weekly Schedule"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, tr(TermLabel), "", 1, "C", false, 0, "")

	const (
		left     = 10.0
		top      = 30.0
		timeColW = 38.0
		headerH  = 9.0
	)
	dayColW := (pageW - 2*left - timeColW) / float64(len(timetable.Days))
	rowH := (pageH - top - 12) / float64(len(timetable.TimeSlots))

	// Header row: blank corner cell plus one column per day.
	pdf.SetDrawColor(14, 116, 144)
	pdf.SetFillColor(8, 145, 178)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(left, top)
	pdf.CellFormat(timeColW, headerH, "", "1", 0, "C", true, 0, "")
	for _, day := range timetable.Days {
		pdf.CellFormat(dayColW, headerH, tr(day), "1", 0, "C", true, 0, "")
	}

	grid := timetable.BuildGrid(entries)
	for i, slot := range timetable.TimeSlots {
		y := top + headerH + float64(i)*rowH

		// Slot label column.
		pdf.SetXY(left, y)
		pdf.SetFillColor(236, 254, 255)
		pdf.SetTextColor(21, 94, 117)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(timeColW, rowH, tr(slot), "1", 0, "C", true, 0, "")

		for j, day := range timetable.Days {
			x := left + timeColW + float64(j)*dayColW
			entry := grid[day][slot]

			color := timetable.NeutralColor
			if entry != nil {
				color = timetable.ColorFor(entry.Teacher)
			}
			pdf.SetFillColor(color.Fill[0], color.Fill[1], color.Fill[2])
			pdf.SetDrawColor(color.Border[0], color.Border[1], color.Border[2])
			pdf.Rect(x, y, dayColW, rowH, "FD")

			if entry == nil {
				continue
			}
			pdf.SetTextColor(30, 41, 59)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetXY(x+2, y+rowH/2-7)
			pdf.CellFormat(dayColW-4, 6, tr(truncate(entry.Subject, maxSubjectRunes)), "", 0, "C", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetXY(x+2, y+rowH/2+1)
			pdf.CellFormat(dayColW-4, 6, tr(entry.Teacher), "", 0, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render schedule document: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
