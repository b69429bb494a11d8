package httpd

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/floreser/school-portal/internal/service"
	"github.com/floreser/school-portal/internal/service/export"
)

// GetFullSchedule returns every schedule entry, ordered by day and time.
func (h *Handler) GetFullSchedule(w http.ResponseWriter, r *http.Request) {
	entries, err := h.scheduleService.GetFull(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to fetch schedule")
		writeError(w, http.StatusInternalServerError, "Failed to get schedule")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}

// GetDayView renders one weekday as slot rows with a column per teacher.
// An optional ?teacher= query narrows the view to one teacher's classes.
func (h *Handler) GetDayView(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	teacher := r.URL.Query().Get("teacher")

	view, err := h.scheduleService.DayView(r.Context(), day, teacher)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDay) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown day: %s", day))
			return
		}
		h.logger.Error().Err(err).Str("day", day).Msg("Failed to build day view")
		writeError(w, http.StatusInternalServerError, "Failed to get schedule")
		return
	}

	writeSuccess(w, view)
}

// GetTeacherWeeks returns one card per teacher with their week grouped by
// day. Teachers with a single class are left out of the cards.
func (h *Handler) GetTeacherWeeks(w http.ResponseWriter, r *http.Request) {
	cards, err := h.scheduleService.TeacherWeeks(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to build teacher weeks")
		writeError(w, http.StatusInternalServerError, "Failed to get schedule")
		return
	}

	writeSuccess(w, cards)
}

// GetStudentSchedule matches the named student against class rosters and
// returns their entries plus a day-by-slot grid.
func (h *Handler) GetStudentSchedule(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Student name is required")
		return
	}

	resp, err := h.scheduleService.StudentSchedule(r.Context(), name)
	if err != nil {
		h.logger.Error().Err(err).Str("student", name).Msg("Failed to build student schedule")
		writeError(w, http.StatusInternalServerError, "Failed to get schedule")
		return
	}

	writeSuccess(w, resp)
}

// ExportStudentSchedule streams the student's weekly schedule as a PDF
// attachment. A student with no matched classes gets a 404 instead of an
// empty grid.
func (h *Handler) ExportStudentSchedule(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Student name is required")
		return
	}

	filename, data, err := h.exportService.ExportStudentSchedule(r.Context(), name)
	if err != nil {
		if errors.Is(err, export.ErrNoSchedule) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("No scheduled classes found for %s", name))
			return
		}
		h.logger.Error().Err(err).Str("student", name).Msg("Failed to export schedule")
		writeError(w, http.StatusInternalServerError, "Failed to export schedule")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ListArchivedExports returns the object keys of past schedule exports kept
// in the archive. Empty when no object storage is configured.
func (h *Handler) ListArchivedExports(w http.ResponseWriter, r *http.Request) {
	keys, err := h.exportService.ListArchivedExports(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list archived exports")
		writeError(w, http.StatusInternalServerError, "Failed to list exports")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"count": len(keys),
		"keys":  keys,
	})
}
