package httpd

import (
	"net/http"
)

// GetAllStudents returns the full student roster.
func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.rosterService.ListStudents(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list students")
		writeError(w, http.StatusInternalServerError, "Failed to get students")
		return
	}

	writeSuccess(w, students)
}

// GetAllSubjects returns the full subject roster.
func (h *Handler) GetAllSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.rosterService.ListSubjects(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list subjects")
		writeError(w, http.StatusInternalServerError, "Failed to get subjects")
		return
	}

	writeSuccess(w, subjects)
}
