package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/service"
)

// GetStudentWorkingSet returns one editable row per subject for the student,
// merging saved records into the subject roster.
func (h *Handler) GetStudentWorkingSet(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getIntURLParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	rows, err := h.progressService.BuildStudentWorkingSet(r.Context(), studentID)
	if err != nil {
		h.handleProgressError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"student_id": studentID,
		"rows":       rows,
	})
}

func (h *Handler) SaveStudentWorkingSet(w http.ResponseWriter, r *http.Request) {
	studentID, ok := getIntURLParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	h.saveWorkingSet(w, r, service.OwnerStudent, studentID)
}

// GetSubjectWorkingSet is the transposed view: one row per student for the
// given subject.
func (h *Handler) GetSubjectWorkingSet(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := getIntURLParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}

	rows, err := h.progressService.BuildSubjectWorkingSet(r.Context(), subjectID)
	if err != nil {
		h.handleProgressError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"subject_id": subjectID,
		"rows":       rows,
	})
}

func (h *Handler) SaveSubjectWorkingSet(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := getIntURLParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid subject ID")
		return
	}

	h.saveWorkingSet(w, r, service.OwnerSubject, subjectID)
}

// saveWorkingSet persists an edited working set. Rows are saved one by one;
// a row that fails does not stop the rest, so the response always reports a
// per-row outcome list alongside the saved/failed counts.
func (h *Handler) saveWorkingSet(w http.ResponseWriter, r *http.Request, ownerType string, ownerID int) {
	var req models.SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.progressService.SaveAll(r.Context(), ownerType, ownerID, req.Rows)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) || errors.Is(err, service.ErrSubjectNotFound) {
			h.handleProgressError(w, err)
			return
		}
		h.logger.Error().Err(err).Str("owner_type", ownerType).Int("owner_id", ownerID).Msg("Invalid working set")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if resp.Failed > 0 {
		h.logger.Warn().
			Str("owner_type", ownerType).
			Int("owner_id", ownerID).
			Int("saved", resp.Saved).
			Int("failed", resp.Failed).
			Msg("Working set saved with failures")
	}

	writeSuccess(w, resp)
}

func (h *Handler) handleProgressError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		writeError(w, http.StatusNotFound, "Student not found")
	case errors.Is(err, service.ErrSubjectNotFound):
		writeError(w, http.StatusNotFound, "Subject not found")
	default:
		h.logger.Error().Err(err).Msg("Progress service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
