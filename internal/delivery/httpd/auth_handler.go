package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/service"
)

func (h *Handler) StudentLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	ctx := r.Context()
	resp, err := h.authService.StudentLogin(ctx, req.Password)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) TeacherLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "password is required")
		return
	}

	ctx := r.Context()
	resp, err := h.authService.TeacherLogin(ctx, req.Password)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	writeSuccess(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), bearerToken(r)); err != nil {
		h.logger.Error().Err(err).Msg("Failed to delete session")
		writeError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Logged out",
	})
}

// GetOwnReport serves the logged-in student their own progress report, the
// same payload the login response carries.
func (h *Handler) GetOwnReport(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session == nil || session.Role != service.RoleStudent {
		writeError(w, http.StatusForbidden, "Student access required")
		return
	}

	report, err := h.progressService.GetStudentReport(r.Context(), session.StudentID)
	if err != nil {
		h.logger.Error().Err(err).Int("student_id", session.StudentID).Msg("Failed to fetch report")
		writeError(w, http.StatusInternalServerError, "Error fetching progress")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"student_id": session.StudentID,
		"report":     report,
	})
}

func (h *Handler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidPassword):
		writeError(w, http.StatusUnauthorized, "Invalid password. Please try again.")
	default:
		h.logger.Error().Err(err).Msg("Auth service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
