package httpd

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/service"
)

type Handler struct {
	authService     service.AuthService
	rosterService   service.RosterService
	progressService service.ProgressService
	scheduleService service.ScheduleService
	exportService   service.ExportService
	logger          zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	rosterService service.RosterService,
	progressService service.ProgressService,
	scheduleService service.ScheduleService,
	exportService service.ExportService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:     authService,
		rosterService:   rosterService,
		progressService: progressService,
		scheduleService: scheduleService,
		exportService:   exportService,
		logger:          logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/student-login", h.StudentLogin)
			r.Post("/teacher-login", h.TeacherLogin)
			r.With(h.RequireSession).Post("/logout", h.Logout)
		})

		api.With(h.RequireSession).Get("/report", h.GetOwnReport)

		api.Group(func(r chi.Router) {
			r.Use(h.RequireTeacher)

			r.Get("/students", h.GetAllStudents)
			r.Get("/subjects", h.GetAllSubjects)
			r.Get("/exports", h.ListArchivedExports)

			r.Route("/progress", func(r chi.Router) {
				r.Get("/students/{id}", h.GetStudentWorkingSet)
				r.Put("/students/{id}", h.SaveStudentWorkingSet)
				r.Get("/subjects/{id}", h.GetSubjectWorkingSet)
				r.Put("/subjects/{id}", h.SaveSubjectWorkingSet)
			})
		})

		api.Group(func(r chi.Router) {
			r.Use(h.RequireSession)

			r.Route("/schedule", func(r chi.Router) {
				r.Get("/", h.GetFullSchedule)
				r.Get("/days/{day}", h.GetDayView)
				r.Get("/teachers", h.GetTeacherWeeks)
				r.Get("/students/{name}", h.GetStudentSchedule)
				r.Get("/students/{name}/export", h.ExportStudentSchedule)
			})
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "school-portal",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

func getIntURLParam(r *http.Request, key string) (int, bool) {
	value := chi.URLParam(r, key)
	id, err := strconv.Atoi(value)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, http.StatusOK, response)
}
