package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/service"
	"github.com/floreser/school-portal/internal/service/export"
	"github.com/floreser/school-portal/internal/service/timetable"
)

const (
	studentToken = "tok-student"
	teacherToken = "tok-teacher"
)

type stubAuthService struct {
	sessions map[string]*service.Session
}

func (s *stubAuthService) StudentLogin(_ context.Context, password string) (*models.StudentLoginResponse, error) {
	if password != "sol" {
		return nil, service.ErrInvalidPassword
	}
	return &models.StudentLoginResponse{
		Token:     studentToken,
		ExpiresAt: time.Now().Add(time.Hour),
		Student:   models.Student{ID: 1, FullName: "Ana Morales"},
		Report:    []models.ReportRow{{SubjectName: "Math", Content: "Fractions"}},
	}, nil
}

func (s *stubAuthService) TeacherLogin(_ context.Context, password string) (*models.TeacherLoginResponse, error) {
	if password != "staff-room" {
		return nil, service.ErrInvalidPassword
	}
	return &models.TeacherLoginResponse{
		Token:     teacherToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func (s *stubAuthService) GetSession(_ context.Context, token string) (*service.Session, error) {
	return s.sessions[token], nil
}

type stubRosterService struct{}

func (s *stubRosterService) ListStudents(_ context.Context) ([]models.Student, error) {
	return []models.Student{{ID: 1, FullName: "Ana Morales"}, {ID: 2, FullName: "Marco Diaz"}}, nil
}

func (s *stubRosterService) ListSubjects(_ context.Context) ([]models.Subject, error) {
	return []models.Subject{{ID: 1, Name: "Math"}}, nil
}

type stubProgressService struct {
	lastOwnerType string
	lastOwnerID   int
	saveResp      *models.SaveProgressResponse
}

func (s *stubProgressService) BuildStudentWorkingSet(_ context.Context, studentID int) ([]models.WorkingRow, error) {
	if studentID != 1 {
		return nil, service.ErrStudentNotFound
	}
	return []models.WorkingRow{{StudentID: 1, SubjectID: 1, SubjectName: "Math"}}, nil
}

func (s *stubProgressService) BuildSubjectWorkingSet(_ context.Context, subjectID int) ([]models.WorkingRow, error) {
	if subjectID != 1 {
		return nil, service.ErrSubjectNotFound
	}
	return []models.WorkingRow{{StudentID: 1, SubjectID: 1, StudentName: "Ana Morales"}}, nil
}

func (s *stubProgressService) SaveAll(_ context.Context, ownerType string, ownerID int, rows []models.WorkingRow) (*models.SaveProgressResponse, error) {
	s.lastOwnerType = ownerType
	s.lastOwnerID = ownerID
	if s.saveResp != nil {
		return s.saveResp, nil
	}
	return &models.SaveProgressResponse{Saved: len(rows)}, nil
}

func (s *stubProgressService) GetStudentReport(_ context.Context, studentID int) ([]models.ReportRow, error) {
	if studentID != 1 {
		return nil, service.ErrStudentNotFound
	}
	return []models.ReportRow{{SubjectName: "Math", Content: "Fractions"}}, nil
}

type stubScheduleService struct{}

func (s *stubScheduleService) GetFull(_ context.Context) ([]models.ScheduleEntry, error) {
	return []models.ScheduleEntry{{ID: 1, Day: "Monday", Time: timetable.TimeSlots[0], Teacher: "Jo", Subject: "Math"}}, nil
}

func (s *stubScheduleService) DayView(_ context.Context, day, _ string) (*models.DayViewResponse, error) {
	if !timetable.ValidDay(day) {
		return nil, service.ErrUnknownDay
	}
	return &models.DayViewResponse{Day: day, Teachers: []string{"Jo"}}, nil
}

func (s *stubScheduleService) TeacherWeeks(_ context.Context) ([]models.TeacherWeekCard, error) {
	return []models.TeacherWeekCard{{Teacher: "Jo", Color: "blue"}}, nil
}

func (s *stubScheduleService) StudentSchedule(_ context.Context, fullName string) (*models.StudentScheduleResponse, error) {
	return &models.StudentScheduleResponse{Student: fullName}, nil
}

type stubExportService struct{}

func (s *stubExportService) ExportStudentSchedule(_ context.Context, fullName string) (string, []byte, error) {
	if fullName == "Nobody" {
		return "", nil, export.ErrNoSchedule
	}
	return export.FileName(fullName), []byte("%PDF-1.3 stub"), nil
}

func (s *stubExportService) ListArchivedExports(_ context.Context) ([]string, error) {
	return []string{"exports/2026/08/Ana_Morales_Schedule.pdf"}, nil
}

func setupRouter(progressStub *stubProgressService) chi.Router {
	auth := &stubAuthService{sessions: map[string]*service.Session{
		studentToken: {Token: studentToken, Role: service.RoleStudent, StudentID: 1, ExpiresAt: time.Now().Add(time.Hour)},
		teacherToken: {Token: teacherToken, Role: service.RoleTeacher, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	if progressStub == nil {
		progressStub = &stubProgressService{}
	}

	handler := NewHandler(auth, &stubRosterService{}, progressStub, &stubScheduleService{}, &stubExportService{}, zerolog.Nop())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func doRequest(router chi.Router, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	rec := doRequest(setupRouter(nil), http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestStudentLoginEndpoint(t *testing.T) {
	router := setupRouter(nil)

	body, _ := json.Marshal(models.LoginRequest{Password: "sol"})
	rec := doRequest(router, http.MethodPost, "/api/v1/auth/student-login", "", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), studentToken)
	assert.Contains(t, rec.Body.String(), "Ana Morales")
}

func TestStudentLoginWrongPassword(t *testing.T) {
	router := setupRouter(nil)

	body, _ := json.Marshal(models.LoginRequest{Password: "nope"})
	rec := doRequest(router, http.MethodPost, "/api/v1/auth/student-login", "", body)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid password")
}

func TestLoginMissingPassword(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodPost, "/api/v1/auth/teacher-login", "", []byte(`{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionRequired(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/schedule/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/schedule/", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTeacherRoutesRejectStudents(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/students", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/progress/students/1", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetAllStudents(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/students", teacherToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Marco Diaz")
}

func TestGetStudentWorkingSet(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/progress/students/1", teacherToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Math")

	rec = doRequest(router, http.MethodGet, "/api/v1/progress/students/99", teacherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/progress/students/abc", teacherToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSaveStudentWorkingSet(t *testing.T) {
	progress := &stubProgressService{}
	router := setupRouter(progress)

	body, _ := json.Marshal(models.SaveProgressRequest{Rows: []models.WorkingRow{
		{StudentID: 1, SubjectID: 1, Content: "Addition"},
	}})
	rec := doRequest(router, http.MethodPut, "/api/v1/progress/students/1", teacherToken, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.OwnerStudent, progress.lastOwnerType)
	assert.Equal(t, 1, progress.lastOwnerID)
	assert.Contains(t, rec.Body.String(), `"saved":1`)
}

func TestSaveSubjectWorkingSetPartialFailure(t *testing.T) {
	progress := &stubProgressService{saveResp: &models.SaveProgressResponse{
		Saved:   2,
		Failed:  1,
		Message: "1 of 3 rows failed to save: insert rejected",
	}}
	router := setupRouter(progress)

	body, _ := json.Marshal(models.SaveProgressRequest{Rows: []models.WorkingRow{
		{StudentID: 1, SubjectID: 1},
	}})
	rec := doRequest(router, http.MethodPut, "/api/v1/progress/subjects/1", teacherToken, body)

	// Partial failure still answers 200; the body carries the counts.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.OwnerSubject, progress.lastOwnerType)
	assert.Contains(t, rec.Body.String(), `"failed":1`)
	assert.Contains(t, rec.Body.String(), "rows failed to save")
}

func TestSaveWorkingSetInvalidBody(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodPut, "/api/v1/progress/students/1", teacherToken, []byte(`{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOwnReport(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/report", studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Fractions")

	// Teachers have no personal report.
	rec = doRequest(router, http.MethodGet, "/api/v1/report", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetDayView(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/schedule/days/Monday", studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Monday")

	rec = doRequest(router, http.MethodGet, "/api/v1/schedule/days/Saturday", studentToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown day")
}

func TestGetTeacherWeeks(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/schedule/teachers", teacherToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blue")
}

func TestExportStudentSchedule(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/schedule/students/Ana%20Morales/export", studentToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Ana_Morales_Schedule.pdf")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
}

func TestExportStudentScheduleNoMatch(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/schedule/students/Nobody/export", studentToken, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No scheduled classes")
}

func TestListArchivedExports(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodGet, "/api/v1/exports", teacherToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ana_Morales_Schedule.pdf")

	rec = doRequest(router, http.MethodGet, "/api/v1/exports", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogout(t *testing.T) {
	router := setupRouter(nil)

	rec := doRequest(router, http.MethodPost, "/api/v1/auth/logout", studentToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The session is gone afterwards.
	rec = doRequest(router, http.MethodGet, "/api/v1/report", studentToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
