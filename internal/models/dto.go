package models

import "time"

// Data Transfer Objects

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type StudentLoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Student   Student     `json:"student"`
	Report    []ReportRow `json:"report"`
}

type TeacherLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SaveProgressRequest struct {
	Rows []WorkingRow `json:"rows" validate:"required,min=1,dive"`
}

type SaveProgressResponse struct {
	Saved    int           `json:"saved"`
	Failed   int           `json:"failed"`
	Outcomes []SaveOutcome `json:"outcomes"`
	Message  string        `json:"message,omitempty"`
}

// DayCell is one cell of the day view: a teacher's class at a given slot,
// or nil when the teacher is free.
type DayCell struct {
	Teacher string         `json:"teacher"`
	Color   string         `json:"color"`
	Entry   *ScheduleEntry `json:"entry"`
}

type DaySlot struct {
	Slot  string    `json:"slot"`
	Cells []DayCell `json:"cells"`
}

type DayViewResponse struct {
	Day      string    `json:"day"`
	Teachers []string  `json:"teachers"`
	Slots    []DaySlot `json:"slots"`
}

type TeacherDayClasses struct {
	Day     string          `json:"day"`
	Entries []ScheduleEntry `json:"entries"`
}

type TeacherWeekCard struct {
	Teacher string              `json:"teacher"`
	Color   string              `json:"color"`
	Days    []TeacherDayClasses `json:"days"`
}

type StudentScheduleResponse struct {
	Student string                               `json:"student"`
	Count   int                                  `json:"count"`
	Entries []ScheduleEntry                      `json:"entries"`
	Grid    map[string]map[string]*ScheduleEntry `json:"grid"`
}
