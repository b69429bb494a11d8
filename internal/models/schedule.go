package models

// ScheduleEntry is one timetabled class occurrence. Students is a free-text
// roster ("Lucia, Ana" or "Lucia/Ana"); there is no foreign key to students,
// the relationship is inferred at read time by name matching.
type ScheduleEntry struct {
	ID       int    `json:"id" db:"id"`
	Day      string `json:"day" db:"day"`
	Time     string `json:"time" db:"time"`
	Teacher  string `json:"teacher" db:"teacher"`
	Subject  string `json:"subject" db:"subject"`
	Students string `json:"students" db:"students"`
}
