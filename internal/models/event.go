package models

type ProgressSavedEvent struct {
	OwnerType string `json:"owner_type"` // "student" or "subject"
	OwnerID   int    `json:"owner_id"`
	Saved     int    `json:"saved"`
	Timestamp int64  `json:"timestamp"`
}
