package models

import "time"

type Question struct {
	ID              int       `json:"id"`
	SessionID       string    `json:"session_id"`
	ParticipantName string    `json:"participant_name"`
	AudioFilename   string    `json:"audio_filename"`
	Duration        int       `json:"duration"`
	Status          string    `json:"status"`
	Order           int       `json:"order"`
	CreatedAt       time.Time `json:"created_at"`
}

const (
	StatusQueued  = "queued"
	StatusPlaying = "playing"
	StatusPlayed  = "played"
	StatusSkipped = "skipped"
)

// AnonymousName is used when a participant submits without giving a name.
const AnonymousName = "Anonymous"

// ValidStatus reports whether s is one of the known question statuses.
// Transitions between statuses are not restricted: a host can unskip a
// question or replay one already marked played.
func ValidStatus(s string) bool {
	switch s {
	case StatusQueued, StatusPlaying, StatusPlayed, StatusSkipped:
		return true
	}
	return false
}
