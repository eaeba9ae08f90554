package models

import "time"

type Session struct {
	ID               string    `json:"id"`
	HostName         string    `json:"host_name"`
	IsActive         bool      `json:"is_active"`
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
}
