package model

import "time"

// AuthEvent is one row of the authentication audit trail.
type AuthEvent struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
