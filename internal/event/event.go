package event

type Type string

const (
	TypeUserRegistered       Type = "user.registered"
	TypeLoginSucceeded       Type = "user.login_succeeded"
	TypeLoginFailed          Type = "user.login_failed"
	TypeIdentityResolved     Type = "user.identity_resolved"
	TypeIdentityResolveError Type = "user.identity_rejected"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	UserID    int64  `json:"user_id,omitempty"`
	Email     string `json:"email,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func()) // Returns channel and unsubscribe function
}
