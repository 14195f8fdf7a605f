package domain

import "time"

type SessionEventKind string

const (
	SessionLogin  SessionEventKind = "login"
	SessionLogout SessionEventKind = "logout"
)

// SessionEvent records a login or logout in one browser context.
type SessionEvent struct {
	ContextID string           `json:"context_id" bson:"context_id"`
	UserID    string           `json:"user_id" bson:"user_id"`
	Username  string           `json:"username" bson:"username"`
	Kind      SessionEventKind `json:"kind" bson:"kind"`
	At        time.Time        `json:"at" bson:"at"`
}
