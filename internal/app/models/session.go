package models

import (
	"time"
)

// SessionScope separates student and instructor sessions.
type SessionScope string

const (
	ScopeStudent    SessionScope = "student"
	ScopeInstructor SessionScope = "instructor"
)

// Session is an opaque server-side bearer token. The token value carries no
// claims; authorization happens by resolving it against the sessions table.
type Session struct {
	ID        int64        `json:"id" db:"id"`
	SubjectID int64        `json:"subjectId" db:"subject_id"` // User or instructor ID depending on scope
	Scope     SessionScope `json:"scope" db:"scope"`
	Token     string       `json:"token" db:"token"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time    `json:"expiresAt" db:"expires_at"`
}
