package models

import (
	"time"
)

// Notification is an announcement from an instructor to students.
type Notification struct {
	ID           int64     `json:"id" db:"id"`
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	Title        string    `json:"title" db:"title"`
	Message      string    `json:"message" db:"message"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Instructor *Instructor `json:"instructor,omitempty"`
}
