package models

import (
	"time"
)

// CartItem is one course placed in a student's cart. A course can appear at
// most once per student.
type CartItem struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"userId" db:"user_id"`
	CourseID int64     `json:"courseId" db:"course_id"`
	AddedAt  time.Time `json:"addedAt" db:"added_at"`

	// Relation (populated when needed)
	Course *Course `json:"course,omitempty"`
}
