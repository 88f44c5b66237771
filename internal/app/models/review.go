package models

import (
	"time"
)

// Review is one student's rating of a course. One review per
// (course, student) pair.
type Review struct {
	ID        int64     `json:"id" db:"id"`
	CourseID  int64     `json:"courseId" db:"course_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Stars     int       `json:"stars" db:"stars"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	UserName string `json:"userName,omitempty"`
}
