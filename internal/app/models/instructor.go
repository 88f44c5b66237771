package models

import (
	"time"
)

// Instructor defines the instructor account model based on the 'instructors' table
type Instructor struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Password       string    `json:"-" db:"password"`
	ProfilePicture *string   `json:"profilePicture,omitempty" db:"profile_picture"` // Nullable
	Bio            *string   `json:"bio,omitempty" db:"bio"`                        // Nullable
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Relation: identifiers of courses authored by this instructor,
	// in the order they were created (populated when needed)
	CourseIDs []int64 `json:"courseIds,omitempty"`
}
