package models

import (
	"time"
)

// Course represents a published course authored by an instructor.
// Chapter order within the course is canonical: it reflects the order the
// instructor submitted, not creation order.
type Course struct {
	ID               int64          `json:"id" db:"id"`
	Title            string         `json:"title" db:"title"`
	Description      string         `json:"description" db:"description"`
	Price            float64        `json:"price" db:"price"`
	Category         string         `json:"category" db:"category"`
	Requirements     []string       `json:"requirements" db:"requirements"`
	LearningOutcomes []string       `json:"learningOutcomes" db:"learning_outcomes"`
	Thumbnail        *string        `json:"thumbnail,omitempty" db:"thumbnail"`                  // Nullable
	VideoPreview     *string        `json:"videoPreview,omitempty" db:"video_preview"`           // Nullable
	PreviewVideoSize *int64         `json:"previewVideoSize,omitempty" db:"preview_video_size"` // Nullable
	InstructorID     int64          `json:"instructorId" db:"instructor_id"`
	InstructorName   string         `json:"instructorName" db:"instructor_name"`
	Level            Level          `json:"level" db:"level"`
	ValidityPeriod   ValidityPeriod `json:"validityPeriod"`
	Visibility       Visibility     `json:"visibility" db:"visibility"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Instructor *Instructor `json:"instructor,omitempty"`
	Chapters   []*Chapter  `json:"chapters,omitempty"`
}

// Chapter groups lessons inside a course. A chapter always belongs to
// exactly one course.
type Chapter struct {
	ID       int64  `json:"id" db:"id"`
	CourseID int64  `json:"courseId" db:"course_id"`
	Title    string `json:"title" db:"title"`
	Position int    `json:"position" db:"position"` // Canonical display order within the course

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	Lessons []*Lesson `json:"lessons,omitempty"`
}
