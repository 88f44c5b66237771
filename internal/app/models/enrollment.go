package models

import (
	"time"
)

// Enrollment links a student to a purchased course. Unique per
// (student, course) pair. The IsExpired flag is derived from ExpiresAt and
// refreshed opportunistically on access, not by a background job.
type Enrollment struct {
	ID           int64      `json:"id" db:"id"`
	StudentID    int64      `json:"studentId" db:"student_id"`
	CourseID     int64      `json:"courseId" db:"course_id"`
	PurchasedAt  time.Time  `json:"purchasedAt" db:"purchased_at"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty" db:"expires_at"` // Nil means unlimited access
	CompletedAt  *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	RecentAccess *time.Time `json:"recentAccess,omitempty" db:"recent_access"`
	Certificate  *string    `json:"certificate,omitempty" db:"certificate"`
	IsExpired    bool       `json:"isExpired" db:"is_expired"`

	// Relations (populated when needed)
	Course           *Course           `json:"course,omitempty"`
	Student          *User             `json:"student,omitempty"`
	CompletedLessons []CompletedLesson `json:"completedLessons,omitempty"`
}

// CompletedLesson records one lesson a student finished within an enrollment.
type CompletedLesson struct {
	LessonID    int64     `json:"lessonId" db:"lesson_id"`
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`
}

// CertificateRecord is one fully completed course as presented on the
// student's certificate listing.
type CertificateRecord struct {
	CourseID    int64     `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	StudentName string    `json:"studentName"`
	CompletedAt time.Time `json:"completedAt"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
	Certificate string    `json:"certificate,omitempty"`
}
