package dto

import "time"

// EnrollRequest represents a course purchase request
type EnrollRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// EnrollmentResponse represents one enrollment with its course summary
type EnrollmentResponse struct {
	ID           int64                  `json:"id"`
	CourseID     int64                  `json:"courseId"`
	PurchasedAt  time.Time              `json:"purchasedAt"`
	ExpiresAt    *time.Time             `json:"expiresAt,omitempty"`
	CompletedAt  *time.Time             `json:"completedAt,omitempty"`
	RecentAccess *time.Time             `json:"recentAccess,omitempty"`
	Certificate  *string                `json:"certificate,omitempty"`
	IsExpired    bool                   `json:"isExpired"`
	Course       *CourseSummaryResponse `json:"course,omitempty"`
	StudentID    int64                  `json:"studentId,omitempty"`
	StudentName  string                 `json:"studentName,omitempty"`
}

// EnrollStudentRequest enrolls a named student into one of the calling
// instructor's courses
type EnrollStudentRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	CourseID  int64 `json:"courseId" binding:"required"`
}

// CompleteLessonRequest marks a lesson as completed
type CompleteLessonRequest struct {
	LessonID int64 `json:"lessonId" binding:"required,min=1"`
}

// ProgressResponse represents a student's progress in a course
type ProgressResponse struct {
	EnrollmentID     int64      `json:"enrollmentId"`
	CourseID         int64      `json:"courseId"`
	TotalLessons     int        `json:"totalLessons"`
	CompletedLessons []int64    `json:"completedLessons"`
	Percentage       float64    `json:"percentage"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	Certificate      *string    `json:"certificate,omitempty"`
}
