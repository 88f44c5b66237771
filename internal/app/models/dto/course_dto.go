package dto

import (
	"time"

	"github.com/kaan/eduflow/internal/app/models"
)

// CourseForm represents the scalar multipart fields of a course create or
// update request. Chapter structure, documents metadata and the media files
// themselves arrive as separate multipart parts.
type CourseForm struct {
	Title            string `form:"title" binding:"required"`
	Description      string `form:"description" binding:"required"`
	Price            string `form:"price" binding:"required"`
	Category         string `form:"category" binding:"required"`
	Level            string `form:"level" binding:"required"`
	Visibility       string `form:"visibility"`
	Validity         string `form:"validity"`         // JSON: {"type":"months","duration":6}
	Requirements     string `form:"requirements"`     // JSON array of strings
	LearningOutcomes string `form:"learningOutcomes"` // JSON array of strings
	ChaptersData     string `form:"chaptersData" binding:"required"`
	DocumentsData    string `form:"documentsData"`
}

// VideoResponse represents one lesson video
type VideoResponse struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Duration int    `json:"duration"`
	Size     int64  `json:"size"`
}

// DocumentResponse represents one lesson document
type DocumentResponse struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	FileType string `json:"fileType"`
	Size     int64  `json:"size"`
}

// LessonResponse represents a lesson with its media
type LessonResponse struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Videos    []VideoResponse    `json:"videos"`
	Documents []DocumentResponse `json:"documents"`
}

// ChapterResponse represents a chapter with its lessons
type ChapterResponse struct {
	ID      int64            `json:"id"`
	Title   string           `json:"title"`
	Lessons []LessonResponse `json:"lessons"`
}

// ValidityResponse represents a course's access validity policy
type ValidityResponse struct {
	Type     models.ValidityKind `json:"type"`
	Duration int                 `json:"duration"`
}

// CourseResponse represents a full course with its chapter tree
type CourseResponse struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Price            float64           `json:"price"`
	Category         string            `json:"category"`
	Requirements     []string          `json:"requirements"`
	LearningOutcomes []string          `json:"learningOutcomes"`
	Thumbnail        *string           `json:"thumbnail,omitempty"`
	VideoPreview     *string           `json:"videoPreview,omitempty"`
	InstructorID     int64             `json:"instructorId"`
	InstructorName   string            `json:"instructorName"`
	Level            models.Level      `json:"level"`
	Validity         ValidityResponse  `json:"validity"`
	Visibility       models.Visibility `json:"visibility"`
	Chapters         []ChapterResponse `json:"chapters,omitempty"`
	AvgStars         float64           `json:"avgStars"`
	ReviewCount      int               `json:"reviewCount"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// CourseSummaryResponse represents a course in list views
type CourseSummaryResponse struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Price          float64          `json:"price"`
	Category       string           `json:"category"`
	Thumbnail      *string          `json:"thumbnail,omitempty"`
	InstructorID   int64            `json:"instructorId"`
	InstructorName string           `json:"instructorName"`
	Level          models.Level     `json:"level"`
	Validity       ValidityResponse `json:"validity"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// VisibilityResponse represents a course's listing visibility after a toggle
type VisibilityResponse struct {
	Visibility models.Visibility `json:"visibility"`
}

// TopCourseResponse represents a course in the top-rated listing
type TopCourseResponse struct {
	Course      CourseSummaryResponse `json:"course"`
	AvgStars    float64               `json:"avgStars"`
	ReviewCount int                   `json:"reviewCount"`
}
