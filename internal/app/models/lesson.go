package models

import (
	"time"
)

// Lesson is one unit of course content. A lesson always belongs to exactly
// one chapter. Media lists are replaced wholesale when new uploads arrive,
// never merged.
type Lesson struct {
	ID        int64  `json:"id" db:"id"`
	ChapterID int64  `json:"chapterId" db:"chapter_id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	Position  int    `json:"position" db:"position"` // Canonical display order within the chapter

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Videos    []Video    `json:"videos"`
	Documents []Document `json:"documents"`
}

// Video is an uploaded lesson video. Duration is not extracted from the
// binary and stays 0.
type Video struct {
	Title    string `json:"title" db:"title"`
	URL      string `json:"url" db:"url"`
	Duration int    `json:"duration" db:"duration"`
	Size     int64  `json:"size" db:"size"`
}

// Document is an uploaded lesson attachment.
type Document struct {
	Title    string `json:"title" db:"title"`
	URL      string `json:"url" db:"url"`
	FileType string `json:"fileType" db:"file_type"`
	Size     int64  `json:"size" db:"size"`
}
