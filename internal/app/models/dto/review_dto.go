package dto

import "time"

// CreateReviewRequest represents a review submission
type CreateReviewRequest struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewResponse represents one review with the reviewer's name
type ReviewResponse struct {
	ID        int64     `json:"id"`
	CourseID  int64     `json:"courseId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// CourseReviewsResponse bundles a course's reviews with its aggregate rating
type CourseReviewsResponse struct {
	AvgStars    float64          `json:"avgStars"`
	ReviewCount int              `json:"reviewCount"`
	Reviews     []ReviewResponse `json:"reviews"`
}
