package dto

import "time"

// AddToCartRequest places a course in the cart
type AddToCartRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}

// CartItemResponse represents one cart entry with its course summary
type CartItemResponse struct {
	ID      int64                  `json:"id"`
	AddedAt time.Time              `json:"addedAt"`
	Course  *CourseSummaryResponse `json:"course,omitempty"`
}

// CartResponse represents a student's cart
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}
