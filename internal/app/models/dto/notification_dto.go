package dto

import "time"

// CreateNotificationRequest represents an instructor announcement
type CreateNotificationRequest struct {
	Title   string `json:"title" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// NotificationResponse represents one announcement
type NotificationResponse struct {
	ID           int64     `json:"id"`
	InstructorID int64     `json:"instructorId"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}
