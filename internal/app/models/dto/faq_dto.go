package dto

import "time"

// CreateFAQRequest represents a new help page entry
type CreateFAQRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	IsActive *bool  `json:"isActive"`
	Order    int    `json:"order"`
}

// FAQResponse represents one help page entry
type FAQResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	IsActive  bool      `json:"isActive"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}
