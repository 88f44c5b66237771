package models

import (
	"time"
)

// FAQ is one entry of the public help page. Inactive entries stay stored
// but are not served.
type FAQ struct {
	ID        int64     `json:"id" db:"id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	Order     int       `json:"order" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
