package models

import "time"

// LoginLog records a login attempt, successful or not
type LoginLog struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id"`
	Email     string    `json:"email"`
	Success   bool      `json:"success"`
	IPAddress *string   `json:"ip_address,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
