package models

import "time"

// Vendor represents a supplier that purchase orders are placed with
type Vendor struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	BusinessNumber string    `json:"business_number"`
	ContactName    string    `json:"contact_name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
