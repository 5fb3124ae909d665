package models

import "time"

// Item is a catalog entry used to pre-fill order lines
type Item struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Specification string    `json:"specification"`
	Unit          string    `json:"unit"`
	UnitPrice     float64   `json:"unit_price"`
	VendorID      *int      `json:"vendor_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
