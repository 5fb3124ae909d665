package models

import "time"

// Purchase order statuses. Orders only move forward; there is no
// automatic reversion.
const (
	OrderStatusDraft     = "draft"
	OrderStatusPending   = "pending"
	OrderStatusApproved  = "approved"
	OrderStatusSent      = "sent"
	OrderStatusCompleted = "completed"
)

type PurchaseOrder struct {
	ID           int        `json:"id"`
	OrderNumber  string     `json:"order_number"`
	VendorID     int        `json:"vendor_id"`
	ProjectID    *int       `json:"project_id"`
	UserID       int        `json:"user_id"`
	Status       string     `json:"status"`
	TotalAmount  float64    `json:"total_amount"`
	OrderDate    time.Time  `json:"order_date"`
	DeliveryDate *time.Time `json:"delivery_date"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// PurchaseOrderItem is one line of an order. Quantity is the ceiling
// that receipts are reconciled against; lines are not edited after the
// order leaves draft.
type PurchaseOrderItem struct {
	ID            int       `json:"id"`
	OrderID       int       `json:"order_id"`
	ItemName      string    `json:"item_name"`
	Specification string    `json:"specification"`
	Unit          string    `json:"unit"`
	Quantity      float64   `json:"quantity"`
	UnitPrice     float64   `json:"unit_price"`
	TotalAmount   float64   `json:"total_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderItemReconciliation is an order line with its receipt totals,
// recomputed from the receipt rows on every read.
type OrderItemReconciliation struct {
	PurchaseOrderItem
	TotalReceived float64 `json:"total_received"`
	Remaining     float64 `json:"remaining"`
	ReceiptStatus string  `json:"receipt_status"`
}

// OrderWithDetails includes vendor/project/creator names and lines
type OrderWithDetails struct {
	PurchaseOrder
	VendorName  string                    `json:"vendor_name"`
	ProjectName string                    `json:"project_name"`
	UserName    string                    `json:"user_name"`
	Items       []OrderItemReconciliation `json:"items"`
}

// CreateOrderRequest represents the request to create a purchase order
type CreateOrderRequest struct {
	VendorID     int                `json:"vendor_id"`
	ProjectID    *int               `json:"project_id"`
	OrderDate    string             `json:"order_date"`
	DeliveryDate string             `json:"delivery_date"`
	Notes        string             `json:"notes"`
	Items        []CreateOrderItem  `json:"items"`
}

type CreateOrderItem struct {
	ItemName      string  `json:"item_name"`
	Specification string  `json:"specification"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

// CanTransitionTo reports whether an order may move from its current
// status to target. Only forward transitions are allowed.
func (o *PurchaseOrder) CanTransitionTo(target string) bool {
	switch o.Status {
	case OrderStatusDraft:
		return target == OrderStatusPending
	case OrderStatusPending:
		return target == OrderStatusApproved
	case OrderStatusApproved:
		return target == OrderStatusSent
	case OrderStatusSent:
		return target == OrderStatusCompleted
	}
	return false
}
