package models

import "time"

// Receipt record statuses
const (
	ReceiptStatusPending  = "pending"
	ReceiptStatusApproved = "approved"
	ReceiptStatusRejected = "rejected"
)

// Derived per-order-item reconciliation statuses
const (
	ReceiptStatePending  = "pending"
	ReceiptStatePartial  = "partial"
	ReceiptStateComplete = "complete"
)

// ItemReceipt records physically receiving some quantity against one
// order line. A line may accumulate several receipts (partial
// deliveries).
type ItemReceipt struct {
	ID               int       `json:"id"`
	OrderItemID      int       `json:"order_item_id"`
	InvoiceID        *int      `json:"invoice_id"`
	ReceivedQuantity float64   `json:"received_quantity"`
	ReceivedDate     time.Time `json:"received_date"`
	QualityCheck     bool      `json:"quality_check"`
	QualityNotes     string    `json:"quality_notes"`
	Status           string    `json:"status"`
	VerifiedBy       *int      `json:"verified_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateItemReceiptRequest represents the request to register a receipt
type CreateItemReceiptRequest struct {
	OrderItemID      int     `json:"order_item_id"`
	InvoiceID        *int    `json:"invoice_id"`
	ReceivedQuantity float64 `json:"received_quantity"`
	ReceivedDate     string  `json:"received_date"`
	QualityCheck     bool    `json:"quality_check"`
	QualityNotes     string  `json:"quality_notes"`
	Status           string  `json:"status"`
}

// UpdateItemReceiptRequest represents the request to edit a receipt.
// Pointer fields distinguish "not sent" from an explicit zero value, so
// a partial PATCH leaves omitted fields untouched.
type UpdateItemReceiptRequest struct {
	ReceivedQuantity *float64 `json:"received_quantity"`
	ReceivedDate     *string  `json:"received_date"`
	QualityCheck     *bool    `json:"quality_check"`
	QualityNotes     *string  `json:"quality_notes"`
	Status           *string  `json:"status"`
}

// DeriveReceiptStatus classifies an order line from its ordered and
// received quantities: pending when nothing arrived, complete once the
// received total meets the ordered quantity, partial in between.
func DeriveReceiptStatus(ordered, received float64) string {
	switch {
	case received <= 0:
		return ReceiptStatePending
	case received >= ordered:
		return ReceiptStateComplete
	default:
		return ReceiptStatePartial
	}
}

// RemainingQuantity returns the unreceived amount for an order line,
// never negative.
func RemainingQuantity(ordered, received float64) float64 {
	if received >= ordered {
		return 0
	}
	return ordered - received
}

// SumReceived totals the received quantity across a line's receipts.
// Rejected receipts do not count toward the total.
func SumReceived(receipts []ItemReceipt) float64 {
	var total float64
	for _, r := range receipts {
		if r.Status == ReceiptStatusRejected {
			continue
		}
		total += r.ReceivedQuantity
	}
	return total
}
