package models

import "time"

// Verification log actions
const (
	LogActionInvoiceUploaded = "invoice_uploaded"
	LogActionItemVerified    = "item_verified"
	LogActionQualityChecked  = "quality_checked"
)

// VerificationLog is an append-only audit entry correlating invoice and
// receipt actions to an order. Rows are never mutated or deleted.
type VerificationLog struct {
	ID            int       `json:"id"`
	OrderID       int       `json:"order_id"`
	InvoiceID     *int      `json:"invoice_id"`
	ItemReceiptID *int      `json:"item_receipt_id"`
	Action        string    `json:"action"`
	Details       string    `json:"details"`
	PerformedBy   int       `json:"performed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// VerificationLogWithDetails includes the performer's name for display
type VerificationLogWithDetails struct {
	VerificationLog
	PerformedByName string `json:"performed_by_name"`
}
