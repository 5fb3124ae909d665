package models

import "time"

// Invoice statuses
const (
	InvoiceStatusPending  = "pending"
	InvoiceStatusVerified = "verified"
	InvoiceStatusPaid     = "paid"
)

// Invoice types
const (
	InvoiceTypeInvoice    = "invoice"
	InvoiceTypeTaxInvoice = "tax_invoice"
)

type Invoice struct {
	ID                   int        `json:"id"`
	OrderID              int        `json:"order_id"`
	InvoiceNumber        string     `json:"invoice_number"`
	InvoiceType          string     `json:"invoice_type"`
	Status               string     `json:"status"`
	TotalAmount          float64    `json:"total_amount"`
	VATAmount            float64    `json:"vat_amount"`
	AttachmentKey        string     `json:"attachment_key,omitempty"`
	TaxInvoiceIssued     bool       `json:"tax_invoice_issued"`
	TaxInvoiceIssuedDate *time.Time `json:"tax_invoice_issued_date"`
	TaxInvoiceIssuedBy   *int       `json:"tax_invoice_issued_by"`
	VerifiedBy           *int       `json:"verified_by"`
	VerifiedAt           *time.Time `json:"verified_at"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// InvoiceWithDetails includes the order number and actor names
type InvoiceWithDetails struct {
	Invoice
	OrderNumber      string `json:"order_number"`
	VendorName       string `json:"vendor_name"`
	VerifiedByName   string `json:"verified_by_name,omitempty"`
	IssuedByName     string `json:"issued_by_name,omitempty"`
}

// CreateInvoiceRequest carries the multipart form fields of an upload
type CreateInvoiceRequest struct {
	OrderID     int     `json:"order_id"`
	InvoiceType string  `json:"invoice_type"`
	TotalAmount float64 `json:"total_amount"`
	VATAmount   float64 `json:"vat_amount"`
}

// CanVerify reports whether the invoice may transition to verified.
// Verification is one-way: repeat calls on a verified invoice are
// rejected so verified_at is stamped exactly once.
func (i *Invoice) CanVerify() bool {
	return i.Status == InvoiceStatusPending
}

// CanIssueTaxInvoice reports whether a tax invoice may be issued.
// Issuance requires a verified invoice that is not already issued.
func (i *Invoice) CanIssueTaxInvoice() bool {
	return i.Status == InvoiceStatusVerified && !i.TaxInvoiceIssued
}

// CanCancelTaxInvoice reports whether an issued tax invoice may be
// cancelled. Cancelling never touches the invoice status.
func (i *Invoice) CanCancelTaxInvoice() bool {
	return i.TaxInvoiceIssued
}

// CanMarkPaid reports whether the invoice may be administratively
// marked paid.
func (i *Invoice) CanMarkPaid() bool {
	return i.Status == InvoiceStatusVerified
}
