package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

// ErrInvoiceStateChanged is returned when a guarded transition matched
// no row: the invoice was no longer in the state the caller checked.
var ErrInvoiceStateChanged = errors.New("invoice state changed concurrently")

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// GenerateInvoiceNumber generates a unique invoice number
func (r *InvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('invoice_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%06d", nextNum), nil
}

// Create inserts a new pending invoice
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice) error {
	if inv.InvoiceNumber == "" {
		invoiceNumber, err := r.GenerateInvoiceNumber(ctx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = invoiceNumber
	}

	return r.DB.QueryRow(ctx,
		`INSERT INTO invoices(order_id, invoice_number, invoice_type, status,
		        total_amount, vat_amount, attachment_key)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		inv.OrderID, inv.InvoiceNumber, inv.InvoiceType, inv.Status,
		inv.TotalAmount, inv.VATAmount, inv.AttachmentKey,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
}

func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.InvoiceWithDetails, error) {
	var inv models.InvoiceWithDetails
	err := r.DB.QueryRow(ctx,
		`SELECT i.id, i.order_id, i.invoice_number, i.invoice_type, i.status,
		        i.total_amount, i.vat_amount, i.attachment_key, i.tax_invoice_issued,
		        i.tax_invoice_issued_date, i.tax_invoice_issued_by,
		        i.verified_by, i.verified_at, i.created_at, i.updated_at,
		        COALESCE(o.order_number, '') AS order_number,
		        COALESCE(v.name, '') AS vendor_name,
		        COALESCE(vu.name, '') AS verified_by_name,
		        COALESCE(iu.name, '') AS issued_by_name
		 FROM invoices i
		 LEFT JOIN purchase_orders o ON i.order_id = o.id
		 LEFT JOIN vendors v ON o.vendor_id = v.id
		 LEFT JOIN users vu ON i.verified_by = vu.id
		 LEFT JOIN users iu ON i.tax_invoice_issued_by = iu.id
		 WHERE i.id = $1`, id,
	).Scan(&inv.ID, &inv.OrderID, &inv.InvoiceNumber, &inv.InvoiceType, &inv.Status,
		&inv.TotalAmount, &inv.VATAmount, &inv.AttachmentKey, &inv.TaxInvoiceIssued,
		&inv.TaxInvoiceIssuedDate, &inv.TaxInvoiceIssuedBy,
		&inv.VerifiedBy, &inv.VerifiedAt, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.OrderNumber, &inv.VendorName, &inv.VerifiedByName, &inv.IssuedByName)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// List returns all invoices, optionally filtered by order
func (r *InvoiceRepository) List(ctx context.Context, orderID int) ([]*models.InvoiceWithDetails, error) {
	query := `SELECT i.id, i.order_id, i.invoice_number, i.invoice_type, i.status,
	        i.total_amount, i.vat_amount, i.attachment_key, i.tax_invoice_issued,
	        i.tax_invoice_issued_date, i.tax_invoice_issued_by,
	        i.verified_by, i.verified_at, i.created_at, i.updated_at,
	        COALESCE(o.order_number, '') AS order_number,
	        COALESCE(v.name, '') AS vendor_name,
	        COALESCE(vu.name, '') AS verified_by_name,
	        COALESCE(iu.name, '') AS issued_by_name
	 FROM invoices i
	 LEFT JOIN purchase_orders o ON i.order_id = o.id
	 LEFT JOIN vendors v ON o.vendor_id = v.id
	 LEFT JOIN users vu ON i.verified_by = vu.id
	 LEFT JOIN users iu ON i.tax_invoice_issued_by = iu.id`

	var rows pgx.Rows
	var err error
	if orderID > 0 {
		rows, err = r.DB.Query(ctx, query+" WHERE i.order_id = $1 ORDER BY i.created_at DESC", orderID)
	} else {
		rows, err = r.DB.Query(ctx, query+" ORDER BY i.created_at DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.InvoiceWithDetails
	for rows.Next() {
		var inv models.InvoiceWithDetails
		if err := rows.Scan(&inv.ID, &inv.OrderID, &inv.InvoiceNumber, &inv.InvoiceType,
			&inv.Status, &inv.TotalAmount, &inv.VATAmount, &inv.AttachmentKey,
			&inv.TaxInvoiceIssued, &inv.TaxInvoiceIssuedDate, &inv.TaxInvoiceIssuedBy,
			&inv.VerifiedBy, &inv.VerifiedAt, &inv.CreatedAt, &inv.UpdatedAt,
			&inv.OrderNumber, &inv.VendorName, &inv.VerifiedByName, &inv.IssuedByName); err != nil {
			return nil, err
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}

// Verify transitions pending → verified. The WHERE clause guards the
// transition so a repeat call can never restamp verified_at.
func (r *InvoiceRepository) Verify(ctx context.Context, id, verifiedBy int, verifiedAt time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = 'verified', verified_by = $1, verified_at = $2, updated_at = NOW()
		 WHERE id = $3 AND status = 'pending'`,
		verifiedBy, verifiedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceStateChanged
	}
	return nil
}

// IssueTaxInvoice sets the issued flag. Requires the invoice to still
// be verified and not already issued.
func (r *InvoiceRepository) IssueTaxInvoice(ctx context.Context, id, issuedBy int, issuedAt time.Time) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET tax_invoice_issued = TRUE, tax_invoice_issued_date = $1,
		        tax_invoice_issued_by = $2, updated_at = NOW()
		 WHERE id = $3 AND status = 'verified' AND tax_invoice_issued = FALSE`,
		issuedAt, issuedBy, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceStateChanged
	}
	return nil
}

// CancelTaxInvoice clears the issued flag and its stamps. Invoice
// status is left untouched; a later re-issue stamps fresh values.
func (r *InvoiceRepository) CancelTaxInvoice(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET tax_invoice_issued = FALSE, tax_invoice_issued_date = NULL,
		        tax_invoice_issued_by = NULL, updated_at = NOW()
		 WHERE id = $1 AND tax_invoice_issued = TRUE`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceStateChanged
	}
	return nil
}

// MarkPaid transitions verified → paid (administrative action)
func (r *InvoiceRepository) MarkPaid(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = 'paid', updated_at = NOW()
		 WHERE id = $1 AND status = 'verified'`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvoiceStateChanged
	}
	return nil
}
