package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

// VerificationLogRepository appends audit entries. There is no update
// or delete: the trail is append-only by construction.
type VerificationLogRepository struct {
	DB *pgxpool.Pool
}

func NewVerificationLogRepository(db *pgxpool.Pool) *VerificationLogRepository {
	return &VerificationLogRepository{DB: db}
}

func (r *VerificationLogRepository) Append(ctx context.Context, l *models.VerificationLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO verification_logs(order_id, invoice_id, item_receipt_id, action, details, performed_by)
		 VALUES($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		l.OrderID, l.InvoiceID, l.ItemReceiptID, l.Action, l.Details, l.PerformedBy,
	).Scan(&l.ID, &l.CreatedAt)
}

// List returns log entries newest first, optionally filtered by order
func (r *VerificationLogRepository) List(ctx context.Context, orderID int) ([]*models.VerificationLogWithDetails, error) {
	query := `SELECT l.id, l.order_id, l.invoice_id, l.item_receipt_id, l.action,
	        l.details, COALESCE(l.performed_by, 0), l.created_at, COALESCE(u.name, '')
	 FROM verification_logs l
	 LEFT JOIN users u ON l.performed_by = u.id`

	var rows pgx.Rows
	var err error
	if orderID > 0 {
		rows, err = r.DB.Query(ctx, query+" WHERE l.order_id = $1 ORDER BY l.created_at DESC", orderID)
	} else {
		rows, err = r.DB.Query(ctx, query+" ORDER BY l.created_at DESC")
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.VerificationLogWithDetails
	for rows.Next() {
		var l models.VerificationLogWithDetails
		if err := rows.Scan(&l.ID, &l.OrderID, &l.InvoiceID, &l.ItemReceiptID, &l.Action,
			&l.Details, &l.PerformedBy, &l.CreatedAt, &l.PerformedByName); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
