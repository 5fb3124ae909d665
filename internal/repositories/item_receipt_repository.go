package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

// ErrQuantityExceeded is returned when a receipt would push the
// received total for an order line past its ordered quantity.
var ErrQuantityExceeded = errors.New("received quantity exceeds ordered quantity")

type ItemReceiptRepository struct {
	DB *pgxpool.Pool
}

func NewItemReceiptRepository(db *pgxpool.Pool) *ItemReceiptRepository {
	return &ItemReceiptRepository{DB: db}
}

// lockedRemaining row-locks an order line and returns its ordered
// quantity and the received total, excluding one receipt if excludeID
// is non-zero (used when that receipt is being replaced or removed).
// Must run inside the caller's transaction.
func lockedRemaining(ctx context.Context, tx pgx.Tx, orderItemID, excludeID int) (ordered, received float64, err error) {
	err = tx.QueryRow(ctx,
		"SELECT quantity FROM purchase_order_items WHERE id = $1 FOR UPDATE",
		orderItemID).Scan(&ordered)
	if err != nil {
		return 0, 0, err
	}

	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(received_quantity), 0)
		 FROM item_receipts
		 WHERE order_item_id = $1 AND status <> 'rejected' AND id <> $2`,
		orderItemID, excludeID).Scan(&received)
	if err != nil {
		return 0, 0, err
	}
	return ordered, received, nil
}

// Create inserts a receipt after re-checking the quantity cap under a
// row lock, so concurrent submissions cannot overshoot the ordered
// quantity.
func (r *ItemReceiptRepository) Create(ctx context.Context, receipt *models.ItemReceipt) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ordered, received, err := lockedRemaining(ctx, tx, receipt.OrderItemID, 0)
	if err != nil {
		return err
	}
	if receipt.Status != models.ReceiptStatusRejected && received+receipt.ReceivedQuantity > ordered {
		return ErrQuantityExceeded
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO item_receipts(order_item_id, invoice_id, received_quantity, received_date,
		        quality_check, quality_notes, status, verified_by)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		receipt.OrderItemID, receipt.InvoiceID, receipt.ReceivedQuantity, receipt.ReceivedDate,
		receipt.QualityCheck, receipt.QualityNotes, receipt.Status, receipt.VerifiedBy,
	).Scan(&receipt.ID, &receipt.CreatedAt, &receipt.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ItemReceiptRepository) Get(ctx context.Context, id int) (*models.ItemReceipt, error) {
	var rec models.ItemReceipt
	err := r.DB.QueryRow(ctx,
		`SELECT id, order_item_id, invoice_id, received_quantity, received_date,
		        quality_check, quality_notes, status, verified_by, created_at, updated_at
		 FROM item_receipts WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.OrderItemID, &rec.InvoiceID, &rec.ReceivedQuantity, &rec.ReceivedDate,
		&rec.QualityCheck, &rec.QualityNotes, &rec.Status, &rec.VerifiedBy,
		&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByOrderItem returns the receipts for one order line, oldest first
func (r *ItemReceiptRepository) ListByOrderItem(ctx context.Context, orderItemID int) ([]models.ItemReceipt, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, order_item_id, invoice_id, received_quantity, received_date,
		        quality_check, quality_notes, status, verified_by, created_at, updated_at
		 FROM item_receipts WHERE order_item_id = $1 ORDER BY received_date, id`, orderItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []models.ItemReceipt
	for rows.Next() {
		var rec models.ItemReceipt
		if err := rows.Scan(&rec.ID, &rec.OrderItemID, &rec.InvoiceID, &rec.ReceivedQuantity,
			&rec.ReceivedDate, &rec.QualityCheck, &rec.QualityNotes, &rec.Status,
			&rec.VerifiedBy, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}
	return receipts, rows.Err()
}

// Update replaces a receipt's fields, re-checking the cap with the old
// row excluded from the received sum.
func (r *ItemReceiptRepository) Update(ctx context.Context, receipt *models.ItemReceipt) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	ordered, received, err := lockedRemaining(ctx, tx, receipt.OrderItemID, receipt.ID)
	if err != nil {
		return err
	}
	if receipt.Status != models.ReceiptStatusRejected && received+receipt.ReceivedQuantity > ordered {
		return ErrQuantityExceeded
	}

	_, err = tx.Exec(ctx,
		`UPDATE item_receipts SET received_quantity=$1, received_date=$2, quality_check=$3,
		        quality_notes=$4, status=$5, updated_at=NOW()
		 WHERE id=$6`,
		receipt.ReceivedQuantity, receipt.ReceivedDate, receipt.QualityCheck,
		receipt.QualityNotes, receipt.Status, receipt.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ItemReceiptRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, "DELETE FROM item_receipts WHERE id = $1", id)
	return err
}

// bulkLine is one locked order line with its received total
type bulkLine struct {
	orderItemID int
	ordered     float64
	received    float64
}

type plannedReceipt struct {
	orderItemID int
	quantity    float64
}

// planRemainders returns the receipt quantity to synthesize for each
// incomplete line. Complete (and over-received) lines produce nothing.
func planRemainders(lines []bulkLine) []plannedReceipt {
	var plan []plannedReceipt
	for _, l := range lines {
		if rest := models.RemainingQuantity(l.ordered, l.received); rest > 0 {
			plan = append(plan, plannedReceipt{orderItemID: l.orderItemID, quantity: rest})
		}
	}
	return plan
}

// BulkReceiveRemainder creates one approved receipt for the unreceived
// remainder of every incomplete line of an order, inside a single
// transaction: either every remainder lands or none does. Lines already
// complete are untouched. Returns the receipts created.
func (r *ItemReceiptRepository) BulkReceiveRemainder(ctx context.Context, orderID, verifiedBy int, receivedDate time.Time) ([]models.ItemReceipt, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock all lines of the order up front so concurrent receipts
	// cannot slip in between the sum and the insert. Postgres rejects
	// FOR UPDATE together with aggregation, so the lock and the sums
	// are two queries inside the one transaction.
	rows, err := tx.Query(ctx,
		`SELECT id, quantity FROM purchase_order_items
		 WHERE order_id = $1 ORDER BY id FOR UPDATE`, orderID)
	if err != nil {
		return nil, err
	}

	var lines []bulkLine
	for rows.Next() {
		var l bulkLine
		if err := rows.Scan(&l.orderItemID, &l.ordered); err != nil {
			rows.Close()
			return nil, err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sumRows, err := tx.Query(ctx,
		`SELECT ir.order_item_id, COALESCE(SUM(ir.received_quantity), 0)
		 FROM item_receipts ir
		 JOIN purchase_order_items i ON i.id = ir.order_item_id
		 WHERE i.order_id = $1 AND ir.status <> 'rejected'
		 GROUP BY ir.order_item_id`, orderID)
	if err != nil {
		return nil, err
	}

	received := make(map[int]float64)
	for sumRows.Next() {
		var itemID int
		var total float64
		if err := sumRows.Scan(&itemID, &total); err != nil {
			sumRows.Close()
			return nil, err
		}
		received[itemID] = total
	}
	sumRows.Close()
	if err := sumRows.Err(); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].received = received[lines[i].orderItemID]
	}

	var created []models.ItemReceipt
	for _, rem := range planRemainders(lines) {
		rec := models.ItemReceipt{
			OrderItemID:      rem.orderItemID,
			ReceivedQuantity: rem.quantity,
			ReceivedDate:     receivedDate,
			QualityCheck:     true,
			Status:           models.ReceiptStatusApproved,
			VerifiedBy:       &verifiedBy,
		}
		err = tx.QueryRow(ctx,
			`INSERT INTO item_receipts(order_item_id, received_quantity, received_date,
			        quality_check, quality_notes, status, verified_by)
			 VALUES($1, $2, $3, TRUE, '', 'approved', $4)
			 RETURNING id, created_at, updated_at`,
			rec.OrderItemID, rec.ReceivedQuantity, rec.ReceivedDate, verifiedBy,
		).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}
