package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"po-backend/internal/models"
)

// ErrStaleStatus is returned when a conditional status update matched
// no row, meaning another request changed the status first.
var ErrStaleStatus = errors.New("order status changed concurrently")

type PurchaseOrderRepository struct {
	DB *pgxpool.Pool
}

func NewPurchaseOrderRepository(db *pgxpool.Pool) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{DB: db}
}

// GenerateOrderNumber generates a unique order number from a sequence
func (r *PurchaseOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	var nextNum int
	err := r.DB.QueryRow(ctx, "SELECT nextval('order_number_sequence')").Scan(&nextNum)
	if err != nil {
		return "", fmt.Errorf("failed to get next order number: %w", err)
	}

	prefix := "PO"
	r.DB.QueryRow(ctx,
		"SELECT setting_value FROM system_settings WHERE setting_key = 'order_number_prefix'").Scan(&prefix)

	return fmt.Sprintf("%s-%06d", prefix, nextNum), nil
}

// Create inserts an order with its lines in one transaction
func (r *PurchaseOrderRepository) Create(ctx context.Context, order *models.PurchaseOrder, items []models.PurchaseOrderItem) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if order.OrderNumber == "" {
		orderNumber, err := r.GenerateOrderNumber(ctx)
		if err != nil {
			return err
		}
		order.OrderNumber = orderNumber
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO purchase_orders(order_number, vendor_id, project_id, user_id, status,
		        total_amount, order_date, delivery_date, notes)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		order.OrderNumber, order.VendorID, order.ProjectID, order.UserID, order.Status,
		order.TotalAmount, order.OrderDate, order.DeliveryDate, order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		item := &items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO purchase_order_items(order_id, item_name, specification, unit,
			        quantity, unit_price, total_amount)
			 VALUES($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id, created_at`,
			item.OrderID, item.ItemName, item.Specification, item.Unit,
			item.Quantity, item.UnitPrice, item.TotalAmount,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Get retrieves an order with vendor/project/creator names and its
// lines, each line carrying receipt totals aggregated at read time.
func (r *PurchaseOrderRepository) Get(ctx context.Context, id int) (*models.OrderWithDetails, error) {
	var order models.OrderWithDetails
	err := r.DB.QueryRow(ctx,
		`SELECT o.id, o.order_number, o.vendor_id, o.project_id, o.user_id, o.status,
		        o.total_amount, o.order_date, o.delivery_date, o.notes, o.created_at, o.updated_at,
		        COALESCE(v.name, '') AS vendor_name,
		        COALESCE(p.name, '') AS project_name,
		        COALESCE(u.name, '') AS user_name
		 FROM purchase_orders o
		 LEFT JOIN vendors v ON o.vendor_id = v.id
		 LEFT JOIN projects p ON o.project_id = p.id
		 LEFT JOIN users u ON o.user_id = u.id
		 WHERE o.id = $1`, id,
	).Scan(&order.ID, &order.OrderNumber, &order.VendorID, &order.ProjectID, &order.UserID,
		&order.Status, &order.TotalAmount, &order.OrderDate, &order.DeliveryDate, &order.Notes,
		&order.CreatedAt, &order.UpdatedAt, &order.VendorName, &order.ProjectName, &order.UserName)
	if err != nil {
		return nil, err
	}

	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// GetItems returns the order's lines with received totals. Rejected
// receipts are excluded from the sum, matching the service-side rule.
func (r *PurchaseOrderRepository) GetItems(ctx context.Context, orderID int) ([]models.OrderItemReconciliation, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT i.id, i.order_id, i.item_name, i.specification, i.unit,
		        i.quantity, i.unit_price, i.total_amount, i.created_at,
		        COALESCE(SUM(ir.received_quantity) FILTER (WHERE ir.status <> 'rejected'), 0) AS total_received
		 FROM purchase_order_items i
		 LEFT JOIN item_receipts ir ON ir.order_item_id = i.id
		 WHERE i.order_id = $1
		 GROUP BY i.id
		 ORDER BY i.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItemReconciliation
	for rows.Next() {
		var item models.OrderItemReconciliation
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ItemName, &item.Specification,
			&item.Unit, &item.Quantity, &item.UnitPrice, &item.TotalAmount,
			&item.CreatedAt, &item.TotalReceived); err != nil {
			return nil, err
		}
		item.Remaining = models.RemainingQuantity(item.Quantity, item.TotalReceived)
		item.ReceiptStatus = models.DeriveReceiptStatus(item.Quantity, item.TotalReceived)
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetItem returns one order line with its received total
func (r *PurchaseOrderRepository) GetItem(ctx context.Context, itemID int) (*models.OrderItemReconciliation, error) {
	var item models.OrderItemReconciliation
	err := r.DB.QueryRow(ctx,
		`SELECT i.id, i.order_id, i.item_name, i.specification, i.unit,
		        i.quantity, i.unit_price, i.total_amount, i.created_at,
		        COALESCE(SUM(ir.received_quantity) FILTER (WHERE ir.status <> 'rejected'), 0) AS total_received
		 FROM purchase_order_items i
		 LEFT JOIN item_receipts ir ON ir.order_item_id = i.id
		 WHERE i.id = $1
		 GROUP BY i.id`, itemID,
	).Scan(&item.ID, &item.OrderID, &item.ItemName, &item.Specification,
		&item.Unit, &item.Quantity, &item.UnitPrice, &item.TotalAmount,
		&item.CreatedAt, &item.TotalReceived)
	if err != nil {
		return nil, err
	}
	item.Remaining = models.RemainingQuantity(item.Quantity, item.TotalReceived)
	item.ReceiptStatus = models.DeriveReceiptStatus(item.Quantity, item.TotalReceived)
	return &item, nil
}

// List returns all orders with display names, newest first
func (r *PurchaseOrderRepository) List(ctx context.Context) ([]*models.OrderWithDetails, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT o.id, o.order_number, o.vendor_id, o.project_id, o.user_id, o.status,
		        o.total_amount, o.order_date, o.delivery_date, o.notes, o.created_at, o.updated_at,
		        COALESCE(v.name, '') AS vendor_name,
		        COALESCE(p.name, '') AS project_name,
		        COALESCE(u.name, '') AS user_name
		 FROM purchase_orders o
		 LEFT JOIN vendors v ON o.vendor_id = v.id
		 LEFT JOIN projects p ON o.project_id = p.id
		 LEFT JOIN users u ON o.user_id = u.id
		 ORDER BY o.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.OrderWithDetails
	for rows.Next() {
		var order models.OrderWithDetails
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.VendorID, &order.ProjectID,
			&order.UserID, &order.Status, &order.TotalAmount, &order.OrderDate,
			&order.DeliveryDate, &order.Notes, &order.CreatedAt, &order.UpdatedAt,
			&order.VendorName, &order.ProjectName, &order.UserName); err != nil {
			return nil, err
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}

// UpdateStatus advances an order's status only when the current status
// still matches, so concurrent transitions cannot skip or repeat steps.
func (r *PurchaseOrderRepository) UpdateStatus(ctx context.Context, id int, from, to string) error {
	tag, err := r.DB.Exec(ctx,
		"UPDATE purchase_orders SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3",
		to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleStatus
	}
	return nil
}
