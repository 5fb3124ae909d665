package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"po-backend/internal/metrics"
	"po-backend/internal/models"
	"po-backend/internal/repositories"
	"po-backend/internal/timeutil"
)

// ErrInvalidTransition is returned when a status change is not a legal
// forward step for the order's current status.
var ErrInvalidTransition = errors.New("invalid order status transition")

type OrderService struct {
	Repo        *repositories.PurchaseOrderRepository
	ReceiptRepo *repositories.ItemReceiptRepository
	Logs        *repositories.VerificationLogRepository
}

func NewOrderService(repo *repositories.PurchaseOrderRepository,
	receiptRepo *repositories.ItemReceiptRepository,
	logs *repositories.VerificationLogRepository) *OrderService {
	return &OrderService{Repo: repo, ReceiptRepo: receiptRepo, Logs: logs}
}

// CreateOrder builds an order from the request, computing each line's
// total and the order total server-side. New orders start in draft.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, userID int) (*models.OrderWithDetails, error) {
	if req.VendorID == 0 {
		return nil, errors.New("vendor_id is required")
	}
	if len(req.Items) == 0 {
		return nil, errors.New("at least one order item is required")
	}

	orderDate := timeutil.Now()
	if req.OrderDate != "" {
		parsed, err := timeutil.ParseDate(req.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("invalid order_date: %w", err)
		}
		orderDate = parsed
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != "" {
		parsed, err := timeutil.ParseDate(req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %w", err)
		}
		deliveryDate = &parsed
	}

	var items []models.PurchaseOrderItem
	var total float64
	for _, line := range req.Items {
		if line.ItemName == "" {
			return nil, errors.New("item_name is required on every line")
		}
		if line.Quantity <= 0 {
			return nil, errors.New("quantity must be positive")
		}
		lineTotal := line.Quantity * line.UnitPrice
		items = append(items, models.PurchaseOrderItem{
			ItemName:      line.ItemName,
			Specification: line.Specification,
			Unit:          line.Unit,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TotalAmount:   lineTotal,
		})
		total += lineTotal
	}

	order := &models.PurchaseOrder{
		VendorID:     req.VendorID,
		ProjectID:    req.ProjectID,
		UserID:       userID,
		Status:       models.OrderStatusDraft,
		TotalAmount:  total,
		OrderDate:    orderDate,
		DeliveryDate: deliveryDate,
		Notes:        req.Notes,
	}
	if err := s.Repo.Create(ctx, order, items); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, order.ID)
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*models.OrderWithDetails, error) {
	return s.Repo.Get(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]*models.OrderWithDetails, error) {
	return s.Repo.List(ctx)
}

func (s *OrderService) GetOrderItem(ctx context.Context, itemID int) (*models.OrderItemReconciliation, error) {
	return s.Repo.GetItem(ctx, itemID)
}

// Transition moves an order one step forward. The transition is
// validated against the current status, then applied with a guarded
// update so a concurrent request cannot apply it twice.
func (s *OrderService) Transition(ctx context.Context, id int, target string) (*models.OrderWithDetails, error) {
	order, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransitionTo(target) {
		metrics.InvariantRejections.WithLabelValues("order_transition").Inc()
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, target)
	}
	if err := s.Repo.UpdateStatus(ctx, id, order.Status, target); err != nil {
		if errors.Is(err, repositories.ErrStaleStatus) {
			metrics.InvariantRejections.WithLabelValues("order_transition").Inc()
		}
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

// ReceiveAll registers the unreceived remainder of every line of an
// order as one approved receipt per line, atomically. When every line
// ends up complete and the order is in sent, it advances to completed.
func (s *OrderService) ReceiveAll(ctx context.Context, orderID, userID int) (*models.OrderWithDetails, error) {
	order, err := s.Repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	created, err := s.ReceiptRepo.BulkReceiveRemainder(ctx, orderID, userID, timeutil.Now())
	if err != nil {
		return nil, err
	}
	metrics.ReceiptsRegistered.Add(float64(len(created)))

	for _, rec := range created {
		receiptID := rec.ID
		entry := &models.VerificationLog{
			OrderID:       orderID,
			ItemReceiptID: &receiptID,
			Action:        models.LogActionItemVerified,
			Details:       fmt.Sprintf("Bulk received %.2f for order item %d", rec.ReceivedQuantity, rec.OrderItemID),
			PerformedBy:   userID,
		}
		if err := s.Logs.Append(ctx, entry); err != nil {
			log.Printf("[OrderService] Failed to append verification log: %v", err)
		}
	}

	updated, err := s.Repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == models.OrderStatusSent && allComplete(updated.Items) {
		if err := s.Repo.UpdateStatus(ctx, orderID, models.OrderStatusSent, models.OrderStatusCompleted); err != nil {
			// A concurrent transition already completed it; the
			// receipts themselves landed, so don't fail the call.
			if !errors.Is(err, repositories.ErrStaleStatus) {
				return nil, err
			}
		}
		return s.Repo.Get(ctx, orderID)
	}
	return updated, nil
}

func allComplete(items []models.OrderItemReconciliation) bool {
	for _, item := range items {
		if item.ReceiptStatus != models.ReceiptStateComplete {
			return false
		}
	}
	return len(items) > 0
}
