package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"po-backend/internal/metrics"
	"po-backend/internal/models"
	"po-backend/internal/repositories"
	"po-backend/internal/timeutil"
)

type ReceiptService struct {
	Repo      *repositories.ItemReceiptRepository
	OrderRepo *repositories.PurchaseOrderRepository
	Logs      *repositories.VerificationLogRepository
}

func NewReceiptService(repo *repositories.ItemReceiptRepository,
	orderRepo *repositories.PurchaseOrderRepository,
	logs *repositories.VerificationLogRepository) *ReceiptService {
	return &ReceiptService{Repo: repo, OrderRepo: orderRepo, Logs: logs}
}

// CreateReceipt registers a receipt against an order line. The quantity
// cap (received total never above ordered) is re-checked under a row
// lock inside the repository, so the check here only shapes the error
// the client sees for obvious cases.
func (s *ReceiptService) CreateReceipt(ctx context.Context, req *models.CreateItemReceiptRequest, userID int) (*models.ItemReceipt, int, error) {
	if req.OrderItemID == 0 {
		return nil, 0, errors.New("order_item_id is required")
	}
	if req.ReceivedQuantity <= 0 {
		return nil, 0, errors.New("received_quantity must be positive")
	}

	item, err := s.OrderRepo.GetItem(ctx, req.OrderItemID)
	if err != nil {
		return nil, 0, errors.New("order item not found")
	}

	status := req.Status
	if status == "" {
		status = models.ReceiptStatusPending
	}

	receivedDate := timeutil.Now()
	if req.ReceivedDate != "" {
		parsed, err := timeutil.ParseDate(req.ReceivedDate)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid received_date: %w", err)
		}
		receivedDate = parsed
	}

	receipt := &models.ItemReceipt{
		OrderItemID:      req.OrderItemID,
		InvoiceID:        req.InvoiceID,
		ReceivedQuantity: req.ReceivedQuantity,
		ReceivedDate:     receivedDate,
		QualityCheck:     req.QualityCheck,
		QualityNotes:     req.QualityNotes,
		Status:           status,
		VerifiedBy:       &userID,
	}
	if err := s.Repo.Create(ctx, receipt); err != nil {
		if errors.Is(err, repositories.ErrQuantityExceeded) {
			metrics.InvariantRejections.WithLabelValues("receipt_quantity").Inc()
		}
		return nil, 0, err
	}
	metrics.ReceiptsRegistered.Inc()

	s.appendLog(ctx, item.OrderID, receipt.ID, models.LogActionItemVerified,
		fmt.Sprintf("Received %.2f %s of %s", receipt.ReceivedQuantity, item.Unit, item.ItemName), userID)
	if receipt.QualityCheck {
		s.appendLog(ctx, item.OrderID, receipt.ID, models.LogActionQualityChecked,
			fmt.Sprintf("Quality checked %s: %s", item.ItemName, receipt.QualityNotes), userID)
	}

	return receipt, item.OrderID, nil
}

func (s *ReceiptService) GetReceipt(ctx context.Context, id int) (*models.ItemReceipt, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ReceiptService) ListByOrderItem(ctx context.Context, orderItemID int) ([]models.ItemReceipt, error) {
	return s.Repo.ListByOrderItem(ctx, orderItemID)
}

// applyReceiptUpdate merges a partial update into an existing receipt.
// Nil fields were omitted from the request and leave the current value
// alone.
func applyReceiptUpdate(receipt *models.ItemReceipt, req *models.UpdateItemReceiptRequest) error {
	if req.ReceivedQuantity != nil {
		if *req.ReceivedQuantity <= 0 {
			return errors.New("received_quantity must be positive")
		}
		receipt.ReceivedQuantity = *req.ReceivedQuantity
	}
	if req.ReceivedDate != nil {
		parsed, err := timeutil.ParseDate(*req.ReceivedDate)
		if err != nil {
			return fmt.Errorf("invalid received_date: %w", err)
		}
		receipt.ReceivedDate = parsed
	}
	if req.QualityCheck != nil {
		receipt.QualityCheck = *req.QualityCheck
	}
	if req.QualityNotes != nil {
		receipt.QualityNotes = *req.QualityNotes
	}
	if req.Status != nil {
		receipt.Status = *req.Status
	}
	return nil
}

// UpdateReceipt edits an existing receipt, re-checking the cap with the
// old row excluded. Marking a receipt rejected frees its quantity for
// later receipts. Returns the updated receipt and its order's id.
func (s *ReceiptService) UpdateReceipt(ctx context.Context, id int, req *models.UpdateItemReceiptRequest, userID int) (*models.ItemReceipt, int, error) {
	receipt, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	if err := applyReceiptUpdate(receipt, req); err != nil {
		return nil, 0, err
	}

	if err := s.Repo.Update(ctx, receipt); err != nil {
		if errors.Is(err, repositories.ErrQuantityExceeded) {
			metrics.InvariantRejections.WithLabelValues("receipt_quantity").Inc()
		}
		return nil, 0, err
	}

	item, err := s.OrderRepo.GetItem(ctx, receipt.OrderItemID)
	if err != nil {
		return nil, 0, err
	}
	s.appendLog(ctx, item.OrderID, receipt.ID, models.LogActionItemVerified,
		fmt.Sprintf("Updated receipt for %s (%.2f, %s)", item.ItemName, receipt.ReceivedQuantity, receipt.Status), userID)

	updated, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return updated, item.OrderID, nil
}

// DeleteReceipt removes a receipt and records the removal in the audit
// trail. The log entry carries no receipt pointer (the row is gone);
// the detail text identifies what was removed. Returns the order id so
// the caller can drop its cached reconciliation.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id, userID int) (int, error) {
	receipt, err := s.Repo.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	item, err := s.OrderRepo.GetItem(ctx, receipt.OrderItemID)
	if err != nil {
		return 0, err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return 0, err
	}

	entry := &models.VerificationLog{
		OrderID:     item.OrderID,
		Action:      models.LogActionItemVerified,
		Details:     fmt.Sprintf("Removed receipt of %.2f %s of %s", receipt.ReceivedQuantity, item.Unit, item.ItemName),
		PerformedBy: userID,
	}
	if err := s.Logs.Append(ctx, entry); err != nil {
		log.Printf("[ReceiptService] Failed to append verification log: %v", err)
	}

	return item.OrderID, nil
}

func (s *ReceiptService) appendLog(ctx context.Context, orderID, receiptID int, action, details string, userID int) {
	entry := &models.VerificationLog{
		OrderID:       orderID,
		ItemReceiptID: &receiptID,
		Action:        action,
		Details:       details,
		PerformedBy:   userID,
	}
	if err := s.Logs.Append(ctx, entry); err != nil {
		log.Printf("[ReceiptService] Failed to append verification log: %v", err)
	}
}
