package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"po-backend/internal/metrics"
	"po-backend/internal/models"
	"po-backend/internal/repositories"
	"po-backend/internal/storage"
	"po-backend/internal/timeutil"
)

type InvoiceService struct {
	Repo        *repositories.InvoiceRepository
	OrderRepo   *repositories.PurchaseOrderRepository
	Logs        *repositories.VerificationLogRepository
	ActionLogs  *repositories.AdminActionLogRepository
	Settings    *repositories.SystemSettingRepository
	Attachments *storage.AttachmentStore
}

func NewInvoiceService(repo *repositories.InvoiceRepository, orderRepo *repositories.PurchaseOrderRepository,
	logs *repositories.VerificationLogRepository, actionLogs *repositories.AdminActionLogRepository,
	settings *repositories.SystemSettingRepository, attachments *storage.AttachmentStore) *InvoiceService {
	return &InvoiceService{
		Repo:        repo,
		OrderRepo:   orderRepo,
		Logs:        logs,
		ActionLogs:  actionLogs,
		Settings:    settings,
		Attachments: attachments,
	}
}

// Upload registers a new pending invoice against an order, storing the
// attached file when one was sent. A missing vat_amount is derived from
// the configured default VAT rate.
func (s *InvoiceService) Upload(ctx context.Context, req *models.CreateInvoiceRequest,
	file io.Reader, filename string, fileSize int64, contentType string, userID int) (*models.InvoiceWithDetails, error) {

	if req.OrderID == 0 {
		return nil, errors.New("order_id is required")
	}
	if req.TotalAmount <= 0 {
		return nil, errors.New("total_amount must be positive")
	}
	if _, err := s.OrderRepo.Get(ctx, req.OrderID); err != nil {
		return nil, errors.New("order not found")
	}

	invoiceType := req.InvoiceType
	if invoiceType == "" {
		invoiceType = models.InvoiceTypeInvoice
	}

	vat := req.VATAmount
	if vat == 0 {
		vat = req.TotalAmount * s.defaultVATRate(ctx)
	}

	inv := &models.Invoice{
		OrderID:     req.OrderID,
		InvoiceType: invoiceType,
		Status:      models.InvoiceStatusPending,
		TotalAmount: req.TotalAmount,
		VATAmount:   vat,
	}

	number, err := s.Repo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	inv.InvoiceNumber = number

	if file != nil && s.Attachments != nil {
		key, err := s.Attachments.Put(ctx, inv.InvoiceNumber, filename, file, fileSize, contentType)
		if err != nil {
			return nil, err
		}
		inv.AttachmentKey = key
	}

	if err := s.Repo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.appendLog(ctx, inv.OrderID, inv.ID, models.LogActionInvoiceUploaded,
		fmt.Sprintf("Uploaded %s %s (total %.2f)", invoiceType, inv.InvoiceNumber, inv.TotalAmount), userID)

	return s.Repo.Get(ctx, inv.ID)
}

func (s *InvoiceService) defaultVATRate(ctx context.Context) float64 {
	setting, err := s.Settings.Get(ctx, "default_vat_rate")
	if err != nil {
		return 0.10
	}
	rate, err := strconv.ParseFloat(setting.SettingValue, 64)
	if err != nil || rate < 0 {
		return 0.10
	}
	return rate
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id int) (*models.InvoiceWithDetails, error) {
	return s.Repo.Get(ctx, id)
}

func (s *InvoiceService) ListInvoices(ctx context.Context, orderID int) ([]*models.InvoiceWithDetails, error) {
	return s.Repo.List(ctx, orderID)
}

// GetAttachment streams an invoice's stored file
func (s *InvoiceService) GetAttachment(ctx context.Context, id int) (io.ReadCloser, string, error) {
	inv, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if inv.AttachmentKey == "" {
		return nil, "", errors.New("invoice has no attachment")
	}
	if s.Attachments == nil {
		return nil, "", errors.New("attachment storage not configured")
	}
	return s.Attachments.Get(ctx, inv.AttachmentKey)
}

// Verify transitions an invoice from pending to verified, stamping the
// verifier once. A repeat call is rejected, keeping the stamp intact.
func (s *InvoiceService) Verify(ctx context.Context, id, userID int) (*models.InvoiceWithDetails, error) {
	inv, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanVerify() {
		metrics.InvariantRejections.WithLabelValues("invoice_verify").Inc()
		return nil, repositories.ErrInvoiceStateChanged
	}
	if err := s.Repo.Verify(ctx, id, userID, timeutil.Now()); err != nil {
		if errors.Is(err, repositories.ErrInvoiceStateChanged) {
			metrics.InvariantRejections.WithLabelValues("invoice_verify").Inc()
		}
		return nil, err
	}
	metrics.InvoicesVerified.Inc()

	s.appendLog(ctx, inv.OrderID, inv.ID, models.LogActionItemVerified,
		fmt.Sprintf("Verified invoice %s", inv.InvoiceNumber), userID)

	return s.Repo.Get(ctx, id)
}

// IssueTaxInvoice marks the tax invoice issued for a verified invoice
func (s *InvoiceService) IssueTaxInvoice(ctx context.Context, id, userID int) (*models.InvoiceWithDetails, error) {
	inv, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanIssueTaxInvoice() {
		metrics.InvariantRejections.WithLabelValues("tax_invoice_issue").Inc()
		return nil, repositories.ErrInvoiceStateChanged
	}
	if err := s.Repo.IssueTaxInvoice(ctx, id, userID, timeutil.Now()); err != nil {
		if errors.Is(err, repositories.ErrInvoiceStateChanged) {
			metrics.InvariantRejections.WithLabelValues("tax_invoice_issue").Inc()
		}
		return nil, err
	}

	s.appendLog(ctx, inv.OrderID, inv.ID, models.LogActionItemVerified,
		fmt.Sprintf("Issued tax invoice for %s", inv.InvoiceNumber), userID)

	return s.Repo.Get(ctx, id)
}

// CancelTaxInvoice clears the issued flag and its stamps; the invoice
// status is untouched and a later re-issue stamps fresh values.
func (s *InvoiceService) CancelTaxInvoice(ctx context.Context, id, userID int) (*models.InvoiceWithDetails, error) {
	inv, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanCancelTaxInvoice() {
		metrics.InvariantRejections.WithLabelValues("tax_invoice_cancel").Inc()
		return nil, repositories.ErrInvoiceStateChanged
	}
	if err := s.Repo.CancelTaxInvoice(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrInvoiceStateChanged) {
			metrics.InvariantRejections.WithLabelValues("tax_invoice_cancel").Inc()
		}
		return nil, err
	}

	s.appendLog(ctx, inv.OrderID, inv.ID, models.LogActionItemVerified,
		fmt.Sprintf("Cancelled tax invoice for %s", inv.InvoiceNumber), userID)

	return s.Repo.Get(ctx, id)
}

// MarkPaid administratively marks a verified invoice as paid
func (s *InvoiceService) MarkPaid(ctx context.Context, id, adminID int, ip string) (*models.InvoiceWithDetails, error) {
	inv, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanMarkPaid() {
		metrics.InvariantRejections.WithLabelValues("invoice_mark_paid").Inc()
		return nil, repositories.ErrInvoiceStateChanged
	}
	if err := s.Repo.MarkPaid(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrInvoiceStateChanged) {
			metrics.InvariantRejections.WithLabelValues("invoice_mark_paid").Inc()
		}
		return nil, err
	}

	invoiceID := inv.ID
	entry := &models.AdminActionLog{
		AdminUserID: adminID,
		ActionType:  models.ActionInvoiceMarkedPaid,
		TargetType:  "invoice",
		TargetID:    &invoiceID,
		Description: fmt.Sprintf("Marked invoice %s paid", inv.InvoiceNumber),
	}
	if ip != "" {
		entry.IPAddress = &ip
	}
	if err := s.ActionLogs.CreateActionLog(ctx, entry); err != nil {
		log.Printf("[InvoiceService] Failed to record admin action: %v", err)
	}

	return s.Repo.Get(ctx, id)
}

func (s *InvoiceService) appendLog(ctx context.Context, orderID, invoiceID int, action, details string, userID int) {
	entry := &models.VerificationLog{
		OrderID:     orderID,
		InvoiceID:   &invoiceID,
		Action:      action,
		Details:     details,
		PerformedBy: userID,
	}
	if err := s.Logs.Append(ctx, entry); err != nil {
		log.Printf("[InvoiceService] Failed to append verification log: %v", err)
	}
}
