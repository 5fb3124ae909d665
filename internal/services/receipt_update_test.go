package services

import (
	"testing"

	"po-backend/internal/models"
)

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
func boolp(v bool) *bool     { return &v }

func TestApplyReceiptUpdatePreservesOmittedFields(t *testing.T) {
	receipt := &models.ItemReceipt{
		ReceivedQuantity: 40,
		QualityCheck:     true,
		QualityNotes:     "crate intact",
		Status:           models.ReceiptStatusApproved,
	}

	// Quantity-only PATCH must not reset the quality fields
	if err := applyReceiptUpdate(receipt, &models.UpdateItemReceiptRequest{
		ReceivedQuantity: f64(45),
	}); err != nil {
		t.Fatalf("applyReceiptUpdate: %v", err)
	}

	if receipt.ReceivedQuantity != 45 {
		t.Errorf("quantity = %v, want 45", receipt.ReceivedQuantity)
	}
	if !receipt.QualityCheck {
		t.Error("omitted quality_check was reset to false")
	}
	if receipt.QualityNotes != "crate intact" {
		t.Errorf("omitted quality_notes was reset to %q", receipt.QualityNotes)
	}
	if receipt.Status != models.ReceiptStatusApproved {
		t.Errorf("omitted status was reset to %q", receipt.Status)
	}
}

func TestApplyReceiptUpdateExplicitFalse(t *testing.T) {
	receipt := &models.ItemReceipt{QualityCheck: true, QualityNotes: "ok"}

	if err := applyReceiptUpdate(receipt, &models.UpdateItemReceiptRequest{
		QualityCheck: boolp(false),
		QualityNotes: str(""),
	}); err != nil {
		t.Fatalf("applyReceiptUpdate: %v", err)
	}

	if receipt.QualityCheck {
		t.Error("explicit quality_check=false was not applied")
	}
	if receipt.QualityNotes != "" {
		t.Errorf("explicit empty quality_notes was not applied, got %q", receipt.QualityNotes)
	}
}

func TestApplyReceiptUpdateRejectsBadValues(t *testing.T) {
	receipt := &models.ItemReceipt{ReceivedQuantity: 40}

	if err := applyReceiptUpdate(receipt, &models.UpdateItemReceiptRequest{
		ReceivedQuantity: f64(0),
	}); err == nil {
		t.Error("zero received_quantity accepted")
	}
	if err := applyReceiptUpdate(receipt, &models.UpdateItemReceiptRequest{
		ReceivedDate: str("not-a-date"),
	}); err == nil {
		t.Error("malformed received_date accepted")
	}
	if receipt.ReceivedQuantity != 40 {
		t.Errorf("failed update mutated quantity to %v", receipt.ReceivedQuantity)
	}
}

func TestApplyReceiptUpdateStatusAndDate(t *testing.T) {
	receipt := &models.ItemReceipt{Status: models.ReceiptStatusPending}

	if err := applyReceiptUpdate(receipt, &models.UpdateItemReceiptRequest{
		Status:       str(models.ReceiptStatusRejected),
		ReceivedDate: str("2025-04-01"),
	}); err != nil {
		t.Fatalf("applyReceiptUpdate: %v", err)
	}

	if receipt.Status != models.ReceiptStatusRejected {
		t.Errorf("status = %q, want rejected", receipt.Status)
	}
	if receipt.ReceivedDate.Year() != 2025 || receipt.ReceivedDate.Month() != 4 {
		t.Errorf("received_date = %v, want 2025-04-01", receipt.ReceivedDate)
	}
}
