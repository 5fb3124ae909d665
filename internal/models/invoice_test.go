package models

import "testing"

func TestInvoiceVerifyIsOneWay(t *testing.T) {
	inv := &Invoice{Status: InvoiceStatusPending}
	if !inv.CanVerify() {
		t.Fatal("pending invoice should be verifiable")
	}

	inv.Status = InvoiceStatusVerified
	if inv.CanVerify() {
		t.Error("verified invoice must reject a second verification")
	}

	inv.Status = InvoiceStatusPaid
	if inv.CanVerify() {
		t.Error("paid invoice must reject verification")
	}
}

func TestTaxInvoiceIssueRequiresVerified(t *testing.T) {
	inv := &Invoice{Status: InvoiceStatusPending}
	if inv.CanIssueTaxInvoice() {
		t.Error("issuing against a pending invoice must be rejected")
	}

	inv.Status = InvoiceStatusVerified
	if !inv.CanIssueTaxInvoice() {
		t.Error("verified, unissued invoice should allow issuance")
	}

	inv.TaxInvoiceIssued = true
	if inv.CanIssueTaxInvoice() {
		t.Error("double issuance must be rejected")
	}
}

func TestTaxInvoiceCancelAndReissue(t *testing.T) {
	inv := &Invoice{Status: InvoiceStatusVerified}
	if inv.CanCancelTaxInvoice() {
		t.Error("cancelling an unissued tax invoice must be rejected")
	}

	inv.TaxInvoiceIssued = true
	if !inv.CanCancelTaxInvoice() {
		t.Error("issued tax invoice should be cancellable")
	}

	// Cancel clears the issued flag; the invoice status is untouched
	// and a fresh issuance is allowed again.
	inv.TaxInvoiceIssued = false
	if inv.Status != InvoiceStatusVerified {
		t.Errorf("status after cancel = %q, want verified", inv.Status)
	}
	if !inv.CanIssueTaxInvoice() {
		t.Error("re-issuance after cancel should be allowed")
	}
}

func TestMarkPaidRequiresVerified(t *testing.T) {
	inv := &Invoice{Status: InvoiceStatusPending}
	if inv.CanMarkPaid() {
		t.Error("pending invoice must not be markable as paid")
	}

	inv.Status = InvoiceStatusVerified
	if !inv.CanMarkPaid() {
		t.Error("verified invoice should be markable as paid")
	}

	inv.Status = InvoiceStatusPaid
	if inv.CanMarkPaid() {
		t.Error("paid invoice must not be marked paid twice")
	}
}
