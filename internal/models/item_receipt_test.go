package models

import "testing"

func TestDeriveReceiptStatus(t *testing.T) {
	tests := []struct {
		name     string
		ordered  float64
		received float64
		want     string
	}{
		{"nothing received", 100, 0, ReceiptStatePending},
		{"first partial delivery", 100, 40, ReceiptStatePartial},
		{"second partial delivery", 100, 80, ReceiptStatePartial},
		{"exact completion", 100, 100, ReceiptStateComplete},
		{"fractional quantity", 2.5, 1.25, ReceiptStatePartial},
		{"fractional completion", 2.5, 2.5, ReceiptStateComplete},
		{"negative treated as pending", 100, -1, ReceiptStatePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveReceiptStatus(tt.ordered, tt.received)
			if got != tt.want {
				t.Errorf("DeriveReceiptStatus(%v, %v) = %q, want %q",
					tt.ordered, tt.received, got, tt.want)
			}
		})
	}
}

func TestRemainingQuantity(t *testing.T) {
	if got := RemainingQuantity(100, 80); got != 20 {
		t.Errorf("RemainingQuantity(100, 80) = %v, want 20", got)
	}
	if got := RemainingQuantity(100, 100); got != 0 {
		t.Errorf("RemainingQuantity(100, 100) = %v, want 0", got)
	}
	// Over-receipt never reports negative remaining
	if got := RemainingQuantity(100, 120); got != 0 {
		t.Errorf("RemainingQuantity(100, 120) = %v, want 0", got)
	}
}

func TestSumReceivedExcludesRejected(t *testing.T) {
	receipts := []ItemReceipt{
		{ReceivedQuantity: 40, Status: ReceiptStatusApproved},
		{ReceivedQuantity: 40, Status: ReceiptStatusPending},
		{ReceivedQuantity: 30, Status: ReceiptStatusRejected},
	}

	if got := SumReceived(receipts); got != 80 {
		t.Errorf("SumReceived = %v, want 80 (rejected receipt must not count)", got)
	}

	// A line whose only receipt was rejected is still pending
	status := DeriveReceiptStatus(100, SumReceived([]ItemReceipt{
		{ReceivedQuantity: 100, Status: ReceiptStatusRejected},
	}))
	if status != ReceiptStatePending {
		t.Errorf("status after rejected-only receipts = %q, want %q", status, ReceiptStatePending)
	}
}

func TestPartialDeliveryLifecycle(t *testing.T) {
	const ordered = 100.0
	var receipts []ItemReceipt

	receipts = append(receipts, ItemReceipt{ReceivedQuantity: 40, Status: ReceiptStatusApproved})
	if got := DeriveReceiptStatus(ordered, SumReceived(receipts)); got != ReceiptStatePartial {
		t.Fatalf("after 40/100: status = %q, want partial", got)
	}

	receipts = append(receipts, ItemReceipt{ReceivedQuantity: 40, Status: ReceiptStatusApproved})
	received := SumReceived(receipts)
	if received != 80 {
		t.Fatalf("after 40+40: received = %v, want 80", received)
	}
	if got := RemainingQuantity(ordered, received); got != 20 {
		t.Fatalf("after 40+40: remaining = %v, want 20", got)
	}

	receipts = append(receipts, ItemReceipt{ReceivedQuantity: 20, Status: ReceiptStatusApproved})
	if got := DeriveReceiptStatus(ordered, SumReceived(receipts)); got != ReceiptStateComplete {
		t.Fatalf("after 40+40+20: status = %q, want complete", got)
	}
}
