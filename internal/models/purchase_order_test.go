package models

import "testing"

func TestOrderTransitionsForwardOnly(t *testing.T) {
	allowed := map[string]string{
		OrderStatusDraft:    OrderStatusPending,
		OrderStatusPending:  OrderStatusApproved,
		OrderStatusApproved: OrderStatusSent,
		OrderStatusSent:     OrderStatusCompleted,
	}

	statuses := []string{
		OrderStatusDraft, OrderStatusPending, OrderStatusApproved,
		OrderStatusSent, OrderStatusCompleted,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			o := &PurchaseOrder{Status: from}
			want := allowed[from] == to
			if got := o.CanTransitionTo(to); got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestCompletedOrderIsTerminal(t *testing.T) {
	o := &PurchaseOrder{Status: OrderStatusCompleted}
	for _, to := range []string{
		OrderStatusDraft, OrderStatusPending, OrderStatusApproved, OrderStatusSent,
	} {
		if o.CanTransitionTo(to) {
			t.Errorf("completed order must not move to %s", to)
		}
	}
}

func TestNoSkippingStatuses(t *testing.T) {
	o := &PurchaseOrder{Status: OrderStatusDraft}
	if o.CanTransitionTo(OrderStatusApproved) {
		t.Error("draft must not skip straight to approved")
	}
	if o.CanTransitionTo(OrderStatusCompleted) {
		t.Error("draft must not skip straight to completed")
	}
}
