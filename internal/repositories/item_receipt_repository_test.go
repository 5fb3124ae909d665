package repositories

import "testing"

func TestPlanRemainders(t *testing.T) {
	lines := []bulkLine{
		{orderItemID: 1, ordered: 100, received: 40},
		{orderItemID: 2, ordered: 50, received: 50},
		{orderItemID: 3, ordered: 10, received: 0},
	}

	plan := planRemainders(lines)
	if len(plan) != 2 {
		t.Fatalf("planned %d receipts, want 2 (complete line must be untouched)", len(plan))
	}
	if plan[0].orderItemID != 1 || plan[0].quantity != 60 {
		t.Errorf("plan[0] = %+v, want item 1 quantity 60", plan[0])
	}
	if plan[1].orderItemID != 3 || plan[1].quantity != 10 {
		t.Errorf("plan[1] = %+v, want item 3 quantity 10", plan[1])
	}
}

func TestPlanRemaindersAllComplete(t *testing.T) {
	lines := []bulkLine{
		{orderItemID: 1, ordered: 100, received: 100},
		{orderItemID: 2, ordered: 5, received: 8}, // over-received
	}
	if plan := planRemainders(lines); plan != nil {
		t.Errorf("planned %d receipts for fully received order, want none", len(plan))
	}
}

func TestPlanRemaindersFractional(t *testing.T) {
	plan := planRemainders([]bulkLine{{orderItemID: 7, ordered: 2.5, received: 1.25}})
	if len(plan) != 1 || plan[0].quantity != 1.25 {
		t.Fatalf("plan = %+v, want one receipt of 1.25", plan)
	}
}

func TestPlanRemaindersEmptyOrder(t *testing.T) {
	if plan := planRemainders(nil); plan != nil {
		t.Errorf("planned receipts for an order with no lines: %+v", plan)
	}
}
