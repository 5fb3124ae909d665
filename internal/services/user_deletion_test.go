package services

import (
	"errors"
	"testing"

	"po-backend/internal/models"
)

func refs(projects []models.ProjectRef, orders []models.OrderRef) *models.UserReferences {
	return &models.UserReferences{
		CanDelete: len(projects) == 0 && len(orders) == 0,
		References: models.UserReferenceList{
			Projects: projects,
			Orders:   orders,
		},
	}
}

func TestWizardCleanUserGoesToConfirm(t *testing.T) {
	w := NewDeletionWizard(7)
	if w.Step != StepChecking {
		t.Fatalf("new wizard step = %q, want checking", w.Step)
	}

	if err := w.ApplyReferences(refs(nil, nil)); err != nil {
		t.Fatalf("ApplyReferences: %v", err)
	}
	if w.Step != StepConfirm {
		t.Fatalf("step = %q, want confirm", w.Step)
	}
	if !w.CanConfirm() {
		t.Fatal("CanConfirm should be true at confirm step")
	}

	if err := w.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if w.Step != StepDeleted {
		t.Fatalf("step = %q, want deleted", w.Step)
	}
}

func TestWizardOrdersBlockDeletion(t *testing.T) {
	w := NewDeletionWizard(7)
	orderRefs := []models.OrderRef{{ID: 3, OrderNumber: "PO-000003"}}

	if err := w.ApplyReferences(refs(nil, orderRefs)); err != nil {
		t.Fatalf("ApplyReferences: %v", err)
	}
	if w.Step != StepBlocked {
		t.Fatalf("step = %q, want blocked", w.Step)
	}

	if err := w.Confirm(); !errors.Is(err, ErrWizardStep) {
		t.Errorf("Confirm from blocked = %v, want ErrWizardStep", err)
	}
	// Orders pin the user even if projects are also present
	w2 := NewDeletionWizard(8)
	projectRefs := []models.ProjectRef{{ID: 1, Name: "HQ Renovation"}}
	w2.ApplyReferences(refs(projectRefs, orderRefs))
	if w2.Step != StepBlocked {
		t.Errorf("step with orders and projects = %q, want blocked", w2.Step)
	}
}

func TestWizardProjectReassignmentFlow(t *testing.T) {
	w := NewDeletionWizard(7)
	projectRefs := []models.ProjectRef{{ID: 1, Name: "HQ Renovation"}}

	if err := w.ApplyReferences(refs(projectRefs, nil)); err != nil {
		t.Fatalf("ApplyReferences: %v", err)
	}
	if w.Step != StepReassigning {
		t.Fatalf("step = %q, want reassigning", w.Step)
	}
	if !w.CanReassign() {
		t.Fatal("CanReassign should be true at reassigning step")
	}
	if w.CanConfirm() {
		t.Fatal("CanConfirm must be false before projects move")
	}

	// After reassignment a fresh snapshot shows no references left
	if err := w.ApplyReferences(refs(nil, nil)); err != nil {
		t.Fatalf("ApplyReferences after reassign: %v", err)
	}
	if w.Step != StepConfirm {
		t.Fatalf("step = %q, want confirm", w.Step)
	}
	if err := w.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
}

func TestWizardAbort(t *testing.T) {
	w := NewDeletionWizard(7)
	w.ApplyReferences(refs([]models.ProjectRef{{ID: 1, Name: "HQ"}}, nil))

	if err := w.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if w.Step != StepAborted {
		t.Fatalf("step = %q, want aborted", w.Step)
	}

	// Terminal steps reject everything
	if err := w.Abort(); !errors.Is(err, ErrWizardStep) {
		t.Errorf("Abort after abort = %v, want ErrWizardStep", err)
	}
	if err := w.ApplyReferences(refs(nil, nil)); !errors.Is(err, ErrWizardStep) {
		t.Errorf("ApplyReferences after abort = %v, want ErrWizardStep", err)
	}
}

func TestWizardRejectsOutOfOrderActions(t *testing.T) {
	w := NewDeletionWizard(7)

	// Confirm straight from checking, without a reference snapshot
	if err := w.Confirm(); !errors.Is(err, ErrWizardStep) {
		t.Errorf("Confirm from checking = %v, want ErrWizardStep", err)
	}

	w.ApplyReferences(refs(nil, nil))
	w.Confirm()

	if err := w.ApplyReferences(refs(nil, nil)); !errors.Is(err, ErrWizardStep) {
		t.Errorf("ApplyReferences after delete = %v, want ErrWizardStep", err)
	}
}
