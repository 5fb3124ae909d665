package services

import (
	"errors"
	"fmt"

	"po-backend/internal/models"
)

// Deletion wizard steps. Deleting a user walks an explicit state
// machine so the client can only ever request the action the current
// step allows, and the server re-checks references at every step.
const (
	StepChecking    = "checking"    // gathering references
	StepBlocked     = "blocked"     // orders reference the user, deletion impossible
	StepReassigning = "reassigning" // projects must move to another manager first
	StepConfirm     = "confirm"     // no blocking references, awaiting confirmation
	StepDeleted     = "deleted"     // terminal
	StepAborted     = "aborted"     // terminal
)

// ErrWizardStep is returned when an action is requested out of order
var ErrWizardStep = errors.New("action not allowed in current step")

// DeletionWizard tracks one user-deletion flow. It is a pure state
// machine: callers feed it reference snapshots and it decides the next
// step. Purchase orders pin a user forever (audit trail); projects can
// be handed to another manager.
type DeletionWizard struct {
	UserID int                    `json:"user_id"`
	Step   string                 `json:"step"`
	Refs   *models.UserReferences `json:"references,omitempty"`
}

func NewDeletionWizard(userID int) *DeletionWizard {
	return &DeletionWizard{UserID: userID, Step: StepChecking}
}

// ApplyReferences moves the wizard out of checking (or reassigning)
// based on a fresh reference snapshot.
func (w *DeletionWizard) ApplyReferences(refs *models.UserReferences) error {
	if w.Step != StepChecking && w.Step != StepReassigning {
		return fmt.Errorf("%w: step %s", ErrWizardStep, w.Step)
	}
	w.Refs = refs
	switch {
	case len(refs.References.Orders) > 0:
		w.Step = StepBlocked
	case len(refs.References.Projects) > 0:
		w.Step = StepReassigning
	default:
		w.Step = StepConfirm
	}
	return nil
}

// CanReassign reports whether the wizard is waiting on a project handoff
func (w *DeletionWizard) CanReassign() bool {
	return w.Step == StepReassigning
}

// CanConfirm reports whether the final delete may proceed
func (w *DeletionWizard) CanConfirm() bool {
	return w.Step == StepConfirm
}

// Confirm marks the deletion done. Only valid from the confirm step.
func (w *DeletionWizard) Confirm() error {
	if w.Step != StepConfirm {
		return fmt.Errorf("%w: step %s", ErrWizardStep, w.Step)
	}
	w.Step = StepDeleted
	return nil
}

// Abort cancels the flow from any non-terminal step
func (w *DeletionWizard) Abort() error {
	if w.Step == StepDeleted || w.Step == StepAborted {
		return fmt.Errorf("%w: step %s", ErrWizardStep, w.Step)
	}
	w.Step = StepAborted
	return nil
}
