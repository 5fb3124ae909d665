package models

import "time"

// Action types recorded against user administration
const (
	ActionUserCreated        = "user_created"
	ActionUserUpdated        = "user_updated"
	ActionUserDeleted        = "user_deleted"
	ActionProjectsReassigned = "projects_reassigned"
	ActionInvoiceMarkedPaid  = "invoice_marked_paid"
)

type AdminActionLog struct {
	ID          int       `json:"id"`
	AdminUserID int       `json:"admin_user_id"`
	ActionType  string    `json:"action_type"`
	TargetType  string    `json:"target_type"`
	TargetID    *int      `json:"target_id,omitempty"`
	Description string    `json:"description"`
	OldValue    *string   `json:"old_value,omitempty"`
	NewValue    *string   `json:"new_value,omitempty"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
