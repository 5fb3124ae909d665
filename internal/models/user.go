package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"` // admin, manager or employee
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"` // Required when 2FA is enabled
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"` // Optional
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// UserReferences lists the records that still point at a user and
// therefore gate deletion.
type UserReferences struct {
	CanDelete  bool              `json:"can_delete"`
	References UserReferenceList `json:"references"`
}

type UserReferenceList struct {
	Projects []ProjectRef `json:"projects"`
	Orders   []OrderRef   `json:"orders"`
}

type ProjectRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type OrderRef struct {
	ID          int    `json:"id"`
	OrderNumber string `json:"order_number"`
}

// ReassignProjectsRequest moves project management to another user
// before a deletion can proceed.
type ReassignProjectsRequest struct {
	ToUserID int `json:"to_user_id"`
}
