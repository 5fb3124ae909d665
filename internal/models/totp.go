package models

import "time"

// TOTPSecret stores a user's 2FA enrollment. The secret stays
// server-side; only the otpauth URL is ever returned, once, at setup.
type TOTPSecret struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Secret    string    `json:"-"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// TOTPSetupResponse is returned when 2FA enrollment begins
type TOTPSetupResponse struct {
	OTPAuthURL string `json:"otpauth_url"`
}

// TOTPVerifyRequest confirms enrollment or completes a 2FA login
type TOTPVerifyRequest struct {
	Code string `json:"code"`
}
