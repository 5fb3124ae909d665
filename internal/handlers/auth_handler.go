package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"po-backend/internal/models"
	"po-backend/internal/services"
	"po-backend/pkg/utils"
)

type AuthHandler struct {
	Service     *services.UserService
	TOTPService *services.TOTPService
}

func NewAuthHandler(s *services.UserService, totpService *services.TOTPService) *AuthHandler {
	return &AuthHandler{Service: s, TOTPService: totpService}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	authResp, err := h.Service.Signup(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.JSON(w, http.StatusCreated, authResp)
}

// Login authenticates a user. Accounts with 2FA enabled get a temp
// token and must finish with Verify2FA.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	authResp, tempToken, err := h.Service.Login(r.Context(), &req, utils.ClientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, services.ErrTOTPRequired) {
			utils.JSON(w, http.StatusOK, map[string]interface{}{
				"totp_required": true,
				"temp_token":    tempToken,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	utils.JSON(w, http.StatusOK, authResp)
}

// Verify2FA completes a login that returned totp_required
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"temp_token"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	claims, err := h.Service.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	if err := h.TOTPService.Verify(r.Context(), claims.UserID, req.Code); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	authResp, err := h.Service.CompleteLogin(r.Context(), claims.UserID, utils.ClientIP(r), r.UserAgent())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, authResp)
}
