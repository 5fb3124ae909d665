package handlers

import (
	"encoding/json"
	"net/http"

	"po-backend/internal/middleware"
	"po-backend/internal/models"
	"po-backend/internal/services"
	"po-backend/pkg/utils"
)

type TOTPHandler struct {
	Service     *services.TOTPService
	UserService *services.UserService
}

func NewTOTPHandler(s *services.TOTPService, userService *services.UserService) *TOTPHandler {
	return &TOTPHandler{Service: s, UserService: userService}
}

// Setup begins 2FA enrollment for the authenticated user
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	resp, err := h.Service.GenerateSetup(r.Context(), user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// Enable confirms the first code and turns 2FA on
func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.VerifyAndEnable(r.Context(), userID, req.Code); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// Disable turns 2FA off after verifying the current code
func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.TOTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.Disable(r.Context(), userID, req.Code); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": false})
}
