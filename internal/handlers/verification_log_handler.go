package handlers

import (
	"net/http"
	"strconv"

	"po-backend/internal/repositories"
	"po-backend/pkg/utils"
)

type VerificationLogHandler struct {
	Repo *repositories.VerificationLogRepository
}

func NewVerificationLogHandler(repo *repositories.VerificationLogRepository) *VerificationLogHandler {
	return &VerificationLogHandler{Repo: repo}
}

// ListLogs returns the audit trail, optionally filtered by ?order_id=
func (h *VerificationLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(r.URL.Query().Get("order_id"))

	logs, err := h.Repo.List(r.Context(), orderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}
