package handlers

import (
	"net/http"
	"strconv"

	"po-backend/internal/repositories"
	"po-backend/pkg/utils"
)

type AdminActionLogHandler struct {
	Repo *repositories.AdminActionLogRepository
}

func NewAdminActionLogHandler(repo *repositories.AdminActionLogRepository) *AdminActionLogHandler {
	return &AdminActionLogHandler{Repo: repo}
}

func (h *AdminActionLogHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, logs)
}
