package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"po-backend/internal/cache"
	"po-backend/internal/middleware"
	"po-backend/internal/models"
	"po-backend/internal/repositories"
	"po-backend/internal/services"
	"po-backend/pkg/utils"
)

type ItemReceiptHandler struct {
	Service *services.ReceiptService
}

func NewItemReceiptHandler(s *services.ReceiptService) *ItemReceiptHandler {
	return &ItemReceiptHandler{Service: s}
}

// CreateReceipt registers a receipt. A quantity that would overshoot
// the ordered amount comes back 409.
func (h *ItemReceiptHandler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	receipt, orderID, err := h.Service.CreateReceipt(r.Context(), &req, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrQuantityExceeded) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The order detail serves reconciliation totals from cache, so the
	// order entry goes too, not just the list.
	cache.InvalidateResource(r.Context(), "orders", orderID)
	utils.JSON(w, http.StatusCreated, receipt)
}

func (h *ItemReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	receipt, err := h.Service.GetReceipt(r.Context(), id)
	if err != nil {
		http.Error(w, "Receipt not found", http.StatusNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, receipt)
}

// ListReceipts returns the receipts for one order line (?order_item_id=)
func (h *ItemReceiptHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	orderItemID, _ := strconv.Atoi(r.URL.Query().Get("order_item_id"))
	if orderItemID == 0 {
		http.Error(w, "order_item_id parameter is required", http.StatusBadRequest)
		return
	}

	receipts, err := h.Service.ListByOrderItem(r.Context(), orderItemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if receipts == nil {
		receipts = []models.ItemReceipt{}
	}

	utils.JSON(w, http.StatusOK, receipts)
}

func (h *ItemReceiptHandler) UpdateReceipt(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateItemReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	receipt, orderID, err := h.Service.UpdateReceipt(r.Context(), id, &req, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrQuantityExceeded) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateResource(r.Context(), "orders", orderID)
	utils.JSON(w, http.StatusOK, receipt)
}

func (h *ItemReceiptHandler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	orderID, err := h.Service.DeleteReceipt(r.Context(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateResource(r.Context(), "orders", orderID)
	w.WriteHeader(http.StatusNoContent)
}
