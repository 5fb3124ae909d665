package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
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

type OrderHandler struct {
	Service *services.OrderService
	Reports *services.ReportService
}

func NewOrderHandler(s *services.OrderService, reports *services.ReportService) *OrderHandler {
	return &OrderHandler{Service: s, Reports: reports}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	order, err := h.Service.CreateOrder(r.Context(), &req, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cache.Invalidate(r.Context(), cache.ListKey("orders"))
	utils.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	key := cache.Key("orders", id)
	if data, ok := cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	order, err := h.Service.GetOrder(r.Context(), id)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	payload, err := json.Marshal(order)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	key := cache.ListKey("orders")
	if data, ok := cache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	orders, err := h.Service.ListOrders(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(orders)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	cache.Set(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// UpdateStatus advances an order one step. Illegal transitions come
// back 409 with the current and requested statuses.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.Service.Transition(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) || errors.Is(err, repositories.ErrStaleStatus) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateResource(r.Context(), "orders", id)
	utils.JSON(w, http.StatusOK, order)
}

// Submit/Approve/Send/Complete are the explicit action endpoints; each
// advances the order exactly one step.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, models.OrderStatusPending)
}

func (h *OrderHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, models.OrderStatusApproved)
}

func (h *OrderHandler) Send(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, models.OrderStatusSent)
}

func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, models.OrderStatusCompleted)
}

func (h *OrderHandler) advance(w http.ResponseWriter, r *http.Request, target string) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Service.Transition(r.Context(), id, target)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) || errors.Is(err, repositories.ErrStaleStatus) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateResource(r.Context(), "orders", id)
	utils.JSON(w, http.StatusOK, order)
}

// ReceiveAll registers the remainder of every incomplete line in one
// transaction.
func (h *OrderHandler) ReceiveAll(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	order, err := h.Service.ReceiveAll(r.Context(), id, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateResource(r.Context(), "orders", id)
	utils.JSON(w, http.StatusOK, order)
}

// DownloadPDF streams the order sheet as a PDF
func (h *OrderHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Service.GetOrder(r.Context(), id)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	pdfBytes, err := h.Reports.GenerateOrderPDF(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.OrderNumber))
	w.Write(pdfBytes)
}
