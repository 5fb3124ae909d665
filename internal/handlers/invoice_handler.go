package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
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

// Invoice uploads are capped at 10 MB
const maxUploadSize = 10 << 20

type InvoiceHandler struct {
	Service *services.InvoiceService
}

func NewInvoiceHandler(s *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Service: s}
}

// Upload accepts either a JSON body or a multipart form with a "file"
// part holding the scanned invoice.
func (h *InvoiceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	var req models.CreateInvoiceRequest
	var file io.Reader
	var filename, contentType string
	var fileSize int64

	if ct := r.Header.Get("Content-Type"); len(ct) >= 19 && ct[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			http.Error(w, "Invalid multipart form", http.StatusBadRequest)
			return
		}
		req.OrderID, _ = strconv.Atoi(r.FormValue("order_id"))
		req.InvoiceType = r.FormValue("invoice_type")
		req.TotalAmount, _ = strconv.ParseFloat(r.FormValue("total_amount"), 64)
		req.VATAmount, _ = strconv.ParseFloat(r.FormValue("vat_amount"), 64)

		if f, header, err := r.FormFile("file"); err == nil {
			defer f.Close()
			file = f
			filename = header.Filename
			fileSize = header.Size
			contentType = header.Header.Get("Content-Type")
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	inv, err := h.Service.Upload(r.Context(), &req, file, filename, fileSize, contentType, userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cache.Invalidate(r.Context(), cache.ListKey("invoices"))
	utils.JSON(w, http.StatusCreated, inv)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	inv, err := h.Service.GetInvoice(r.Context(), id)
	if err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, inv)
}

// ListInvoices returns all invoices, optionally filtered by ?order_id=
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(r.URL.Query().Get("order_id"))

	if orderID == 0 {
		key := cache.ListKey("invoices")
		if data, ok := cache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write(data)
			return
		}

		invoices, err := h.Service.ListInvoices(r.Context(), 0)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		payload, err := json.Marshal(invoices)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		cache.Set(r.Context(), key, payload)
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
		return
	}

	invoices, err := h.Service.ListInvoices(r.Context(), orderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

// DownloadAttachment streams the stored invoice file
func (h *InvoiceHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	body, contentType, err := h.Service.GetAttachment(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	io.Copy(w, body)
}

func (h *InvoiceHandler) Verify(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Verify)
}

func (h *InvoiceHandler) IssueTaxInvoice(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.IssueTaxInvoice)
}

func (h *InvoiceHandler) CancelTaxInvoice(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.CancelTaxInvoice)
}

// transition runs one of the guarded invoice state changes. A stale or
// repeated request comes back 409 so the client refetches.
func (h *InvoiceHandler) transition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, id, userID int) (*models.InvoiceWithDetails, error)) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	inv, err := fn(r.Context(), id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceStateChanged) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateResource(r.Context(), "invoices", id)
	utils.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	adminID, _ := middleware.GetUserIDFromContext(r.Context())
	inv, err := h.Service.MarkPaid(r.Context(), id, adminID, utils.ClientIP(r))
	if err != nil {
		if errors.Is(err, repositories.ErrInvoiceStateChanged) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cache.InvalidateResource(r.Context(), "invoices", id)
	utils.JSON(w, http.StatusOK, inv)
}
