package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"po-backend/internal/models"
	"po-backend/internal/repositories"
	"po-backend/pkg/utils"
)

type VendorHandler struct {
	Repo *repositories.VendorRepository
}

func NewVendorHandler(repo *repositories.VendorRepository) *VendorHandler {
	return &VendorHandler{Repo: repo}
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var vendor models.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if vendor.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.Create(r.Context(), &vendor); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	vendor, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}

	utils.JSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, vendors)
}

func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	vendor, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "Vendor not found", http.StatusNotFound)
		return
	}

	if err := json.NewDecoder(r.Body).Decode(vendor); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	vendor.ID = id

	if err := h.Repo.Update(r.Context(), vendor); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	utils.JSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
