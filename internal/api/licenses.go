package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// LicensesHandler handles software license endpoints.
type LicensesHandler struct {
	DB *sql.DB
}

type licenseRequest struct {
	Name       string     `json:"name"`
	Vendor     string     `json:"vendor"`
	LicenseKey string     `json:"license_key"`
	TotalCount int        `json:"total_count"`
	UsedCount  int        `json:"used_count"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

func (req *licenseRequest) validate() string {
	if req.Name == "" {
		return "name required"
	}
	if req.TotalCount < 0 || req.UsedCount < 0 || req.UsedCount > req.TotalCount {
		return "used count must be between 0 and total count"
	}
	return ""
}

func (req *licenseRequest) toModel() *model.SoftwareLicense {
	return &model.SoftwareLicense{
		Name:       req.Name,
		Vendor:     req.Vendor,
		LicenseKey: req.LicenseKey,
		TotalCount: req.TotalCount,
		UsedCount:  req.UsedCount,
		ExpiryDate: req.ExpiryDate,
	}
}

// List handles GET /api/licenses.
func (h *LicensesHandler) List(w http.ResponseWriter, r *http.Request) {
	licenses, err := store.ListLicenses(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list licenses")
		return
	}
	if licenses == nil {
		licenses = []model.SoftwareLicense{}
	}
	jsonResponse(w, http.StatusOK, licenses)
}

// Create handles POST /api/licenses.
func (h *LicensesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req licenseRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	license, err := store.CreateLicense(r.Context(), h.DB, req.toModel())
	if err != nil {
		storeError(w, err, "failed to create license")
		return
	}
	jsonResponse(w, http.StatusCreated, license)
}

// Get handles GET /api/licenses/{id}.
func (h *LicensesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid license id")
		return
	}

	license, err := store.GetLicense(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get license")
		return
	}
	if license == nil || license.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "license not found")
		return
	}
	jsonResponse(w, http.StatusOK, license)
}

// Update handles PUT /api/licenses/{id}.
func (h *LicensesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid license id")
		return
	}

	var req licenseRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	if err := store.UpdateLicense(r.Context(), h.DB, id, req.toModel()); err != nil {
		storeError(w, err, "failed to update license")
		return
	}

	license, _ := store.GetLicense(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, license)
}

// Delete handles DELETE /api/licenses/{id}.
func (h *LicensesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid license id")
		return
	}

	if err := store.DeleteLicense(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete license")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "license deleted"})
}
