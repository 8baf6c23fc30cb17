package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/assetdesk/assetdesk/internal/imaging"
	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// maxPhotoUpload limits asset photo uploads to 10 MiB.
const maxPhotoUpload = 10 << 20

// AssetsHandler handles asset endpoints.
type AssetsHandler struct {
	DB *sql.DB
}

type assetRequest struct {
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	SubCategory    string     `json:"sub_category"`
	AssetType      string     `json:"asset_type"`
	Manufacturer   string     `json:"manufacturer"`
	Model          string     `json:"model"`
	SerialNumber   string     `json:"serial_number"`
	AssetTag       string     `json:"asset_tag"`
	Quantity       int        `json:"quantity"`
	AvailableQty   *int       `json:"available_qty"`
	Status         string     `json:"status"`
	Location       string     `json:"location"`
	PurchaseCost   string     `json:"purchase_cost"`
	WarrantyExpiry *time.Time `json:"warranty_expiry"`
	GRNNumber      string     `json:"grn_number"`
	Specification  string     `json:"specification"`
	Supplier       string     `json:"supplier"`
}

type receiveStockRequest struct {
	Quantity int    `json:"quantity"`
	Supplier string `json:"supplier"`
	Location string `json:"location"`
}

// newAssetTag generates a unique asset tag for clients that do not supply one.
func newAssetTag() string {
	id := strings.ToUpper(uuid.NewString())
	return "AT-" + id[:8]
}

func (req *assetRequest) validate() string {
	if req.Name == "" || req.Category == "" {
		return "name and category required"
	}
	if req.Quantity < 0 {
		return "quantity must not be negative"
	}
	if req.Status != "" && !model.ValidAssetStatus(req.Status) {
		return "invalid status"
	}
	if req.PurchaseCost != "" {
		if _, err := decimal.NewFromString(req.PurchaseCost); err != nil {
			return "invalid purchase cost"
		}
	}
	return ""
}

func (req *assetRequest) toModel() *model.Asset {
	available := req.Quantity
	if req.AvailableQty != nil {
		available = *req.AvailableQty
	}
	return &model.Asset{
		Name:           req.Name,
		Category:       req.Category,
		SubCategory:    req.SubCategory,
		AssetType:      req.AssetType,
		Manufacturer:   req.Manufacturer,
		Model:          req.Model,
		SerialNumber:   req.SerialNumber,
		AssetTag:       req.AssetTag,
		Quantity:       req.Quantity,
		AvailableQty:   available,
		Status:         req.Status,
		Location:       req.Location,
		PurchaseCost:   req.PurchaseCost,
		WarrantyExpiry: req.WarrantyExpiry,
		GRNNumber:      req.GRNNumber,
		Specification:  req.Specification,
	}
}

// List handles GET /api/assets with optional status, category, location and
// search query parameters.
func (h *AssetsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.AssetFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Search:   r.URL.Query().Get("search"),
	}

	assets, err := store.ListAssets(r.Context(), h.DB, filter)
	if err != nil {
		storeError(w, err, "failed to list assets")
		return
	}
	if assets == nil {
		assets = []model.Asset{}
	}
	jsonResponse(w, http.StatusOK, assets)
}

// Create handles POST /api/assets.
func (h *AssetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	if req.AssetTag == "" {
		req.AssetTag = newAssetTag()
	}

	a := req.toModel()
	if req.AvailableQty != nil && (*req.AvailableQty < 0 || *req.AvailableQty > req.Quantity) {
		jsonError(w, http.StatusBadRequest, "available quantity must be between 0 and quantity")
		return
	}

	asset, err := store.CreateAsset(r.Context(), h.DB, a, req.Supplier, actorID(r.Context()))
	if err != nil {
		storeError(w, err, "failed to create asset")
		return
	}
	jsonResponse(w, http.StatusCreated, asset)
}

// Get handles GET /api/assets/{id}.
func (h *AssetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset, err := store.GetAsset(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get asset")
		return
	}
	if asset == nil || asset.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}
	jsonResponse(w, http.StatusOK, asset)
}

// Update handles PUT /api/assets/{id}. Descriptive fields only: quantity and
// available quantity change through receipts, assignments and returns.
func (h *AssetsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var req assetRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	existing, err := store.GetAsset(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get asset")
		return
	}
	if existing == nil || existing.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}

	a := req.toModel()
	if a.Status == "" {
		a.Status = existing.Status
	}
	if err := store.UpdateAsset(r.Context(), h.DB, id, a); err != nil {
		storeError(w, err, "failed to update asset")
		return
	}

	asset, _ := store.GetAsset(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, asset)
}

// Delete handles DELETE /api/assets/{id}.
func (h *AssetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	if err := store.DeleteAsset(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete asset")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}

// Receive handles POST /api/assets/{id}/receive, recording an inward stock
// receipt against an existing asset.
func (h *AssetsHandler) Receive(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	var req receiveStockRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity <= 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	if err := store.ReceiveStock(r.Context(), h.DB, id, req.Quantity, req.Supplier, req.Location, actorID(r.Context())); err != nil {
		storeError(w, err, "failed to receive stock")
		return
	}

	asset, _ := store.GetAsset(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, asset)
}

// UploadPhoto handles PUT /api/assets/{id}/photo. The image is validated,
// downscaled and re-encoded before storage.
func (h *AssetsHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	asset, err := store.GetAsset(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get asset")
		return
	}
	if asset == nil || asset.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "asset not found")
		return
	}

	result, err := imaging.Process(http.MaxBytesReader(w, r.Body, maxPhotoUpload))
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetAssetPhoto(r.Context(), h.DB, id, result.Data, result.MIME); err != nil {
		storeError(w, err, "failed to store photo")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "photo updated"})
}

// GetPhoto handles GET /api/assets/{id}/photo.
func (h *AssetsHandler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid asset id")
		return
	}

	photo, mime, err := store.GetAssetPhoto(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get photo")
		return
	}
	if len(photo) == 0 {
		jsonError(w, http.StatusNotFound, "no photo")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(photo)))
	w.Write(photo)
}
