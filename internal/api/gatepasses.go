package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// GatePassesHandler handles gate pass endpoints.
type GatePassesHandler struct {
	DB *sql.DB
}

type createGatePassRequest struct {
	AssetID          int64  `json:"asset_id"`
	Quantity         int    `json:"quantity"`
	Destination      string `json:"destination"`
	RecipientName    string `json:"recipient_name"`
	RecipientContact string `json:"recipient_contact"`
	Purpose          string `json:"purpose"`
}

type grnRequest struct {
	GRNNumber string `json:"grn_number"`
}

// List handles GET /api/gatepasses with an optional status query parameter.
func (h *GatePassesHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	passes, err := store.ListGatePasses(r.Context(), h.DB, status)
	if err != nil {
		storeError(w, err, "failed to list gate passes")
		return
	}
	if passes == nil {
		passes = []model.GatePass{}
	}
	jsonResponse(w, http.StatusOK, passes)
}

// Create handles POST /api/gatepasses.
func (h *GatePassesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGatePassRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AssetID <= 0 {
		jsonError(w, http.StatusBadRequest, "asset_id required")
		return
	}
	if req.Destination == "" || req.RecipientName == "" {
		jsonError(w, http.StatusBadRequest, "destination and recipient_name required")
		return
	}

	pass, err := store.CreateGatePass(r.Context(), h.DB, &model.GatePass{
		AssetID:          req.AssetID,
		Quantity:         req.Quantity,
		Destination:      req.Destination,
		RecipientName:    req.RecipientName,
		RecipientContact: req.RecipientContact,
		Purpose:          req.Purpose,
	}, actorID(r.Context()))
	if err != nil {
		storeError(w, err, "failed to create gate pass")
		return
	}
	jsonResponse(w, http.StatusCreated, pass)
}

// Get handles GET /api/gatepasses/{id}.
func (h *GatePassesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gate pass id")
		return
	}

	pass, err := store.GetGatePass(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get gate pass")
		return
	}
	if pass == nil {
		jsonError(w, http.StatusNotFound, "gate pass not found")
		return
	}
	jsonResponse(w, http.StatusOK, pass)
}

// Deliver handles POST /api/gatepasses/{id}/deliver.
func (h *GatePassesHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gate pass id")
		return
	}

	if err := store.MarkGatePassDelivered(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to mark gate pass delivered")
		return
	}

	pass, _ := store.GetGatePass(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, pass)
}

// RecordGRN handles POST /api/gatepasses/{id}/grn, confirming receipt at the
// destination and closing the pass.
func (h *GatePassesHandler) RecordGRN(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gate pass id")
		return
	}

	var req grnRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.GRNNumber == "" {
		jsonError(w, http.StatusBadRequest, "grn_number required")
		return
	}

	if err := store.RecordGatePassGRN(r.Context(), h.DB, id, req.GRNNumber); err != nil {
		storeError(w, err, "failed to record grn")
		return
	}

	pass, _ := store.GetGatePass(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, pass)
}
