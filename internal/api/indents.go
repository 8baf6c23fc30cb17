package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// IndentsHandler handles indent request endpoints.
type IndentsHandler struct {
	DB       *sql.DB
	Notifier *Notifier
}

type createIndentRequest struct {
	ItemName      string `json:"item_name"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity"`
	Justification string `json:"justification"`
}

type indentStatusRequest struct {
	Status string `json:"status"`
}

// List handles GET /api/indents with an optional status query parameter.
func (h *IndentsHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	indents, err := store.ListIndentRequests(r.Context(), h.DB, status)
	if err != nil {
		storeError(w, err, "failed to list indent requests")
		return
	}
	if indents == nil {
		indents = []model.IndentRequest{}
	}
	jsonResponse(w, http.StatusOK, indents)
}

// Create handles POST /api/indents and notifies managers of the new request.
func (h *IndentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createIndentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemName == "" {
		jsonError(w, http.StatusBadRequest, "item_name required")
		return
	}
	if req.Quantity <= 0 {
		jsonError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	ind, err := store.CreateIndentRequest(r.Context(), h.DB, &model.IndentRequest{
		ItemName:      req.ItemName,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Justification: req.Justification,
	}, actorID(r.Context()))
	if err != nil {
		storeError(w, err, "failed to create indent request")
		return
	}

	h.Notifier.IndentCreated(ind)
	jsonResponse(w, http.StatusCreated, ind)
}

// Get handles GET /api/indents/{id}.
func (h *IndentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid indent id")
		return
	}

	ind, err := store.GetIndentRequest(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get indent request")
		return
	}
	if ind == nil {
		jsonError(w, http.StatusNotFound, "indent request not found")
		return
	}
	jsonResponse(w, http.StatusOK, ind)
}

// UpdateStatus handles PUT /api/indents/{id}/status.
func (h *IndentsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid indent id")
		return
	}

	var req indentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !model.ValidIndentStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := store.UpdateIndentStatus(r.Context(), h.DB, id, req.Status); err != nil {
		storeError(w, err, "failed to update indent status")
		return
	}

	ind, _ := store.GetIndentRequest(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, ind)
}
