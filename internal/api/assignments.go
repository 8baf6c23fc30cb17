package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// AssignmentsHandler handles asset assignment endpoints.
type AssignmentsHandler struct {
	DB *sql.DB
}

type assignRequest struct {
	AssetID      int64  `json:"asset_id"`
	UserID       int64  `json:"user_id"`
	DepartmentID *int64 `json:"department_id"`
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes"`
}

// List handles GET /api/assignments with optional asset_id, user_id and
// status query parameters.
func (h *AssignmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter store.AssignmentFilter
	if v := r.URL.Query().Get("asset_id"); v != "" {
		filter.AssetID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		filter.UserID, _ = strconv.ParseInt(v, 10, 64)
	}
	filter.Status = r.URL.Query().Get("status")

	assignments, err := store.ListAssignments(r.Context(), h.DB, filter)
	if err != nil {
		storeError(w, err, "failed to list assignments")
		return
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	jsonResponse(w, http.StatusOK, assignments)
}

// Create handles POST /api/assignments, allocating stock to a user.
func (h *AssignmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AssetID <= 0 || req.UserID <= 0 {
		jsonError(w, http.StatusBadRequest, "asset_id and user_id required")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	assignment, err := store.AssignAsset(r.Context(), h.DB, req.AssetID, req.UserID,
		req.DepartmentID, req.Quantity, req.Notes, actorID(r.Context()))
	if err != nil {
		storeError(w, err, "failed to assign asset")
		return
	}
	jsonResponse(w, http.StatusCreated, assignment)
}

// Get handles GET /api/assignments/{id}.
func (h *AssignmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	assignment, err := store.GetAssignment(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get assignment")
		return
	}
	if assignment == nil {
		jsonError(w, http.StatusNotFound, "assignment not found")
		return
	}
	jsonResponse(w, http.StatusOK, assignment)
}

// Return handles POST /api/assignments/{id}/return, restoring stock.
func (h *AssignmentsHandler) Return(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	if err := store.ReturnAssignment(r.Context(), h.DB, id, actorID(r.Context())); err != nil {
		storeError(w, err, "failed to return assignment")
		return
	}

	assignment, _ := store.GetAssignment(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, assignment)
}
