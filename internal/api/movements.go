package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// MovementsHandler handles the movement history endpoint. Movements are
// append-only records written by the ledger; this handler only reads them.
type MovementsHandler struct {
	DB *sql.DB
}

// List handles GET /api/movements with optional asset_id, direction and
// since (RFC 3339) query parameters.
func (h *MovementsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter store.MovementFilter
	if v := r.URL.Query().Get("asset_id"); v != "" {
		filter.AssetID, _ = strconv.ParseInt(v, 10, 64)
	}
	filter.Direction = r.URL.Query().Get("direction")
	if v := r.URL.Query().Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid since timestamp")
			return
		}
		filter.Since = since
	}

	movements, err := store.ListMovements(r.Context(), h.DB, filter)
	if err != nil {
		storeError(w, err, "failed to list movements")
		return
	}
	if movements == nil {
		movements = []model.Movement{}
	}
	jsonResponse(w, http.StatusOK, movements)
}
