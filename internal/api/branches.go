package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// BranchesHandler handles branch CRUD endpoints.
type BranchesHandler struct {
	DB *sql.DB
}

type branchRequest struct {
	BranchName       string     `json:"branch_name"`
	BranchCode       string     `json:"branch_code"`
	BranchType       string     `json:"branch_type"`
	Address          string     `json:"address"`
	HardwareEngineer string     `json:"hardware_engineer"`
	EngineerEmail    string     `json:"engineer_email"`
	BranchManager    string     `json:"branch_manager"`
	ManagerEmail     string     `json:"manager_email"`
	OpenedAt         *time.Time `json:"opened_at"`
}

func (req *branchRequest) validate() string {
	if req.BranchName == "" || req.BranchCode == "" {
		return "branch_name and branch_code required"
	}
	if req.BranchType == "" {
		req.BranchType = model.BranchTypeBranch
	}
	if !model.ValidBranchType(req.BranchType) {
		return "invalid branch type"
	}
	return ""
}

func (req *branchRequest) toModel() *model.Branch {
	return &model.Branch{
		BranchName:       req.BranchName,
		BranchCode:       req.BranchCode,
		BranchType:       req.BranchType,
		Address:          req.Address,
		HardwareEngineer: req.HardwareEngineer,
		EngineerEmail:    req.EngineerEmail,
		BranchManager:    req.BranchManager,
		ManagerEmail:     req.ManagerEmail,
		OpenedAt:         req.OpenedAt,
	}
}

// List handles GET /api/branches.
func (h *BranchesHandler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := store.ListBranches(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list branches")
		return
	}
	if branches == nil {
		branches = []model.Branch{}
	}
	jsonResponse(w, http.StatusOK, branches)
}

// Create handles POST /api/branches.
func (h *BranchesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req branchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	branch, err := store.CreateBranch(r.Context(), h.DB, req.toModel())
	if err != nil {
		storeError(w, err, "failed to create branch")
		return
	}
	jsonResponse(w, http.StatusCreated, branch)
}

// Get handles GET /api/branches/{id}.
func (h *BranchesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid branch id")
		return
	}

	branch, err := store.GetBranch(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get branch")
		return
	}
	if branch == nil || branch.DeletedAt != nil {
		jsonError(w, http.StatusNotFound, "branch not found")
		return
	}
	jsonResponse(w, http.StatusOK, branch)
}

// Update handles PUT /api/branches/{id}.
func (h *BranchesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid branch id")
		return
	}

	var req branchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	if err := store.UpdateBranch(r.Context(), h.DB, id, req.toModel()); err != nil {
		storeError(w, err, "failed to update branch")
		return
	}

	branch, _ := store.GetBranch(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, branch)
}

// Delete handles DELETE /api/branches/{id}.
func (h *BranchesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid branch id")
		return
	}

	if err := store.DeleteBranch(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete branch")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "branch deleted"})
}
