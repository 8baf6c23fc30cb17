package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// DepartmentsHandler handles department CRUD endpoints.
type DepartmentsHandler struct {
	DB *sql.DB
}

type departmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BranchID    *int64 `json:"branch_id"`
}

// List handles GET /api/departments.
func (h *DepartmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := store.ListDepartments(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list departments")
		return
	}
	if departments == nil {
		departments = []model.Department{}
	}
	jsonResponse(w, http.StatusOK, departments)
}

// Create handles POST /api/departments.
func (h *DepartmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	department, err := store.CreateDepartment(r.Context(), h.DB, req.Name, req.Description, req.BranchID)
	if err != nil {
		storeError(w, err, "failed to create department")
		return
	}
	jsonResponse(w, http.StatusCreated, department)
}

// Get handles GET /api/departments/{id}.
func (h *DepartmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid department id")
		return
	}

	department, err := store.GetDepartment(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get department")
		return
	}
	if department == nil {
		jsonError(w, http.StatusNotFound, "department not found")
		return
	}
	jsonResponse(w, http.StatusOK, department)
}

// Update handles PUT /api/departments/{id}.
func (h *DepartmentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid department id")
		return
	}

	var req departmentRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := store.UpdateDepartment(r.Context(), h.DB, id, req.Name, req.Description, req.BranchID); err != nil {
		storeError(w, err, "failed to update department")
		return
	}

	department, _ := store.GetDepartment(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, department)
}

// Delete handles DELETE /api/departments/{id}. A department with active
// users or active assignments cannot be removed.
func (h *DepartmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid department id")
		return
	}

	if err := store.DeleteDepartment(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete department")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "department deleted"})
}
