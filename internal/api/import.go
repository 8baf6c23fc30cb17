package api

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/assetdesk/assetdesk/internal/model"
	"github.com/assetdesk/assetdesk/internal/store"
)

// maxImportUpload limits CSV import uploads to 5 MiB.
const maxImportUpload = 5 << 20

// ImportHandler handles bulk CSV imports.
type ImportHandler struct {
	DB *sql.DB
}

type importRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type importReport struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []importRowError `json:"errors"`
}

// Branches handles POST /api/import/branches. The upload is a multipart form
// with a "file" field containing a CSV matching the branch template. Rows are
// imported independently; a bad row is reported and skipped, not fatal.
func (h *ImportHandler) Branches(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportUpload)
	if err := r.ParseMultipartForm(maxImportUpload); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		jsonError(w, http.StatusBadRequest, "empty or unreadable csv")
		return
	}

	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"branch_name", "branch_code"} {
		if _, ok := col[required]; !ok {
			jsonError(w, http.StatusBadRequest, "missing required column "+required)
			return
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	report := importReport{Errors: []importRowError{}}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, importRowError{Row: row, Message: "malformed row"})
			continue
		}

		b := &model.Branch{
			BranchName:       field(record, "branch_name"),
			BranchCode:       field(record, "branch_code"),
			BranchType:       field(record, "branch_type"),
			Address:          field(record, "address"),
			HardwareEngineer: field(record, "hardware_engineer"),
			EngineerEmail:    field(record, "engineer_email"),
			BranchManager:    field(record, "branch_manager"),
			ManagerEmail:     field(record, "manager_email"),
		}
		if opened := field(record, "opened_at"); opened != "" {
			t, err := time.Parse("2006-01-02", opened)
			if err != nil {
				report.Skipped++
				report.Errors = append(report.Errors, importRowError{Row: row, Message: "invalid opened_at date"})
				continue
			}
			b.OpenedAt = &t
		}

		if msg := validateImportBranch(b); msg != "" {
			report.Skipped++
			report.Errors = append(report.Errors, importRowError{Row: row, Message: msg})
			continue
		}

		if _, err := store.CreateBranch(r.Context(), h.DB, b); err != nil {
			report.Skipped++
			msg := "import failed"
			if errors.Is(err, store.ErrConflict) {
				msg = fmt.Sprintf("branch %q or code %q already exists", b.BranchName, b.BranchCode)
			}
			report.Errors = append(report.Errors, importRowError{Row: row, Message: msg})
			continue
		}
		report.Imported++
	}

	jsonResponse(w, http.StatusOK, report)
}

func validateImportBranch(b *model.Branch) string {
	if b.BranchName == "" || b.BranchCode == "" {
		return "branch_name and branch_code required"
	}
	if b.BranchType == "" {
		b.BranchType = model.BranchTypeBranch
	}
	if !model.ValidBranchType(b.BranchType) {
		return "invalid branch type " + b.BranchType
	}
	for _, email := range []string{b.EngineerEmail, b.ManagerEmail} {
		if email != "" && !strings.Contains(email, "@") {
			return "invalid email " + email
		}
	}
	return ""
}
