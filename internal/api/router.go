package api

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/assetdesk/assetdesk/internal/mail"
	"github.com/assetdesk/assetdesk/internal/model"
)

// RouterOptions configures optional router features.
type RouterOptions struct {
	// Sender enables email notifications when non-nil.
	Sender mail.Sender
	// Metrics exposes /metrics and records per-request counters.
	Metrics bool
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	notifier := &Notifier{DB: db, Sender: opts.Sender}

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	branchesHandler := &BranchesHandler{DB: db}
	departmentsHandler := &DepartmentsHandler{DB: db}
	assetsHandler := &AssetsHandler{DB: db}
	assignmentsHandler := &AssignmentsHandler{DB: db}
	movementsHandler := &MovementsHandler{DB: db}
	gatePassesHandler := &GatePassesHandler{DB: db}
	indentsHandler := &IndentsHandler{DB: db, Notifier: notifier}
	licensesHandler := &LicensesHandler{DB: db}
	dashboardHandler := &DashboardHandler{DB: db, Notifier: notifier}
	inventoryHandler := &InventoryHandler{DB: db}
	exportHandler := &ExportHandler{DB: db}
	importHandler := &ImportHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login and health.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Branches: read (all roles), update (manager+), create and delete (admin).
	mux.Handle("GET /api/branches", authMW(http.HandlerFunc(branchesHandler.List)))
	mux.Handle("POST /api/branches", authMW(requireAdmin(http.HandlerFunc(branchesHandler.Create))))
	mux.Handle("GET /api/branches/{id}", authMW(http.HandlerFunc(branchesHandler.Get)))
	mux.Handle("PUT /api/branches/{id}", authMW(requireManager(http.HandlerFunc(branchesHandler.Update))))
	mux.Handle("DELETE /api/branches/{id}", authMW(requireAdmin(http.HandlerFunc(branchesHandler.Delete))))

	// Departments: read (all roles), write (manager+), delete (admin).
	mux.Handle("GET /api/departments", authMW(http.HandlerFunc(departmentsHandler.List)))
	mux.Handle("POST /api/departments", authMW(requireManager(http.HandlerFunc(departmentsHandler.Create))))
	mux.Handle("GET /api/departments/{id}", authMW(http.HandlerFunc(departmentsHandler.Get)))
	mux.Handle("PUT /api/departments/{id}", authMW(requireManager(http.HandlerFunc(departmentsHandler.Update))))
	mux.Handle("DELETE /api/departments/{id}", authMW(requireAdmin(http.HandlerFunc(departmentsHandler.Delete))))

	// Assets: read (all roles), write (manager+), delete (admin).
	mux.Handle("GET /api/assets", authMW(http.HandlerFunc(assetsHandler.List)))
	mux.Handle("POST /api/assets", authMW(requireManager(http.HandlerFunc(assetsHandler.Create))))
	mux.Handle("GET /api/assets/{id}", authMW(http.HandlerFunc(assetsHandler.Get)))
	mux.Handle("PUT /api/assets/{id}", authMW(requireManager(http.HandlerFunc(assetsHandler.Update))))
	mux.Handle("DELETE /api/assets/{id}", authMW(requireAdmin(http.HandlerFunc(assetsHandler.Delete))))
	mux.Handle("POST /api/assets/{id}/receive", authMW(requireManager(http.HandlerFunc(assetsHandler.Receive))))
	mux.Handle("PUT /api/assets/{id}/photo", authMW(requireManager(http.HandlerFunc(assetsHandler.UploadPhoto))))
	mux.Handle("GET /api/assets/{id}/photo", authMW(http.HandlerFunc(assetsHandler.GetPhoto)))

	// Assignments: read (all roles), write (manager+).
	mux.Handle("GET /api/assignments", authMW(http.HandlerFunc(assignmentsHandler.List)))
	mux.Handle("POST /api/assignments", authMW(requireManager(http.HandlerFunc(assignmentsHandler.Create))))
	mux.Handle("GET /api/assignments/{id}", authMW(http.HandlerFunc(assignmentsHandler.Get)))
	mux.Handle("POST /api/assignments/{id}/return", authMW(requireManager(http.HandlerFunc(assignmentsHandler.Return))))

	// Movements (read-only, all roles).
	mux.Handle("GET /api/movements", authMW(http.HandlerFunc(movementsHandler.List)))

	// Gate passes: read (all roles), lifecycle (manager+).
	mux.Handle("GET /api/gatepasses", authMW(http.HandlerFunc(gatePassesHandler.List)))
	mux.Handle("POST /api/gatepasses", authMW(requireManager(http.HandlerFunc(gatePassesHandler.Create))))
	mux.Handle("GET /api/gatepasses/{id}", authMW(http.HandlerFunc(gatePassesHandler.Get)))
	mux.Handle("POST /api/gatepasses/{id}/deliver", authMW(requireManager(http.HandlerFunc(gatePassesHandler.Deliver))))
	mux.Handle("POST /api/gatepasses/{id}/grn", authMW(requireManager(http.HandlerFunc(gatePassesHandler.RecordGRN))))

	// Indent requests: any user can raise one, manager+ decides.
	mux.Handle("GET /api/indents", authMW(http.HandlerFunc(indentsHandler.List)))
	mux.Handle("POST /api/indents", authMW(http.HandlerFunc(indentsHandler.Create)))
	mux.Handle("GET /api/indents/{id}", authMW(http.HandlerFunc(indentsHandler.Get)))
	mux.Handle("PUT /api/indents/{id}/status", authMW(requireManager(http.HandlerFunc(indentsHandler.UpdateStatus))))

	// Software licenses: read (all roles), write (manager+), delete (admin).
	mux.Handle("GET /api/licenses", authMW(http.HandlerFunc(licensesHandler.List)))
	mux.Handle("POST /api/licenses", authMW(requireManager(http.HandlerFunc(licensesHandler.Create))))
	mux.Handle("GET /api/licenses/{id}", authMW(http.HandlerFunc(licensesHandler.Get)))
	mux.Handle("PUT /api/licenses/{id}", authMW(requireManager(http.HandlerFunc(licensesHandler.Update))))
	mux.Handle("DELETE /api/licenses/{id}", authMW(requireAdmin(http.HandlerFunc(licensesHandler.Delete))))

	// Dashboard and reports (read: all roles, sending mail: manager+).
	mux.Handle("GET /api/dashboard", authMW(http.HandlerFunc(dashboardHandler.Stats)))
	mux.Handle("GET /api/reports/daily", authMW(http.HandlerFunc(dashboardHandler.DailyReport)))
	mux.Handle("POST /api/reports/daily/send", authMW(requireManager(http.HandlerFunc(dashboardHandler.SendDailyReport))))
	mux.Handle("POST /api/reports/lowstock/send", authMW(requireManager(http.HandlerFunc(dashboardHandler.LowStockAlert))))

	// Inventory overview and exports.
	mux.Handle("GET /api/inventory", authMW(http.HandlerFunc(inventoryHandler.Overview)))
	mux.Handle("GET /api/inventory/export", authMW(http.HandlerFunc(inventoryHandler.ExportXLSX)))
	mux.Handle("GET /api/export/assets", authMW(http.HandlerFunc(exportHandler.Assets)))
	mux.Handle("GET /api/export/branches", authMW(http.HandlerFunc(exportHandler.Branches)))
	mux.Handle("GET /api/templates/assets", authMW(http.HandlerFunc(exportHandler.AssetTemplate)))
	mux.Handle("GET /api/templates/branches", authMW(http.HandlerFunc(exportHandler.BranchTemplate)))

	// Imports (admin).
	mux.Handle("POST /api/import/branches", authMW(requireAdmin(http.HandlerFunc(importHandler.Branches))))

	var handler http.Handler = mux
	if opts.Metrics {
		mux.Handle("GET /metrics", promhttp.Handler())
		handler = MetricsMiddleware(mux)(handler)
	}

	return handler
}
