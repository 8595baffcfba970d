package route

import (
	"github.com/gofiber/fiber/v2"

	auditcontroller "laporanku_backend/internals/features/audit/controller"
	auditroute "laporanku_backend/internals/features/audit/route"
	recordcontroller "laporanku_backend/internals/features/records/controller"
	recordroute "laporanku_backend/internals/features/records/route"
	reportcontroller "laporanku_backend/internals/features/reports/controller"
	reportroute "laporanku_backend/internals/features/reports/route"

	"laporanku_backend/internals/constants"
	"laporanku_backend/internals/middlewares/auth"
)

// Deps membawa controller yang sudah dirakit di main().
type Deps struct {
	JWTSecret string

	Report *reportcontroller.ReportController
	Audit  *auditcontroller.AuditController
	Record *recordcontroller.RecordController
}

func SetupRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api")

	// 🔒 Semua rute butuh token; admin dipagari role
	user := api.Group("/u", auth.AuthMiddleware(deps.JWTSecret))
	admin := api.Group("/a",
		auth.AuthMiddleware(deps.JWTSecret),
		auth.OnlyRoles(constants.RoleErrorAdmin("panel admin"), constants.RoleAdmin),
	)

	// === USER ===
	reportroute.ReportUserRoutes(user, deps.Report)

	// === ADMIN ===
	reportroute.ReportAdminRoutes(admin, deps.Report)
	auditroute.AuditAdminRoutes(admin, deps.Audit)
	recordroute.RecordAdminRoutes(admin, deps.Record)
}
