package route

import (
	"github.com/gofiber/fiber/v2"

	"laporanku_backend/internals/features/audit/controller"
)

func AuditAdminRoutes(api fiber.Router, ctrl *controller.AuditController) {
	// === ADMIN ROUTES ===
	api.Get("/audit-logs", ctrl.GetAuditLogs)   // 📜 Jejak audit lokal
	api.Get("/audit-sheet", ctrl.GetAuditSheet) // 📜 Cermin spreadsheet
}
