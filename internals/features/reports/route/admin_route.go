package route

import (
	"github.com/gofiber/fiber/v2"

	"laporanku_backend/internals/features/reports/controller"
)

func ReportAdminRoutes(api fiber.Router, ctrl *controller.ReportController) {
	// === ADMIN ROUTES ===
	admin := api.Group("/reports")
	admin.Get("/", ctrl.GetAllReports) // 📄 Dashboard semua staff
}
