package route

import (
	"github.com/gofiber/fiber/v2"

	"laporanku_backend/internals/features/reports/controller"
)

func ReportUserRoutes(api fiber.Router, ctrl *controller.ReportController) {
	// === USER ROUTES ===
	user := api.Group("/reports")
	user.Post("/", ctrl.SubmitReport) // ➕ Submit laporan harian
	user.Get("/", ctrl.GetMyReports)  // 📄 Lihat laporan sendiri
}
