package route

import (
	"github.com/gofiber/fiber/v2"

	"laporanku_backend/internals/features/records/controller"
)

func RecordAdminRoutes(api fiber.Router, ctrl *controller.RecordController) {
	// === ADMIN ROUTES ===
	rec := api.Group("/records")
	rec.Get("/:table/:id", ctrl.GetRecord)    // 🔍 Baca satu record
	rec.Put("/:table/:id", ctrl.UpdateRecord) // ✏️ Update kolom terpilih
}
