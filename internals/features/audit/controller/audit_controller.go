package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"laporanku_backend/internals/features/audit/service"
	helper "laporanku_backend/internals/helpers"
)

type AuditController struct {
	Store *service.AuditStore
	Sheet *service.AuditSheet
}

func NewAuditController(store *service.AuditStore, sheet *service.AuditSheet) *AuditController {
	return &AuditController{Store: store, Sheet: sheet}
}

// =========================================
// 📜 Jejak audit lokal (Postgres), terbaru dulu
// =========================================
func (ctrl *AuditController) GetAuditLogs(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	logs, total, err := ctrl.Store.Load(c.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Printf("[AUDIT] load log gagal: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca jejak audit")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "ok", logs, pagination)
}

// =========================================
// 📜 Cermin audit di spreadsheet
// =========================================
func (ctrl *AuditController) GetAuditSheet(c *fiber.Ctx) error {
	recs, err := ctrl.Sheet.Load(c.UserContext())
	if err != nil {
		log.Printf("[AUDIT] load cermin gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Worksheet audit tidak tercapai")
	}
	return helper.JsonList(c, "ok", recs, nil)
}
