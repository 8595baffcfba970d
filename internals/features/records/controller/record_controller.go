package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"laporanku_backend/internals/features/records/dto"
	"laporanku_backend/internals/features/records/service"
	helper "laporanku_backend/internals/helpers"
	"laporanku_backend/internals/middlewares/auth"
)

var validateRecord = validator.New()

type RecordController struct {
	Gateway *service.RecordGateway
}

func NewRecordController(gw *service.RecordGateway) *RecordController {
	return &RecordController{Gateway: gw}
}

// ==============================
// 🔍 GET /records/:table/:id
// ==============================
func (ctrl *RecordController) GetRecord(c *fiber.Ctx) error {
	table := c.Params("table")
	id := c.Params("id")

	row, err := ctrl.Gateway.Get(c.Context(), table, id)
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Record tidak ditemukan")
	case errors.Is(err, service.ErrTableForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, "Tabel audit tidak bisa diakses lewat gateway")
	case err != nil:
		log.Printf("[RECORDS] get %s/%s gagal: %v", table, id, err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonOK(c, "ok", row)
}

// ==============================
// ✏️ PUT /records/:table/:id
// ==============================
func (ctrl *RecordController) UpdateRecord(c *fiber.Ctx) error {
	table := c.Params("table")
	id := c.Params("id")
	pr := auth.PrincipalFromLocals(c)

	var body dto.UpdateRecordRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateRecord.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	feature := strings.TrimSpace(body.Feature)
	if feature == "" {
		feature = "Data Gateway"
	}

	after, err := ctrl.Gateway.Update(c.Context(), table, id, body.Fields,
		service.Actor{Name: pr.DisplayName, Role: pr.Role}, feature, body.Reason)
	switch {
	case errors.Is(err, service.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Record tidak ditemukan")
	case errors.Is(err, service.ErrTableForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, "Tabel audit tidak bisa diakses lewat gateway")
	case err != nil:
		log.Printf("[RECORDS] update %s/%s gagal: %v", table, id, err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Record diperbarui", after)
}
