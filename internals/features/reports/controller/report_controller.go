package controller

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"laporanku_backend/internals/features/reports/dto"
	"laporanku_backend/internals/features/reports/service"
	helper "laporanku_backend/internals/helpers"
	"laporanku_backend/internals/middlewares/auth"
)

var validateReport = validator.New()

type ReportController struct {
	Submitter *service.Submitter
	Loader    *service.Loader
	StaffList []string
}

func NewReportController(submitter *service.Submitter, loader *service.Loader, staffList []string) *ReportController {
	return &ReportController{Submitter: submitter, Loader: loader, StaffList: staffList}
}

// =======================
// ➕ Submit Laporan Harian
// =======================
func (ctrl *ReportController) SubmitReport(c *fiber.Ctx) error {
	pr := auth.PrincipalFromLocals(c)

	var body dto.SubmitReportRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validateReport.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Foto diambil dari field multipart "photos", urutan dipertahankan
	photos := []service.Photo{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["photos"] {
			f, err := fh.Open()
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Gagal membuka file "+fh.Filename)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "Gagal membaca file "+fh.Filename)
			}
			photos = append(photos, service.Photo{
				Filename:    fh.Filename,
				Data:        data,
				ContentType: fh.Header.Get("Content-Type"),
			})
		}
	}

	res, err := ctrl.Submitter.Submit(c.UserContext(), service.SubmitInput{
		Author:      pr.DisplayName,
		Role:        pr.Role,
		Date:        body.Date,
		Location:    body.Location,
		Description: body.Description,
		SocialLink:  body.SocialLink,
		Photos:      photos,
	})
	if err != nil {
		return submitErrorResponse(c, err, res)
	}

	return helper.JsonCreated(c, "Laporan tersimpan", res)
}

func submitErrorResponse(c *fiber.Ctx, err error, res *service.SubmitResult) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return helper.JsonValidationError(c, map[string][]string{verr.Field: {verr.Reason}})
	}

	var uerr *service.UploadError
	switch {
	case errors.As(err, &uerr):
		log.Printf("[REPORT] upload gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Upload foto "+uerr.Filename+" gagal, laporan dibatalkan")
	case errors.Is(err, service.ErrProvisioningFailed):
		log.Printf("[REPORT] provisioning gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Worksheet laporan tidak bisa disiapkan")
	case errors.Is(err, service.ErrAppendFailed):
		log.Printf("[REPORT] append gagal (stage=%s): %v", res.Stage, err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Baris laporan gagal ditulis (foto sudah terupload)")
	default:
		log.Printf("[REPORT] submit error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan laporan")
	}
}

// =======================
// 📄 Laporan milik sendiri
// =======================
func (ctrl *ReportController) GetMyReports(c *fiber.Ctx) error {
	pr := auth.PrincipalFromLocals(c)

	recs, err := ctrl.Loader.Load(c.UserContext(), []string{pr.DisplayName})
	if err != nil {
		log.Printf("[REPORT] load gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Backend laporan tidak tercapai")
	}
	return helper.JsonList(c, "ok", recs, nil)
}

// =============================
// 📄 Semua laporan (dashboard admin)
// Query: ?staff=Budi,Sari (default: STAFF_LIST)
// =============================
func (ctrl *ReportController) GetAllReports(c *fiber.Ctx) error {
	staff := ctrl.StaffList
	if q := strings.TrimSpace(c.Query("staff")); q != "" {
		staff = nil
		for _, s := range strings.Split(q, ",") {
			if s = strings.TrimSpace(s); s != "" {
				staff = append(staff, s)
			}
		}
	}
	if len(staff) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Daftar staff kosong (set STAFF_LIST atau ?staff=)")
	}

	recs, err := ctrl.Loader.Load(c.UserContext(), staff)
	if err != nil {
		log.Printf("[REPORT] load gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Backend laporan tidak tercapai")
	}
	return helper.JsonList(c, "ok", recs, nil)
}
