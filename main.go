package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"laporanku_backend/internals/configs"
	database "laporanku_backend/internals/databases"
	auditcontroller "laporanku_backend/internals/features/audit/controller"
	auditsvc "laporanku_backend/internals/features/audit/service"
	recordcontroller "laporanku_backend/internals/features/records/controller"
	recordsvc "laporanku_backend/internals/features/records/service"
	reportcontroller "laporanku_backend/internals/features/reports/controller"
	reportsvc "laporanku_backend/internals/features/reports/service"
	"laporanku_backend/internals/helpers/cache"
	osshelper "laporanku_backend/internals/helpers/oss"
	"laporanku_backend/internals/middlewares"
	"laporanku_backend/internals/route"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("❌ Gagal memuat konfigurasi: %v", err)
	}

	// 🔌 Postgres: audit log lokal + record gateway
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ Gagal konek database: %v", err)
	}
	database.TunePool(db)

	auditStore := auditsvc.NewAuditStore(db)
	if err := auditStore.Init(); err != nil {
		log.Fatalf("❌ Gagal migrasi tabel audit: %v", err)
	}

	ctx := context.Background()

	// 📊 Spreadsheet backend
	sheetStore, err := reportsvc.NewGoogleSheetStore(ctx, cfg.GoogleCredentials, cfg.SpreadsheetName)
	if err != nil {
		log.Fatalf("❌ Gagal konek spreadsheet backend: %v", err)
	}

	// 🖼️ Blob backend (foto laporan)
	ossSvc, err := osshelper.NewOSSService(osshelper.Options{
		Endpoint:      cfg.OSSEndpoint,
		AccessKey:     cfg.OSSAccessKey,
		SecretKey:     cfg.OSSSecretKey,
		SecurityToken: cfg.OSSSecurityToken,
		Bucket:        cfg.OSSBucket,
		PublicBase:    cfg.OSSPublicBase,
	})
	if err != nil {
		log.Fatalf("❌ Gagal init OSS: %v", err)
	}

	// 🧠 Memo handle worksheet + cache hasil load, TTL pendek
	memo := cache.New(60 * time.Second)
	results := cache.New(60 * time.Second)

	prov := reportsvc.NewProvisioner(sheetStore, memo)
	auditSheet := auditsvc.NewAuditSheet(sheetStore, cfg.Location)
	submitter := reportsvc.NewSubmitter(sheetStore, ossSvc, prov, auditSheet,
		results, cfg.OSSRootFolder, cfg.Location, cfg.PhotoMaxW, cfg.PhotoMaxH)
	loader := reportsvc.NewLoader(sheetStore, prov, results, cfg.Location)
	gateway := recordsvc.NewRecordGateway(db, auditStore, auditSheet)

	// Worksheet audit disiapkan di depan; kalau gagal, server tetap jalan
	if err := auditSheet.Ensure(ctx); err != nil {
		log.Printf("⚠️ Worksheet audit belum siap: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:     "laporanku_backend",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		BodyLimit:   25 * 1024 * 1024, // foto multipart
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.CorsMiddleware())
	app.Use(requestid.New())
	app.Use(compress.New())
	app.Use(etag.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	route.SetupRoutes(app, route.Deps{
		JWTSecret: cfg.JWTSecret,
		Report:    reportcontroller.NewReportController(submitter, loader, cfg.StaffList),
		Audit:     auditcontroller.NewAuditController(auditStore, auditSheet),
		Record:    recordcontroller.NewRecordController(gateway),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Menutup server...")
		_ = app.Shutdown()
	}()

	log.Printf("🚀 Server jalan di port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server berhenti tidak normal: %v", err)
	}
	log.Println("👋 Server berhenti")
}
