package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =======================
// CONFIG STRUCT
// =======================
// Semua konfigurasi dimuat sekali di main() lalu dioper lewat struct ini —
// tidak ada global mutable selain pool DB.
type Config struct {
	Port string

	// Postgres (audit log lokal + record gateway)
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	// Token dari identity provider eksternal
	JWTSecret string

	// Tabular backend (Google Sheets)
	SpreadsheetName   string
	GoogleCredentials []byte // service account JSON
	GoogleCredsSumber string // "env" | "file" (untuk log)

	// Blob backend (Aliyun OSS)
	OSSEndpoint      string
	OSSAccessKey     string
	OSSSecretKey     string
	OSSSecurityToken string
	OSSBucket        string
	OSSPublicBase    string
	OSSRootFolder    string

	// Zona pelaporan (timestamp & rentang tanggal dievaluasi di sini)
	ReportTimezone string
	Location       *time.Location

	// Daftar staff untuk dashboard admin (dipisah koma)
	StaffList []string

	// Batas downscale foto sebelum upload (0 = nonaktif)
	PhotoMaxW int
	PhotoMaxH int
}

// =======================
// ENV LOADER
// =======================
func Load() (*Config, error) {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	cfg := &Config{
		Port: GetEnv("PORT", "3000"),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		JWTSecret: GetEnv("JWT_SECRET"),

		SpreadsheetName: GetEnv("SPREADSHEET_NAME"),

		OSSEndpoint:      GetEnv("ALI_OSS_ENDPOINT"),
		OSSAccessKey:     GetEnv("ALI_OSS_ACCESS_KEY"),
		OSSSecretKey:     GetEnv("ALI_OSS_SECRET_KEY"),
		OSSSecurityToken: GetEnv("ALI_OSS_SECURITY_TOKEN"),
		OSSBucket:        GetEnv("ALI_OSS_BUCKET"),
		OSSPublicBase:    GetEnv("ALI_OSS_PUBLIC_BASE"),
		OSSRootFolder:    strings.Trim(GetEnv("OSS_ROOT_FOLDER", "laporan"), "/"),

		ReportTimezone: GetEnv("REPORT_TIMEZONE", "Asia/Jakarta"),

		PhotoMaxW: envInt("PHOTO_MAX_W", 1600),
		PhotoMaxH: envInt("PHOTO_MAX_H", 1600),
	}

	// Kredensial service account: raw JSON di env, atau path file
	if raw := GetEnv("GOOGLE_SERVICE_ACCOUNT_JSON"); raw != "" {
		cfg.GoogleCredentials = []byte(raw)
		cfg.GoogleCredsSumber = "env"
	} else if path := GetEnv("GOOGLE_SERVICE_ACCOUNT_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: gagal baca %s: %w", path, err)
		}
		cfg.GoogleCredentials = b
		cfg.GoogleCredsSumber = "file"
	}

	for _, s := range strings.Split(GetEnv("STAFF_LIST"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			cfg.StaffList = append(cfg.StaffList, s)
		}
	}

	// Fail-fast: tanpa ini server tidak boleh menerima laporan
	missing := []string{}
	requireds := map[string]string{
		"DB_USER":          cfg.DBUser,
		"DB_HOST":          cfg.DBHost,
		"DB_NAME":          cfg.DBName,
		"JWT_SECRET":       cfg.JWTSecret,
		"SPREADSHEET_NAME": cfg.SpreadsheetName,
		"ALI_OSS_ENDPOINT": cfg.OSSEndpoint,
		"ALI_OSS_BUCKET":   cfg.OSSBucket,
	}
	for k, v := range requireds {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(cfg.GoogleCredentials) == 0 {
		missing = append(missing, "GOOGLE_SERVICE_ACCOUNT_JSON")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("config: env wajib belum diset: %s", strings.Join(missing, ", "))
	}

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		return nil, fmt.Errorf("config: REPORT_TIMEZONE %q tidak valid: %w", cfg.ReportTimezone, err)
	}
	cfg.Location = loc

	log.Printf("✅ Config dimuat (spreadsheet=%s, bucket=%s, tz=%s, creds=%s)",
		cfg.SpreadsheetName, cfg.OSSBucket, cfg.ReportTimezone, cfg.GoogleCredsSumber)
	return cfg, nil
}

// DSN membangun connection string Postgres (selaras dengan PgBouncer).
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=laporanku&options=-c statement_timeout=3000",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
