package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	reportsvc "laporanku_backend/internals/features/reports/service"
)

// AuditSheetTitle adalah nama worksheet cermin audit di spreadsheet.
const AuditSheetTitle = "Audit Log"

// AuditSheetHeaders adalah skema tetap worksheet audit, 9 kolom.
var AuditSheetHeaders = []string{
	"Waktu & Tanggal",
	"Pelaku (User)",
	"Jabatan / Role",
	"Fitur yg Digunakan",
	"Nama Data / Sheet",
	"Baris Ke-",
	"Aksi Dilakukan",
	"Alasan Perubahan",
	"Rincian (Sebelum ➡ Sesudah)",
}

// SheetEntry adalah satu baris cermin audit yang siap ditulis.
type SheetEntry struct {
	Actor   string
	Role    string
	Feature string
	Sheet   string
	Row     int // 0 kalau tidak diketahui
	Action  string
	Reason  string
	Changes map[string]FieldChange
}

// AuditSheet menulis cermin audit yang ramah dibaca ke worksheet khusus.
// Kegagalan di sini tidak boleh membatalkan operasi utama, jadi pemanggil
// memperlakukan error sebagai best-effort.
type AuditSheet struct {
	store reportsvc.SheetStore
	loc   *time.Location
	now   func() time.Time
}

func NewAuditSheet(store reportsvc.SheetStore, loc *time.Location) *AuditSheet {
	return &AuditSheet{store: store, loc: loc, now: time.Now}
}

// Ensure menyiapkan worksheet audit: buat kalau belum ada,
// rapikan header kalau sudah ada tapi melenceng.
func (a *AuditSheet) Ensure(ctx context.Context) error {
	ws, err := a.store.Worksheet(ctx, AuditSheetTitle)
	if errors.Is(err, reportsvc.ErrWorksheetNotFound) {
		ws, err = a.store.CreateWorksheet(ctx, AuditSheetTitle, 1, int64(len(AuditSheetHeaders)))
		if err != nil {
			return fmt.Errorf("gagal membuat worksheet audit: %w", err)
		}
		if err := a.store.WriteHeader(ctx, ws, AuditSheetHeaders); err != nil {
			return fmt.Errorf("gagal menulis header audit: %w", err)
		}
		if err := a.store.FormatHeader(ctx, ws, int64(len(AuditSheetHeaders))); err != nil {
			log.Printf("[AUDIT_SHEET] format header gagal (lanjut): %v", err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	header, err := a.store.ReadHeader(ctx, ws)
	if err != nil {
		return err
	}
	if !reportsvc.HeadersEqual(header, AuditSheetHeaders) {
		log.Printf("[AUDIT_SHEET] header melenceng, ditulis ulang: %q", AuditSheetTitle)
		if err := a.store.WriteHeader(ctx, ws, AuditSheetHeaders); err != nil {
			return fmt.Errorf("gagal merapikan header audit: %w", err)
		}
	}
	return nil
}

// Append menulis satu baris cermin audit.
func (a *AuditSheet) Append(ctx context.Context, entry SheetEntry) error {
	if err := a.Ensure(ctx); err != nil {
		return err
	}
	ws, err := a.store.Worksheet(ctx, AuditSheetTitle)
	if err != nil {
		return err
	}

	rowRef := "-"
	if entry.Row > 0 {
		rowRef = strconv.Itoa(entry.Row)
	}
	reason := strings.TrimSpace(entry.Reason)
	if reason == "" {
		reason = "-"
	}

	row := []string{
		a.now().In(a.loc).Format(reportsvc.TimestampLayout),
		entry.Actor,
		entry.Role,
		entry.Feature,
		entry.Sheet,
		rowRef,
		entry.Action,
		reason,
		RenderChanges(entry.Changes),
	}
	return a.store.AppendRow(ctx, ws, row)
}

// Load membaca seluruh isi worksheet audit sebagai record ber-key header.
func (a *AuditSheet) Load(ctx context.Context) ([]map[string]string, error) {
	ws, err := a.store.Worksheet(ctx, AuditSheetTitle)
	if errors.Is(err, reportsvc.ErrWorksheetNotFound) {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return a.store.ReadAllRecords(ctx, ws)
}

// AppendInsert mencatat laporan baru ke cermin audit. Ini implementasi
// AuditTrail milik fitur laporan: header kanonik di-zip dengan nilai baris.
func (a *AuditSheet) AppendInsert(ctx context.Context, actor, role, targetSheet string, row []string) error {
	changes := map[string]FieldChange{}
	for i, col := range reportsvc.ReportHeaders {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		if strings.TrimSpace(val) == "" {
			continue
		}
		changes[col] = FieldChange{Before: "", After: val}
	}
	return a.Append(ctx, SheetEntry{
		Actor:   actor,
		Role:    role,
		Feature: "Laporan Harian",
		Sheet:   targetSheet,
		Action:  ActionInsert,
		Changes: changes,
	})
}

// RenderChanges merangkai diff jadi teks per baris:
// "• Kolom: lama ➡ baru". Nilai kosong ditulis "(kosong)",
// diff kosong ditulis "-". Kolom diurutkan biar stabil.
func RenderChanges(changes map[string]FieldChange) string {
	if len(changes) == 0 {
		return "-"
	}
	cols := make([]string, 0, len(changes))
	for col := range changes {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	lines := make([]string, 0, len(cols))
	for _, col := range cols {
		ch := changes[col]
		lines = append(lines, "• "+col+": "+displayCell(ch.Before)+" ➡ "+displayCell(ch.After))
	}
	return strings.Join(lines, "\n")
}

func displayCell(v string) string {
	if strings.TrimSpace(v) == "" {
		return "(kosong)"
	}
	return v
}
