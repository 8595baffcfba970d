package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"

	auditsvc "laporanku_backend/internals/features/audit/service"
)

var (
	ErrRecordNotFound = errors.New("record tidak ditemukan")
	ErrTableForbidden = errors.New("tabel tidak boleh diakses lewat gateway")
)

// identRe: nama tabel/kolom yang sah, gaya snake_case Postgres.
var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Actor adalah identitas pengubah untuk keperluan audit.
type Actor struct {
	Name string
	Role string
}

// AuditSink menerima event audit lokal (dipenuhi AuditStore).
type AuditSink interface {
	Append(ctx context.Context, ev auditsvc.AuditEvent) error
}

// MirrorSink menerima baris cermin audit di spreadsheet (dipenuhi AuditSheet).
type MirrorSink interface {
	Append(ctx context.Context, entry auditsvc.SheetEntry) error
}

// RecordGateway adalah pintu baca/tulis generik per tabel + id.
// Setiap update menghasilkan satu event audit UPDATE; tabel audit
// sendiri tertutup dari gateway supaya jejak tetap append-only.
type RecordGateway struct {
	DB    *gorm.DB
	Audit AuditSink
	Sheet MirrorSink // boleh nil, cermin best-effort
}

func NewRecordGateway(db *gorm.DB, audit AuditSink, sheet MirrorSink) *RecordGateway {
	return &RecordGateway{DB: db, Audit: audit, Sheet: sheet}
}

func validIdentifier(name string) bool {
	return identRe.MatchString(name)
}

func checkTable(table string) error {
	if !validIdentifier(table) {
		return fmt.Errorf("nama tabel tidak valid: %q", table)
	}
	if table == "audit_logs" {
		return ErrTableForbidden
	}
	return nil
}

// Get membaca satu baris sebagai kolom→nilai string.
func (g *RecordGateway) Get(ctx context.Context, table, id string) (map[string]string, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}

	var row map[string]any
	err := g.DB.WithContext(ctx).Table(table).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, table, id)
	}
	if err != nil {
		return nil, err
	}
	return stringifyRow(row), nil
}

// Update menimpa kolom yang disebut saja, dalam satu statement, lalu
// mencatat event audit UPDATE. Kegagalan audit dicatat di log tanpa
// membatalkan update yang sudah terjadi.
func (g *RecordGateway) Update(ctx context.Context, table, id string, fields map[string]string, actor Actor, feature, reason string) (map[string]string, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("tidak ada kolom yang diubah")
	}

	keys := make([]string, 0, len(fields))
	updates := map[string]any{}
	for k, v := range fields {
		if !validIdentifier(k) {
			return nil, fmt.Errorf("nama kolom tidak valid: %q", k)
		}
		if k == "id" {
			return nil, fmt.Errorf("kolom id tidak boleh diubah")
		}
		keys = append(keys, k)
		updates[k] = v
	}
	sort.Strings(keys)

	before, err := g.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}

	res := g.DB.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		Select(keys).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, table, id)
	}

	after, err := g.Get(ctx, table, id)
	if err != nil {
		return nil, err
	}

	g.recordAudit(ctx, table, id, actor, feature, reason, before, after)
	return after, nil
}

func (g *RecordGateway) recordAudit(ctx context.Context, table, id string, actor Actor, feature, reason string, before, after map[string]string) {
	if g.Audit != nil {
		err := g.Audit.Append(ctx, auditsvc.AuditEvent{
			Actor:    actor.Name,
			Role:     actor.Role,
			Feature:  feature,
			Entity:   table,
			RecordID: id,
			Action:   auditsvc.ActionUpdate,
			Reason:   reason,
			Before:   before,
			After:    after,
		})
		if err != nil {
			log.Printf("[RECORDS] catat audit gagal (%s/%s): %v", table, id, err)
		}
	}
	if g.Sheet != nil {
		err := g.Sheet.Append(ctx, auditsvc.SheetEntry{
			Actor:   actor.Name,
			Role:    actor.Role,
			Feature: feature,
			Sheet:   table,
			Action:  auditsvc.ActionUpdate,
			Reason:  reason,
			Changes: auditsvc.DiffFields(before, after),
		})
		if err != nil {
			log.Printf("[RECORDS] cermin audit gagal (%s/%s): %v", table, id, err)
		}
	}
}

func stringifyRow(row map[string]any) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = stringifyCell(v)
	}
	return out
}

func stringifyCell(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
