package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"laporanku_backend/internals/features/audit/model"
)

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// AuditEvent adalah satu kejadian perubahan data yang mau dicatat.
type AuditEvent struct {
	Actor    string
	Role     string
	Feature  string
	Entity   string
	RecordID string
	Action   string
	Reason   string
	Before   map[string]string
	After    map[string]string
}

// AuditStore menulis dan membaca jejak audit lokal di Postgres.
// Hanya ada Append dan Load, tidak ada update atau delete.
type AuditStore struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewAuditStore(db *gorm.DB) *AuditStore {
	return &AuditStore{DB: db, now: time.Now}
}

func (s *AuditStore) Init() error {
	return s.DB.AutoMigrate(&model.AuditLogModel{})
}

func (s *AuditStore) Append(ctx context.Context, ev AuditEvent) error {
	entry, err := s.buildEntry(ev)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Create(&entry).Error
}

// buildEntry merakit baris audit dari event; id serial diisi database,
// ref publik diisi di sini. Encoding tergantung aksi: before/after apa
// adanya, diff terstruktur hanya untuk UPDATE.
func (s *AuditStore) buildEntry(ev AuditEvent) (model.AuditLogModel, error) {
	switch ev.Action {
	case ActionInsert, ActionUpdate, ActionDelete:
	default:
		return model.AuditLogModel{}, fmt.Errorf("aksi audit tidak dikenal: %q", ev.Action)
	}

	entry := model.AuditLogModel{
		AuditLogRef:      uuid.New(),
		AuditLogTsUTC:    s.now().UTC(),
		AuditLogActor:    ev.Actor,
		AuditLogRole:     ev.Role,
		AuditLogFeature:  ev.Feature,
		AuditLogEntity:   ev.Entity,
		AuditLogRecordID: ev.RecordID,
		AuditLogAction:   ev.Action,
		AuditLogReason:   ev.Reason,
	}

	var err error
	if ev.Before != nil {
		if entry.AuditLogBefore, err = marshalJSON(ev.Before); err != nil {
			return model.AuditLogModel{}, err
		}
	}
	if ev.After != nil {
		if entry.AuditLogAfter, err = marshalJSON(ev.After); err != nil {
			return model.AuditLogModel{}, err
		}
	}
	if ev.Action == ActionUpdate {
		if entry.AuditLogDiff, err = marshalJSON(DiffFields(ev.Before, ev.After)); err != nil {
			return model.AuditLogModel{}, err
		}
	}
	return entry, nil
}

// Load mengembalikan jejak audit terbaru lebih dulu, dengan paging.
// Diurutkan berdasarkan id serial, bukan timestamp: timestamp bisa seri
// dalam granularitas yang sama, id selalu memetakan urutan insert.
func (s *AuditStore) Load(ctx context.Context, limit, offset int) ([]model.AuditLogModel, int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&model.AuditLogModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.AuditLogModel
	err := s.DB.WithContext(ctx).
		Order("audit_log_id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func marshalJSON(v any) (datatypes.JSON, error) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("gagal encode payload audit: %w", err)
	}
	return datatypes.JSON(raw), nil
}
