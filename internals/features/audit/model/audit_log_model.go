package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLogModel adalah jejak perubahan data, append-only.
// Baris tidak pernah di-update atau dihapus lewat aplikasi.
// audit_log_id bigserial: urutan kanonik event = urutan insert.
// audit_log_ref dipakai sebagai ID publik di API eksternal.
type AuditLogModel struct {
	AuditLogID       uint64         `gorm:"column:audit_log_id;primaryKey;autoIncrement" json:"audit_log_id"`
	AuditLogRef      uuid.UUID      `gorm:"column:audit_log_ref;type:uuid;not null;unique" json:"audit_log_ref"`
	AuditLogTsUTC    time.Time      `gorm:"column:audit_log_ts_utc;not null;index" json:"audit_log_ts_utc"`
	AuditLogActor    string         `gorm:"column:audit_log_actor;type:varchar(100);not null" json:"audit_log_actor"`
	AuditLogRole     string         `gorm:"column:audit_log_role;type:varchar(30);not null" json:"audit_log_role"`
	AuditLogFeature  string         `gorm:"column:audit_log_feature;type:varchar(80);not null" json:"audit_log_feature"`
	AuditLogEntity   string         `gorm:"column:audit_log_entity;type:varchar(120);not null;index" json:"audit_log_entity"`
	AuditLogRecordID string         `gorm:"column:audit_log_record_id;type:varchar(120)" json:"audit_log_record_id"`
	AuditLogAction   string         `gorm:"column:audit_log_action;type:varchar(10);not null" json:"audit_log_action"`
	AuditLogReason   string         `gorm:"column:audit_log_reason;type:text" json:"audit_log_reason"`
	AuditLogBefore   datatypes.JSON `gorm:"column:audit_log_before_json" json:"audit_log_before_json"`
	AuditLogAfter    datatypes.JSON `gorm:"column:audit_log_after_json" json:"audit_log_after_json"`
	AuditLogDiff     datatypes.JSON `gorm:"column:audit_log_diff_json" json:"audit_log_diff_json"`
	AuditLogCreated  time.Time      `gorm:"column:audit_log_created_at;autoCreateTime" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
