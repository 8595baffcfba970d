package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func parseAuditSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse(&AuditLogModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	return s
}

// Kunci primer harus auto-increment: urutan id = urutan insert,
// jadi id bisa dipakai sebagai urutan kanonik event.
func TestAuditLogPrimaryKeyIsAutoIncrement(t *testing.T) {
	s := parseAuditSchema(t)

	pk := s.PrioritizedPrimaryField
	require.NotNil(t, pk)
	assert.Equal(t, "audit_log_id", pk.DBName)
	assert.True(t, pk.AutoIncrement)
	assert.Equal(t, schema.Uint, pk.DataType)
}

func TestAuditLogRefIsUniqueUUIDColumn(t *testing.T) {
	s := parseAuditSchema(t)

	ref := s.LookUpField("audit_log_ref")
	require.NotNil(t, ref)
	assert.False(t, ref.PrimaryKey)
	assert.True(t, ref.Unique)
	assert.True(t, ref.NotNull)
}

func TestAuditLogTableName(t *testing.T) {
	assert.Equal(t, "audit_logs", AuditLogModel{}.TableName())
}
