package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reportsvc "laporanku_backend/internals/features/reports/service"
)

// stubSheetStore: spreadsheet in-memory minimal untuk menguji cermin audit.
type stubSheetStore struct {
	sheets map[string][][]string
	errOn  map[string]error
}

func newStubSheetStore() *stubSheetStore {
	return &stubSheetStore{sheets: map[string][][]string{}, errOn: map[string]error{}}
}

func (s *stubSheetStore) Worksheet(_ context.Context, title string) (*reportsvc.Worksheet, error) {
	if err := s.errOn["get"]; err != nil {
		return nil, err
	}
	if _, ok := s.sheets[title]; !ok {
		return nil, fmt.Errorf("%w: %q", reportsvc.ErrWorksheetNotFound, title)
	}
	return &reportsvc.Worksheet{Title: title, SheetID: 7}, nil
}

func (s *stubSheetStore) CreateWorksheet(_ context.Context, title string, rows, cols int64) (*reportsvc.Worksheet, error) {
	s.sheets[title] = [][]string{}
	return &reportsvc.Worksheet{Title: title, SheetID: 7}, nil
}

func (s *stubSheetStore) ReadHeader(_ context.Context, ws *reportsvc.Worksheet) ([]string, error) {
	rows := s.sheets[ws.Title]
	if len(rows) == 0 {
		return []string{}, nil
	}
	return rows[0], nil
}

func (s *stubSheetStore) WriteHeader(_ context.Context, ws *reportsvc.Worksheet, headers []string) error {
	rows := s.sheets[ws.Title]
	if len(rows) == 0 {
		rows = [][]string{nil}
	}
	rows[0] = append([]string(nil), headers...)
	s.sheets[ws.Title] = rows
	return nil
}

func (s *stubSheetStore) AppendRow(_ context.Context, ws *reportsvc.Worksheet, values []string) error {
	if err := s.errOn["append"]; err != nil {
		return err
	}
	s.sheets[ws.Title] = append(s.sheets[ws.Title], append([]string(nil), values...))
	return nil
}

func (s *stubSheetStore) ReadAllRecords(_ context.Context, ws *reportsvc.Worksheet) ([]map[string]string, error) {
	rows := s.sheets[ws.Title]
	if len(rows) == 0 {
		return []map[string]string{}, nil
	}
	out := []map[string]string{}
	for _, row := range rows[1:] {
		rec := map[string]string{}
		for i, h := range rows[0] {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *stubSheetStore) FormatHeader(_ context.Context, ws *reportsvc.Worksheet, cols int64) error {
	return s.errOn["format"]
}

var wibAudit = time.FixedZone("WIB", 7*3600)

func newAuditSheetForTest(store reportsvc.SheetStore) *AuditSheet {
	a := NewAuditSheet(store, wibAudit)
	a.now = func() time.Time {
		return time.Date(2025, 3, 7, 14, 5, 9, 0, wibAudit)
	}
	return a
}

func TestAuditSheetEnsureCreatesWithHeader(t *testing.T) {
	store := newStubSheetStore()
	sheet := newAuditSheetForTest(store)

	require.NoError(t, sheet.Ensure(context.Background()))
	assert.Equal(t, AuditSheetHeaders, store.sheets[AuditSheetTitle][0])
}

func TestAuditSheetEnsureRepairsDriftedHeader(t *testing.T) {
	store := newStubSheetStore()
	store.sheets[AuditSheetTitle] = [][]string{
		{"Waktu", "Siapa"},
		{"01-03-2025 08:00:00", "Budi"},
	}
	sheet := newAuditSheetForTest(store)

	require.NoError(t, sheet.Ensure(context.Background()))
	assert.Equal(t, AuditSheetHeaders, store.sheets[AuditSheetTitle][0])
	// baris data tidak disentuh
	assert.Equal(t, "Budi", store.sheets[AuditSheetTitle][1][1])
}

func TestAuditSheetAppendWritesNineColumns(t *testing.T) {
	store := newStubSheetStore()
	sheet := newAuditSheetForTest(store)

	err := sheet.Append(context.Background(), SheetEntry{
		Actor:   "Admin Satu",
		Role:    "admin",
		Feature: "Data Gateway",
		Sheet:   "reports",
		Row:     4,
		Action:  ActionUpdate,
		Reason:  "koreksi lokasi",
		Changes: map[string]FieldChange{
			"Tempat Dikunjungi": {Before: "Pasar", After: "Mall"},
		},
	})
	require.NoError(t, err)

	rows := store.sheets[AuditSheetTitle]
	require.Len(t, rows, 2)
	row := rows[1]
	require.Len(t, row, len(AuditSheetHeaders))
	assert.Equal(t, "07-03-2025 14:05:09", row[0])
	assert.Equal(t, "Admin Satu", row[1])
	assert.Equal(t, "4", row[5])
	assert.Equal(t, ActionUpdate, row[6])
	assert.Equal(t, "koreksi lokasi", row[7])
	assert.Equal(t, "• Tempat Dikunjungi: Pasar ➡ Mall", row[8])
}

func TestAuditSheetAppendInsertZipsReportRow(t *testing.T) {
	store := newStubSheetStore()
	sheet := newAuditSheetForTest(store)

	row := []string{"07-03-2025 14:05:09", "Budi", "Kantor", "Rapat", "-", ""}
	require.NoError(t, sheet.AppendInsert(context.Background(), "Budi", "staff", "Budi", row))

	rows := store.sheets[AuditSheetTitle]
	require.Len(t, rows, 2)
	got := rows[1]
	assert.Equal(t, "Laporan Harian", got[3])
	assert.Equal(t, "Budi", got[4])
	assert.Equal(t, "-", got[5]) // baris tidak diketahui
	assert.Equal(t, ActionInsert, got[6])
	assert.Contains(t, got[8], "• Nama: (kosong) ➡ Budi")
	// kolom kosong tidak ikut dirinci
	assert.NotContains(t, got[8], "Link Sosmed")
}

func TestRenderChangesFormatting(t *testing.T) {
	assert.Equal(t, "-", RenderChanges(nil))
	assert.Equal(t, "-", RenderChanges(map[string]FieldChange{}))

	out := RenderChanges(map[string]FieldChange{
		"Deskripsi": {Before: "Rapat", After: ""},
		"Alamat":    {Before: "", After: "Jl. Melati"},
	})
	assert.Equal(t,
		"• Alamat: (kosong) ➡ Jl. Melati\n• Deskripsi: Rapat ➡ (kosong)",
		out)
}

func TestAuditSheetLoadMissingWorksheetReturnsEmpty(t *testing.T) {
	sheet := newAuditSheetForTest(newStubSheetStore())

	recs, err := sheet.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}
