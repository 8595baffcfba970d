// internals/features/reports/service/sheet_store.go
package service

import (
	"context"
	"errors"
	"strings"
)

// Skema kanonik worksheet per-staff. Urutan kolom tidak boleh berubah.
var ReportHeaders = []string{
	"Timestamp",
	"Nama",
	"Tempat Dikunjungi",
	"Deskripsi",
	"Link Foto",
	"Link Sosmed",
}

// TimestampLayout: wall-clock lokal zona pelaporan, bukan input klien.
const TimestampLayout = "02-01-2006 15:04:05"

var (
	ErrConnectionFailed  = errors.New("koneksi ke spreadsheet backend gagal")
	ErrWorksheetNotFound = errors.New("worksheet tidak ditemukan")
)

// Worksheet adalah handle ringan ke satu sheet di spreadsheet remote.
type Worksheet struct {
	Title   string
	SheetID int64
}

// SheetStore adalah kontrak terhadap layanan spreadsheet remote.
// Operasi format bersifat best-effort; kegagalannya tidak menggagalkan
// operasi di sekelilingnya (ditangani pemanggil).
type SheetStore interface {
	// Worksheet mengembalikan handle sheet bernama title, atau ErrWorksheetNotFound.
	Worksheet(ctx context.Context, title string) (*Worksheet, error)
	CreateWorksheet(ctx context.Context, title string, rows, cols int64) (*Worksheet, error)

	// ReadHeader membaca baris pertama sebagai urutan string.
	ReadHeader(ctx context.Context, ws *Worksheet) ([]string, error)
	// WriteHeader menimpa sel 1..len(headers) pada baris pertama.
	WriteHeader(ctx context.Context, ws *Worksheet, headers []string) error

	// AppendRow menambah baris pada baris kosong pertama (nilai USER_ENTERED).
	AppendRow(ctx context.Context, ws *Worksheet, values []string) error
	// ReadAllRecords membaca seluruh sheet sebagai record berkunci header;
	// sel kosong menjadi string kosong.
	ReadAllRecords(ctx context.Context, ws *Worksheet) ([]map[string]string, error)

	// FormatHeader menebalkan baris header (kosmetik).
	FormatHeader(ctx context.Context, ws *Worksheet, cols int64) error
}

// BlobStore adalah kontrak terhadap object store foto.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// EnsurePublicURL membuat/menemukan URL publik objek secara idempoten.
	EnsurePublicURL(ctx context.Context, key string) (string, error)
}

// HeadersEqual membandingkan header elemen-per-elemen (trimmed).
func HeadersEqual(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(got[i]) != strings.TrimSpace(want[i]) {
			return false
		}
	}
	return true
}
