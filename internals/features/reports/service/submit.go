// internals/features/reports/service/submit.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"laporanku_backend/internals/constants"
	helper "laporanku_backend/internals/helpers"
	"laporanku_backend/internals/helpers/cache"
	osshelper "laporanku_backend/internals/helpers/oss"
)

/* ======== Error kinds ======== */

// ValidationError: input ditolak sebelum ada side effect apa pun.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validasi %s: %s", e.Field, e.Reason)
}

// UploadError: satu foto gagal diupload/dilink → seluruh submit batal.
// Blob yang sudah terupload TIDAK di-rollback (best-effort, terdokumentasi).
type UploadError struct {
	Filename string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s gagal: %v", e.Filename, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ErrAppendFailed: baris gagal ditulis setelah semua upload sukses.
var ErrAppendFailed = errors.New("append baris laporan gagal")

/* ======== Input / output ======== */

type Photo struct {
	Filename    string
	Data        []byte
	ContentType string
}

type SubmitInput struct {
	Author      string // nama tampilan principal
	Role        string
	Date        string // "2006-01-02", informasional; wajib hari ini/kemarin
	Location    string
	Description string
	SocialLink  string
	Photos      []Photo
}

// SubmitResult: permukaan sukses/gagal untuk presentasi.
type SubmitResult struct {
	Saved      bool     `json:"saved"`
	Stage      string   `json:"stage"` // validate|upload|provision|append|done
	Row        []string `json:"row,omitempty"`
	PhotoLinks []string `json:"photo_links,omitempty"`
}

/* ======== Coordinator ======== */

// AuditTrail adalah jejak audit remote yang bisa dilihat user; kegagalan
// menulisnya tidak pernah menutupi hasil submit.
type AuditTrail interface {
	AppendInsert(ctx context.Context, actor, role, targetSheet string, row []string) error
}

// Submitter mengorkestrasi satu submit laporan: upload foto berurutan,
// rakit baris kanonik, provision worksheet, append. Tanpa state lintas
// request selain cache yang dioper dari luar.
type Submitter struct {
	store      SheetStore
	blobs      BlobStore
	prov       *Provisioner
	trail      AuditTrail // boleh nil
	results    *cache.TTLCache
	rootFolder string
	loc        *time.Location
	photoMaxW  int
	photoMaxH  int

	now func() time.Time // dioverride di test
}

func NewSubmitter(store SheetStore, blobs BlobStore, prov *Provisioner, trail AuditTrail,
	results *cache.TTLCache, rootFolder string, loc *time.Location, photoMaxW, photoMaxH int) *Submitter {
	return &Submitter{
		store:      store,
		blobs:      blobs,
		prov:       prov,
		trail:      trail,
		results:    results,
		rootFolder: rootFolder,
		loc:        loc,
		photoMaxW:  photoMaxW,
		photoMaxH:  photoMaxH,
		now:        time.Now,
	}
}

func (s *Submitter) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	// ---- Validasi: fail fast, belum ada write ----
	if err := s.validate(in); err != nil {
		return &SubmitResult{Saved: false, Stage: "validate"}, err
	}

	now := s.now().In(s.loc)

	// ---- Upload foto sesuai urutan yang disajikan ----
	links := make([]string, 0, len(in.Photos))
	for _, ph := range in.Photos {
		data, err := osshelper.PreparePhoto(ph.Data, ph.Filename, s.photoMaxW, s.photoMaxH)
		if err != nil {
			return &SubmitResult{Saved: false, Stage: "upload"}, &UploadError{Filename: ph.Filename, Err: err}
		}
		key := helper.BlobObjectKey(s.rootFolder, in.Author, ph.Filename, now)
		if err := s.blobs.Upload(ctx, key, data, ph.ContentType); err != nil {
			return &SubmitResult{Saved: false, Stage: "upload"}, &UploadError{Filename: ph.Filename, Err: err}
		}
		url, err := s.blobs.EnsurePublicURL(ctx, key)
		if err != nil {
			return &SubmitResult{Saved: false, Stage: "upload"}, &UploadError{Filename: ph.Filename, Err: err}
		}
		links = append(links, url)
	}

	// ---- Rakit baris kanonik ----
	photoBundle := "-"
	if len(links) > 0 {
		photoBundle = strings.Join(links, "\n")
	}

	socialField := ""
	if constants.CanFillSocialLink(in.Role) {
		socialField = strings.TrimSpace(in.SocialLink)
		if socialField == "" {
			socialField = "-"
		}
	}

	row := []string{
		now.Format(TimestampLayout),
		in.Author,
		in.Location,
		in.Description,
		photoBundle,
		socialField,
	}

	// ---- Provision + append ----
	ws, err := s.prov.Worksheet(ctx, in.Author)
	if err != nil {
		return &SubmitResult{Saved: false, Stage: "provision", PhotoLinks: links}, err
	}
	if err := s.prov.VerifyHeader(ctx, ws); err != nil {
		return &SubmitResult{Saved: false, Stage: "provision", PhotoLinks: links}, err
	}
	if err := s.store.AppendRow(ctx, ws, row); err != nil {
		return &SubmitResult{Saved: false, Stage: "append", PhotoLinks: links},
			fmt.Errorf("%w: %v", ErrAppendFailed, err)
	}

	// Cache loader basi setelah ada baris baru
	if s.results != nil {
		s.results.Invalidate()
	}

	// Jejak audit remote: gagal hanya dicatat, submit tetap sukses
	if s.trail != nil {
		if terr := s.trail.AppendInsert(ctx, in.Author, in.Role, in.Author, row); terr != nil {
			log.Printf("[SUBMIT] warn: audit trail gagal ditulis: %v", terr)
		}
	}

	log.Printf("[SUBMIT] ✅ laporan %s tersimpan (%d foto)", in.Author, len(links))
	return &SubmitResult{Saved: true, Stage: "done", Row: row, PhotoLinks: links}, nil
}

func (s *Submitter) validate(in SubmitInput) error {
	if strings.TrimSpace(in.Author) == "" {
		return &ValidationError{Field: "author", Reason: "nama staff kosong"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return &ValidationError{Field: "description", Reason: "deskripsi tidak boleh kosong"}
	}

	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(in.Date), s.loc)
	if err != nil {
		return &ValidationError{Field: "date", Reason: "format tanggal harus YYYY-MM-DD"}
	}
	today := s.now().In(s.loc)
	yesterday := today.AddDate(0, 0, -1)
	if !sameDay(d, today) && !sameDay(d, yesterday) {
		return &ValidationError{Field: "date", Reason: "tanggal hanya boleh hari ini atau kemarin"}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
