// internals/features/reports/service/provisioner.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"laporanku_backend/internals/helpers/cache"
)

// ErrProvisioningFailed: worksheet tidak bisa disiapkan; submit harus batal.
var ErrProvisioningFailed = errors.New("provisioning worksheet gagal")

// Provisioner menjamin worksheet per-staff ada dengan header kanonik
// sebelum append apa pun. Handle dimemo ±60 dtk lewat TTL cache.
//
// Kebijakan drift: header ditulis ulang ke skema kanonik, baris data lama
// TIDAK digeser. Asumsinya data historis sudah memakai urutan kolom
// kanonik; migrasi kolom bukan urusan provisioner.
type Provisioner struct {
	store SheetStore
	memo  *cache.TTLCache
}

func NewProvisioner(store SheetStore, memo *cache.TTLCache) *Provisioner {
	return &Provisioner{store: store, memo: memo}
}

// Worksheet mengembalikan handle worksheet staff dengan header kanonik.
func (p *Provisioner) Worksheet(ctx context.Context, staff string) (*Worksheet, error) {
	memoKey := "ws:" + staff
	if v, ok := p.memo.Get(memoKey); ok {
		if ws, ok := v.(*Worksheet); ok {
			return ws, nil
		}
	}

	ws, err := p.store.Worksheet(ctx, staff)
	switch {
	case err == nil:
		// Rekonsiliasi header bila drift
		header, rerr := p.store.ReadHeader(ctx, ws)
		if rerr != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, rerr)
		}
		if !HeadersEqual(header, ReportHeaders) {
			log.Printf("[PROVISIONER] ⚠️ header %q drift %v, ditulis ulang ke skema kanonik", staff, header)
			if werr := p.store.WriteHeader(ctx, ws, ReportHeaders); werr != nil {
				return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, werr)
			}
		}

	case errors.Is(err, ErrWorksheetNotFound):
		log.Printf("[PROVISIONER] worksheet %q belum ada, dibuat baru", staff)
		ws, err = p.store.CreateWorksheet(ctx, staff, 1, int64(len(ReportHeaders)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
		}
		if werr := p.store.WriteHeader(ctx, ws, ReportHeaders); werr != nil {
			return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, werr)
		}
		// kosmetik; gagal bukan alasan membatalkan submit
		if ferr := p.store.FormatHeader(ctx, ws, int64(len(ReportHeaders))); ferr != nil {
			log.Printf("[PROVISIONER] warn: format header %q gagal: %v", staff, ferr)
		}

	default:
		return nil, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}

	p.memo.Set(memoKey, ws)
	return ws, nil
}

// VerifyHeader membaca ulang header dan menolak bila masih beda dengan
// skema kanonik — lebih baik menolak append daripada merusak kolom.
func (p *Provisioner) VerifyHeader(ctx context.Context, ws *Worksheet) error {
	header, err := p.store.ReadHeader(ctx, ws)
	if err != nil {
		return fmt.Errorf("%w: verifikasi header: %v", ErrProvisioningFailed, err)
	}
	if !HeadersEqual(header, ReportHeaders) {
		return fmt.Errorf("%w: header %q tidak sesuai skema kanonik: %v", ErrProvisioningFailed, ws.Title, header)
	}
	return nil
}
