// internals/features/reports/service/loader.go
package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"laporanku_backend/internals/helpers/cache"
)

// Loader menyatukan laporan banyak staff jadi satu tabel untuk dashboard.
// Kegagalan per-staff ditelan dengan warning; kegagalan total dinaikkan.
type Loader struct {
	store   SheetStore
	prov    *Provisioner
	results *cache.TTLCache
	loc     *time.Location
}

func NewLoader(store SheetStore, prov *Provisioner, results *cache.TTLCache, loc *time.Location) *Loader {
	return &Loader{store: store, prov: prov, results: results, loc: loc}
}

// Load mengembalikan seluruh laporan staff yang diminta, urut timestamp
// menurun. Baris dengan timestamp tak terparse diurutkan paling akhir.
func (l *Loader) Load(ctx context.Context, staff []string) ([]map[string]string, error) {
	cacheKey := "reports:" + strings.Join(staff, "|")
	if v, ok := l.results.Get(cacheKey); ok {
		if recs, ok := v.([]map[string]string); ok {
			return recs, nil
		}
	}

	all := make([]map[string]string, 0)
	failures := 0
	var lastErr error

	for _, s := range staff {
		ws, err := l.prov.Worksheet(ctx, s)
		if err != nil {
			log.Printf("[LOADER] ⚠️ worksheet %q dilewati: %v", s, err)
			failures++
			lastErr = err
			continue
		}
		recs, err := l.store.ReadAllRecords(ctx, ws)
		if err != nil {
			log.Printf("[LOADER] ⚠️ baca %q gagal, dilewati: %v", s, err)
			failures++
			lastErr = err
			continue
		}
		all = append(all, recs...)
	}

	// Semua staff gagal dibaca = backend tidak tercapai, bukan data kosong
	if len(staff) > 0 && failures == len(staff) {
		return nil, fmt.Errorf("backend spreadsheet tidak tercapai: %w", lastErr)
	}

	l.sortByTimestampDesc(all)
	l.results.Set(cacheKey, all)
	return all, nil
}

// Invalidate membuang hasil yang dicache; dipanggil setelah submit sukses.
func (l *Loader) Invalidate() {
	l.results.Invalidate()
}

func (l *Loader) sortByTimestampDesc(records []map[string]string) {
	type keyed struct {
		rec map[string]string
		t   time.Time
		ok  bool
	}
	keys := make([]keyed, len(records))
	for i, rec := range records {
		ts := strings.TrimSpace(rec["Timestamp"])
		t, err := time.ParseInLocation(TimestampLayout, ts, l.loc)
		if err != nil {
			log.Printf("[LOADER] ⚠️ timestamp %q tidak terparse, baris diurutkan terakhir", ts)
			keys[i] = keyed{rec: rec}
			continue
		}
		keys[i] = keyed{rec: rec, t: t, ok: true}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		ki, kj := keys[i], keys[j]
		switch {
		case ki.ok && kj.ok:
			return ki.t.After(kj.t)
		case ki.ok:
			return true // parseable di atas yang tidak
		default:
			return false
		}
	})
	for i, k := range keys {
		records[i] = k.rec
	}
}
