package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laporanku_backend/internals/helpers/cache"
)

func newProvisionerForTest(store SheetStore) *Provisioner {
	return NewProvisioner(store, cache.New(time.Minute))
}

func TestProvisionerCreatesMissingWorksheet(t *testing.T) {
	store := newFakeSheetStore()
	p := newProvisionerForTest(store)

	ws, err := p.Worksheet(context.Background(), "Deal Maker")
	require.NoError(t, err)
	assert.Equal(t, "Deal Maker", ws.Title)

	header, err := store.ReadHeader(context.Background(), ws)
	require.NoError(t, err)
	assert.Equal(t, ReportHeaders, header)
	assert.Equal(t, 1, store.countCalls("create:"))
	assert.Equal(t, 1, store.countCalls("format:"))
}

func TestProvisionerReconcilesDriftedHeader(t *testing.T) {
	store := newFakeSheetStore()
	store.addSheet("Budi",
		[]string{"A", "B", "C", "D", "E", "F"},
		[]string{"01-01-2025 08:00:00", "Budi", "Kantor", "Rapat", "-", ""},
	)
	p := newProvisionerForTest(store)

	ws, err := p.Worksheet(context.Background(), "Budi")
	require.NoError(t, err)

	header, err := store.ReadHeader(context.Background(), ws)
	require.NoError(t, err)
	assert.Equal(t, ReportHeaders, header)

	// baris data lama tidak disentuh
	recs, err := store.ReadAllRecords(context.Background(), ws)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Budi", recs[0]["Nama"])
}

func TestProvisionerIdempotent(t *testing.T) {
	store := newFakeSheetStore()
	store.addSheet("Budi", append([]string(nil), ReportHeaders...))
	p := newProvisionerForTest(store)

	ws1, err := p.Worksheet(context.Background(), "Budi")
	require.NoError(t, err)
	ws2, err := p.Worksheet(context.Background(), "Budi")
	require.NoError(t, err)

	assert.Same(t, ws1, ws2) // memo TTL

	// header tetap kanonik, tidak ada tulis ulang
	header, _ := store.ReadHeader(context.Background(), ws1)
	assert.Equal(t, ReportHeaders, header)
	assert.Equal(t, 0, store.countCalls("writeheader:"))
	assert.Equal(t, 1, store.countCalls("get:")) // panggilan kedua dari memo
}

func TestProvisionerFormatFailureSwallowed(t *testing.T) {
	store := newFakeSheetStore()
	store.errOn["format:Budi"] = fmt.Errorf("quota exceeded")
	p := newProvisionerForTest(store)

	_, err := p.Worksheet(context.Background(), "Budi")
	assert.NoError(t, err) // kosmetik: gagal format tidak menggagalkan provisioning
}

func TestProvisionerPropagatesBackendError(t *testing.T) {
	store := newFakeSheetStore()
	store.errOn["get:Budi"] = fmt.Errorf("boom")
	p := newProvisionerForTest(store)

	_, err := p.Worksheet(context.Background(), "Budi")
	assert.True(t, errors.Is(err, ErrProvisioningFailed))
}

func TestVerifyHeaderRefusesMismatch(t *testing.T) {
	store := newFakeSheetStore()
	store.addSheet("Budi", append([]string(nil), ReportHeaders...))
	p := newProvisionerForTest(store)

	ws, err := p.Worksheet(context.Background(), "Budi")
	require.NoError(t, err)
	require.NoError(t, p.VerifyHeader(context.Background(), ws))

	// header berubah di belakang (drift konkuren) → append harus ditolak
	store.sheets["Budi"][0] = []string{"X", "Y", "Z", "D", "E", "F"}
	err = p.VerifyHeader(context.Background(), ws)
	assert.True(t, errors.Is(err, ErrProvisioningFailed))
}
