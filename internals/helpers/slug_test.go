package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthorSlug(t *testing.T) {
	assert.Equal(t, "Deal_Maker", AuthorSlug("Deal Maker"))
	assert.Equal(t, "Social_Media_Specialist", AuthorSlug("Social  Media Specialist"))
	assert.Equal(t, "Budi-S_01", AuthorSlug("  Budi-S_01 !! "))
	assert.Equal(t, "unknown", AuthorSlug("###"))
	assert.Equal(t, "unknown", AuthorSlug(""))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a.jpg", SanitizeFilename("a.jpg"))
	assert.Equal(t, "fotokantor.PNG", SanitizeFilename("foto kantor.PNG"))
	assert.Equal(t, "laporan_1-2.pdf", SanitizeFilename("laporan_1-2.pdf"))
	assert.Equal(t, "file", SanitizeFilename("???"))
	// path traversal dibuang, hanya basename yang dipakai
	assert.Equal(t, "rahasia.txt", SanitizeFilename("../../rahasia.txt"))
}

func TestBlobObjectKey(t *testing.T) {
	ts := time.Date(2025, 3, 7, 14, 5, 9, 0, time.UTC)
	key := BlobObjectKey("laporan", "Deal Maker", "a b.jpg", ts)
	assert.Equal(t, "laporan/Deal_Maker/20250307_140509_ab.jpg", key)

	// root kosong tetap valid
	key = BlobObjectKey("", "Deal Maker", "a.jpg", ts)
	assert.Equal(t, "Deal_Maker/20250307_140509_a.jpg", key)
}
