package helper

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// AuthorSlug membentuk nama folder per-staff di blob store:
// hanya alfanumerik, spasi, `_`, `-` yang dipertahankan; run spasi jadi satu `_`.
func AuthorSlug(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '-', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	parts := strings.Fields(b.String())
	slug := strings.Join(parts, "_")
	if slug == "" {
		return "unknown"
	}
	return slug
}

// SanitizeFilename mempertahankan alfanumerik dan `. _ -` saja.
func SanitizeFilename(filename string) string {
	filename = strings.TrimSpace(filepath.Base(filename))
	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	safe := b.String()
	if safe == "" || safe == strings.Repeat(".", len(safe)) {
		return "file"
	}
	return safe
}

// BlobObjectKey membangun key objek:
// <root>/<author_slug>/<YYYYMMDD_HHMMSS>_<sanitized_filename>
func BlobObjectKey(root, author, filename string, t time.Time) string {
	root = strings.Trim(root, "/")
	key := fmt.Sprintf("%s/%s_%s", AuthorSlug(author), t.Format("20060102_150405"), SanitizeFilename(filename))
	if root == "" {
		return key
	}
	return root + "/" + key
}
