package service

import "strings"

// FieldChange merekam satu kolom yang berubah nilainya.
type FieldChange struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// normalizeCell menyamakan representasi sel kosong.
// Nilai placeholder ala spreadsheet ("nan", "NaN") dianggap kosong.
func normalizeCell(v string) string {
	s := strings.TrimSpace(v)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

// DiffFields membandingkan dua snapshot kolom→nilai dan mengembalikan
// hanya kolom yang benar-benar berubah. Kunci diambil dari gabungan
// kedua snapshot, kolom yang hilang dibaca sebagai string kosong.
func DiffFields(before, after map[string]string) map[string]FieldChange {
	keys := map[string]struct{}{}
	for k := range before {
		keys[k] = struct{}{}
	}
	for k := range after {
		keys[k] = struct{}{}
	}

	diff := map[string]FieldChange{}
	for k := range keys {
		b := normalizeCell(before[k])
		a := normalizeCell(after[k])
		if b != a {
			diff[k] = FieldChange{Before: b, After: a}
		}
	}
	return diff
}

// DiffTables membandingkan dua tampilan tabel yang barisnya sudah
// sejajar (jumlah baris sama). Hasilnya diff per baris, nil untuk
// baris yang identik. Kalau jumlah baris berbeda, perbandingan per
// baris tidak bermakna dan fungsi mengembalikan nil.
func DiffTables(before, after []map[string]string) []map[string]FieldChange {
	if len(before) != len(after) {
		return nil
	}
	out := make([]map[string]FieldChange, len(before))
	for i := range before {
		d := DiffFields(before[i], after[i])
		if len(d) > 0 {
			out[i] = d
		}
	}
	return out
}
