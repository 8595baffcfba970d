package service

import (
	"context"
	"fmt"
	"strings"
)

// fakeSheetStore: spreadsheet in-memory dengan injeksi error per operasi,
// key "op:title" (mis. "read:Budi").
type fakeSheetStore struct {
	sheets map[string][][]string // title → rows, baris 0 = header
	ids    map[string]int64
	nextID int64
	errOn  map[string]error
	calls  []string
}

func newFakeSheetStore() *fakeSheetStore {
	return &fakeSheetStore{
		sheets: map[string][][]string{},
		ids:    map[string]int64{},
		errOn:  map[string]error{},
	}
}

func (f *fakeSheetStore) addSheet(title string, rows ...[]string) {
	f.nextID++
	f.ids[title] = f.nextID
	f.sheets[title] = rows
}

func (f *fakeSheetStore) log(op, title string) error {
	f.calls = append(f.calls, op+":"+title)
	return f.errOn[op+":"+title]
}

func (f *fakeSheetStore) countCalls(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeSheetStore) Worksheet(ctx context.Context, title string) (*Worksheet, error) {
	if err := f.log("get", title); err != nil {
		return nil, err
	}
	if _, ok := f.sheets[title]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, title)
	}
	return &Worksheet{Title: title, SheetID: f.ids[title]}, nil
}

func (f *fakeSheetStore) CreateWorksheet(ctx context.Context, title string, rows, cols int64) (*Worksheet, error) {
	if err := f.log("create", title); err != nil {
		return nil, err
	}
	f.addSheet(title)
	return &Worksheet{Title: title, SheetID: f.ids[title]}, nil
}

func (f *fakeSheetStore) ReadHeader(ctx context.Context, ws *Worksheet) ([]string, error) {
	if err := f.log("readheader", ws.Title); err != nil {
		return nil, err
	}
	rows := f.sheets[ws.Title]
	if len(rows) == 0 {
		return []string{}, nil
	}
	return append([]string(nil), rows[0]...), nil
}

func (f *fakeSheetStore) WriteHeader(ctx context.Context, ws *Worksheet, headers []string) error {
	if err := f.log("writeheader", ws.Title); err != nil {
		return err
	}
	rows := f.sheets[ws.Title]
	if len(rows) == 0 {
		rows = [][]string{nil}
	}
	rows[0] = append([]string(nil), headers...)
	f.sheets[ws.Title] = rows
	return nil
}

func (f *fakeSheetStore) AppendRow(ctx context.Context, ws *Worksheet, values []string) error {
	if err := f.log("append", ws.Title); err != nil {
		return err
	}
	f.sheets[ws.Title] = append(f.sheets[ws.Title], append([]string(nil), values...))
	return nil
}

func (f *fakeSheetStore) ReadAllRecords(ctx context.Context, ws *Worksheet) ([]map[string]string, error) {
	if err := f.log("read", ws.Title); err != nil {
		return nil, err
	}
	rows := f.sheets[ws.Title]
	if len(rows) == 0 {
		return []map[string]string{}, nil
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := map[string]string{}
		for i, h := range header {
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

func (f *fakeSheetStore) FormatHeader(ctx context.Context, ws *Worksheet, cols int64) error {
	return f.log("format", ws.Title)
}

// fakeBlobStore merekam upload berurutan; gagal bila key memuat substring.
type fakeBlobStore struct {
	uploads      []string
	failUploadOn string
	failURLOn    string
}

func (f *fakeBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if f.failUploadOn != "" && strings.Contains(key, f.failUploadOn) {
		return fmt.Errorf("simulated upload failure")
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeBlobStore) EnsurePublicURL(ctx context.Context, key string) (string, error) {
	if f.failURLOn != "" && strings.Contains(key, f.failURLOn) {
		return "", fmt.Errorf("simulated link failure")
	}
	return "https://blob.test/" + key + "?raw=1", nil
}

// fakeTrail menghitung baris audit remote.
type fakeTrail struct {
	rows [][]string
	err  error
}

func (f *fakeTrail) AppendInsert(ctx context.Context, actor, role, targetSheet string, row []string) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}
