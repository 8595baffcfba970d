// internals/features/reports/service/google_sheets.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetStore mengimplementasikan SheetStore di atas Google Sheets.
// Spreadsheet dibuka BY NAME lewat Drive API (file pertama yang cocok),
// lalu semua operasi memakai spreadsheetId hasil resolve.
type GoogleSheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewGoogleSheetStore(ctx context.Context, credentialsJSON []byte, spreadsheetName string) (*GoogleSheetStore, error) {
	sheetsSvc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: init sheets client: %v", ErrConnectionFailed, err)
	}

	driveSvc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveMetadataReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: init drive client: %v", ErrConnectionFailed, err)
	}

	id, err := resolveSpreadsheetID(ctx, driveSvc, spreadsheetName)
	if err != nil {
		return nil, err
	}
	log.Printf("[SHEETS] spreadsheet %q → id %s", spreadsheetName, id)

	return &GoogleSheetStore{svc: sheetsSvc, spreadsheetID: id}, nil
}

func resolveSpreadsheetID(ctx context.Context, d *drive.Service, name string) (string, error) {
	q := fmt.Sprintf(
		"name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`),
	)
	res, err := d.Files.List().Q(q).PageSize(1).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: cari spreadsheet %q: %v", ErrConnectionFailed, name, err)
	}
	if len(res.Files) == 0 {
		return "", fmt.Errorf("%w: spreadsheet %q tidak ditemukan", ErrConnectionFailed, name)
	}
	return res.Files[0].Id, nil
}

func (g *GoogleSheetStore) Worksheet(ctx context.Context, title string) (*Worksheet, error) {
	meta, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: daftar worksheet: %v", ErrConnectionFailed, err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return &Worksheet{Title: title, SheetID: sh.Properties.SheetId}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, title)
}

func (g *GoogleSheetStore) CreateWorksheet(ctx context.Context, title string, rows, cols int64) (*Worksheet, error) {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: title,
					GridProperties: &sheets.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}
	resp, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("buat worksheet %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return nil, fmt.Errorf("buat worksheet %q: reply kosong", title)
	}
	return &Worksheet{Title: title, SheetID: resp.Replies[0].AddSheet.Properties.SheetId}, nil
}

func (g *GoogleSheetStore) ReadHeader(ctx context.Context, ws *Worksheet) ([]string, error) {
	vr, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rangeRef(ws.Title, "1:1")).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("baca header %q: %w", ws.Title, err)
	}
	if len(vr.Values) == 0 {
		return []string{}, nil
	}
	return cellsToStrings(vr.Values[0]), nil
}

func (g *GoogleSheetStore) WriteHeader(ctx context.Context, ws *Worksheet, headers []string) error {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rangeRef(ws.Title, "A1"), vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("tulis header %q: %w", ws.Title, err)
	}
	return nil
}

func (g *GoogleSheetStore) AppendRow(ctx context.Context, ws *Worksheet, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.svc.Spreadsheets.Values.Append(g.spreadsheetID, rangeRef(ws.Title, "A1"), vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append ke %q: %w", ws.Title, err)
	}
	return nil
}

func (g *GoogleSheetStore) ReadAllRecords(ctx context.Context, ws *Worksheet) ([]map[string]string, error) {
	vr, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, quoteTitle(ws.Title)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("baca records %q: %w", ws.Title, err)
	}
	if len(vr.Values) == 0 {
		return []map[string]string{}, nil
	}

	headers := cellsToStrings(vr.Values[0])
	records := make([]map[string]string, 0, len(vr.Values)-1)
	for _, raw := range vr.Values[1:] {
		cells := cellsToStrings(raw)
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				rec[h] = cells[i]
			} else {
				rec[h] = "" // sel hilang → string kosong
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (g *GoogleSheetStore) FormatHeader(ctx context.Context, ws *Worksheet, cols int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          ws.SheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   cols,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat.textFormat.bold",
			},
		}},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("format header %q: %w", ws.Title, err)
	}
	return nil
}

/* ======== range helpers ======== */

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func rangeRef(title, ref string) string {
	return quoteTitle(title) + "!" + ref
}

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		out[i] = fmt.Sprint(c)
	}
	return out
}
