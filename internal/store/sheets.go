package store

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService builds an authenticated Sheets client from a
// service-account key file. Everything past this point only ever sees the
// authenticated service, never the raw credentials.
func NewSheetsService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials file %s: %v", ErrConnect, credentialsFile, err)
	}
	jwt, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account credentials: %v", ErrConnect, err)
	}
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: build sheets service: %v", ErrConnect, err)
	}
	return srv, nil
}

// SheetsStore is a RowStore over one worksheet of a Google spreadsheet.
type SheetsStore struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
	sheetID       int64
}

// NewSheetsStore resolves the worksheet by title. A spreadsheet that
// cannot be opened is a connection error; a missing worksheet is a schema
// error.
func NewSheetsStore(ctx context.Context, srv *sheets.Service, spreadsheetID, sheetName string) (*SheetsStore, error) {
	meta, err := srv.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: open spreadsheet %s: %v", ErrConnect, spreadsheetID, err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == sheetName {
			return &SheetsStore{
				srv:           srv,
				spreadsheetID: spreadsheetID,
				sheetName:     sheetName,
				sheetID:       sh.Properties.SheetId,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: worksheet %q not found in spreadsheet", ErrSchema, sheetName)
}

func (s *SheetsStore) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConnect, s.sheetName, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, v := range raw {
			row = append(row, fmt.Sprint(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *SheetsStore) Append(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, v := range row {
		values[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, s.sheetName, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", ErrConnect, s.sheetName, err)
	}
	return nil
}

func (s *SheetsStore) UpdateCell(ctx context.Context, rowNum, colNum int, value string) error {
	target := fmt.Sprintf("%s!%s%d", s.sheetName, columnLetter(colNum), rowNum)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, target, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrConnect, target, err)
	}
	return nil
}

func (s *SheetsStore) DeleteRow(ctx context.Context, rowNum int) error {
	return s.DeleteRows(ctx, []int{rowNum})
}

func (s *SheetsStore) DeleteRows(ctx context.Context, rowNums []int) error {
	if len(rowNums) == 0 {
		return nil
	}
	requests := make([]*sheets.Request, 0, len(rowNums))
	for _, rowNum := range descending(rowNums) {
		requests = append(requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    s.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowNum - 1),
					EndIndex:   int64(rowNum),
				},
			},
		})
	}
	_, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: delete rows from %s: %v", ErrConnect, s.sheetName, err)
	}
	return nil
}

// columnLetter converts a 1-based column number to A1 notation.
func columnLetter(col int) string {
	out := ""
	for col > 0 {
		col--
		out = string(rune('A'+col%26)) + out
		col /= 26
	}
	return out
}
