package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements the same row contract as the spreadsheet backend
// against a local database, for offline work and for tests. Each logical
// worksheet is a named set of positioned rows; position 1 is the header.
type SQLiteStore struct {
	db    *sql.DB
	sheet string
}

func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite %s: %v", ErrConnect, path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sheet_rows (
			sheet TEXT NOT NULL,
			pos   INTEGER NOT NULL,
			cells TEXT NOT NULL,
			PRIMARY KEY (sheet, pos)
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", ErrConnect, err)
	}
	return db, nil
}

// NewSQLiteStore returns the store for one logical worksheet, seeding the
// header row when the sheet is empty.
func NewSQLiteStore(ctx context.Context, db *sql.DB, sheet string, header []string) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("store: nil db")
	}
	s := &SQLiteStore{db: db, sheet: sheet}
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_rows WHERE sheet = ?`, sheet).Scan(&count); err != nil {
		return nil, fmt.Errorf("%w: inspect sheet %s: %v", ErrConnect, sheet, err)
	}
	if count == 0 && len(header) > 0 {
		if err := s.insertAt(ctx, 1, header); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *SQLiteStore) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY pos ASC`, s.sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConnect, s.sheet, err)
	}
	defer rows.Close()

	out := make([][]string, 0)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("%w: decode row in %s: %v", ErrSchema, s.sheet, err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Append(ctx context.Context, row []string) error {
	var max sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(pos) FROM sheet_rows WHERE sheet = ?`, s.sheet).Scan(&max); err != nil {
		return fmt.Errorf("%w: append to %s: %v", ErrConnect, s.sheet, err)
	}
	next := int(max.Int64) + 1
	if next < 1 {
		next = 1
	}
	return s.insertAt(ctx, next, row)
}

func (s *SQLiteStore) UpdateCell(ctx context.Context, rowNum, colNum int, value string) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT cells FROM sheet_rows WHERE sheet = ? AND pos = ?`, s.sheet, rowNum).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: row %d in %s", ErrNotFound, rowNum, s.sheet)
	}
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrConnect, s.sheet, err)
	}
	var cells []string
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		return fmt.Errorf("%w: decode row in %s: %v", ErrSchema, s.sheet, err)
	}
	for len(cells) < colNum {
		cells = append(cells, "")
	}
	cells[colNum-1] = value
	encoded, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE sheet_rows SET cells = ? WHERE sheet = ? AND pos = ?`, string(encoded), s.sheet, rowNum)
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrConnect, s.sheet, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteRow(ctx context.Context, rowNum int) error {
	return s.DeleteRows(ctx, []int{rowNum})
}

func (s *SQLiteStore) DeleteRows(ctx context.Context, rowNums []int) error {
	if len(rowNums) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: delete rows from %s: %v", ErrConnect, s.sheet, err)
	}
	for _, rowNum := range descending(rowNums) {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM sheet_rows WHERE sheet = ? AND pos = ?`, s.sheet, rowNum)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: delete row %d from %s: %v", ErrConnect, rowNum, s.sheet, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			_ = tx.Rollback()
			return fmt.Errorf("%w: row %d in %s", ErrNotFound, rowNum, s.sheet)
		}
		// Shift every later row up, matching spreadsheet delete semantics.
		if _, err := tx.ExecContext(ctx,
			`UPDATE sheet_rows SET pos = pos - 1 WHERE sheet = ? AND pos > ?`, s.sheet, rowNum); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: renumber %s: %v", ErrConnect, s.sheet, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) insertAt(ctx context.Context, pos int, row []string) error {
	cells := row
	if cells == nil {
		cells = []string{}
	}
	encoded, err := json.Marshal(cells)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, pos, cells) VALUES (?, ?, ?)`, s.sheet, pos, string(encoded))
	if err != nil {
		return fmt.Errorf("%w: insert into %s: %v", ErrConnect, s.sheet, err)
	}
	return nil
}
