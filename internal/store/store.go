// Package store is the boundary to the shared tabular task store. Rows
// are addressed by 1-based physical row number with the header at row 1,
// the way the spreadsheet backend addresses them.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrConnect means the backing store could not be opened at all
	// (auth or network). Nothing can be rendered; the caller shows a
	// blocking error.
	ErrConnect = errors.New("store: cannot open backing store")
	// ErrSchema means the expected worksheet or columns are absent.
	ErrSchema = errors.New("store: schema mismatch")
	// ErrNotFound means a task id no longer resolves to a row.
	ErrNotFound = errors.New("store: not found")
)

// RowStore is one worksheet (or its local equivalent). ReadAll includes
// the header row; data starts at physical row 2. There is no locking or
// transaction guarantee: concurrent writers can shift row numbers under
// each other.
type RowStore interface {
	ReadAll(ctx context.Context) ([][]string, error)
	Append(ctx context.Context, row []string) error
	UpdateCell(ctx context.Context, rowNum, colNum int, value string) error
	DeleteRow(ctx context.Context, rowNum int) error
	// DeleteRows removes a batch of rows. Implementations must delete in
	// descending row order: deleting a row shifts every later row up by
	// one, so ascending deletion would invalidate the remaining numbers.
	DeleteRows(ctx context.Context, rowNums []int) error
}

// descending returns a sorted copy, highest row number first.
func descending(rowNums []int) []int {
	out := make([]int, len(rowNums))
	copy(out, rowNums)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Layout maps task fields to 1-based column numbers. Zero means the
// column is absent; snapshots of this sheet have moved columns around
// before, so the mapping is configuration, not a hardcoded offset.
type Layout struct {
	Project     int `toml:"project"`
	Category    int `toml:"category"`
	Title       int `toml:"title"`
	Assignee    int `toml:"assignee"`
	Done        int `toml:"done"`
	Due         int `toml:"due"`
	CompletedAt int `toml:"completed_at"`
}

// DefaultLayout matches the canonical header:
// song, task, assignee, done, due, completed_at.
func DefaultLayout() Layout {
	return Layout{
		Category:    1,
		Title:       2,
		Assignee:    3,
		Done:        4,
		Due:         5,
		CompletedAt: 6,
	}
}

// columns in a fixed order so validation errors are deterministic.
func (l Layout) columns() []struct {
	name string
	col  int
} {
	return []struct {
		name string
		col  int
	}{
		{"project", l.Project},
		{"category", l.Category},
		{"title", l.Title},
		{"assignee", l.Assignee},
		{"done", l.Done},
		{"due", l.Due},
		{"completed_at", l.CompletedAt},
	}
}

func (l Layout) Validate() error {
	required := map[string]bool{"category": true, "title": true, "done": true}
	seen := make(map[int]string)
	for _, c := range l.columns() {
		if c.col <= 0 {
			if required[c.name] {
				return fmt.Errorf("store: layout column %q is required", c.name)
			}
			continue
		}
		if other, dup := seen[c.col]; dup {
			return fmt.Errorf("store: layout columns %q and %q share position %d", other, c.name, c.col)
		}
		seen[c.col] = c.name
	}
	return nil
}

// Width is the highest mapped column number.
func (l Layout) Width() int {
	max := 0
	for _, col := range []int{l.Project, l.Category, l.Title, l.Assignee, l.Done, l.Due, l.CompletedAt} {
		if col > max {
			max = col
		}
	}
	return max
}

// cell reads a 1-based column from a row, tolerating short rows.
func cell(row []string, col int) string {
	if col <= 0 || col > len(row) {
		return ""
	}
	return row[col-1]
}
