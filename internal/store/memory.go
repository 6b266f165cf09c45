package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory RowStore used by tests and by the higher
// layers' own tests; it mirrors spreadsheet semantics exactly, including
// the row shift on delete.
type MemoryStore struct {
	mu   sync.Mutex
	rows [][]string
}

// NewMemoryStore copies rows (header first) into a fresh store.
func NewMemoryStore(rows [][]string) *MemoryStore {
	copied := make([][]string, 0, len(rows))
	for _, row := range rows {
		c := make([]string, len(row))
		copy(c, row)
		copied = append(copied, c)
	}
	return &MemoryStore{rows: copied}
}

func (m *MemoryStore) ReadAll(_ context.Context) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, 0, len(m.rows))
	for _, row := range m.rows {
		c := make([]string, len(row))
		copy(c, row)
		out = append(out, c)
	}
	return out, nil
}

func (m *MemoryStore) Append(_ context.Context, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := make([]string, len(row))
	copy(c, row)
	m.rows = append(m.rows, c)
	return nil
}

func (m *MemoryStore) UpdateCell(_ context.Context, rowNum, colNum int, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rowNum < 1 || rowNum > len(m.rows) {
		return fmt.Errorf("%w: row %d", ErrNotFound, rowNum)
	}
	row := m.rows[rowNum-1]
	for len(row) < colNum {
		row = append(row, "")
	}
	row[colNum-1] = value
	m.rows[rowNum-1] = row
	return nil
}

func (m *MemoryStore) DeleteRow(ctx context.Context, rowNum int) error {
	return m.DeleteRows(ctx, []int{rowNum})
}

func (m *MemoryStore) DeleteRows(_ context.Context, rowNums []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rowNum := range descending(rowNums) {
		if rowNum < 1 || rowNum > len(m.rows) {
			return fmt.Errorf("%w: row %d", ErrNotFound, rowNum)
		}
		m.rows = append(m.rows[:rowNum-1], m.rows[rowNum:]...)
	}
	return nil
}
