package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cowritehq/sprinter/internal/dateparse"
	"github.com/cowritehq/sprinter/internal/model"
)

// CompletedAtLayout is the timestamp format written to the completed_at
// column.
const CompletedAtLayout = "2006-01-02 15:04:05"

// TaskStore maps sheet rows to tasks through a column layout. Tasks get a
// synthetic id the first time a row is seen; the id→row mapping is
// re-resolved from a fresh read before every write, which narrows (but
// does not close) the window in which a concurrent delete can shift rows.
type TaskStore struct {
	rows   RowStore
	layout Layout
	loc    *time.Location
	now    func() time.Time
	newID  func() string

	mu   sync.Mutex
	refs []taskRef
}

type taskRef struct {
	id          string
	rowNum      int
	fingerprint string
}

func NewTaskStore(rows RowStore, layout Layout, loc *time.Location) (*TaskStore, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.Local
	}
	return &TaskStore{
		rows:   rows,
		layout: layout,
		loc:    loc,
		now:    time.Now,
		newID:  uuid.NewString,
	}, nil
}

// List reads every task from the store. Unparseable due dates keep their
// raw text and a nil Due; that is display-only degradation, not an error.
func (s *TaskStore) List(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked(ctx)
}

func (s *TaskStore) listLocked(ctx context.Context) ([]model.Task, error) {
	all, err := s.rows.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: task sheet has no header row", ErrSchema)
	}
	if err := s.verifyHeader(all[0]); err != nil {
		return nil, err
	}

	data := all[1:]
	refs := make([]taskRef, len(data))
	prints := make([]string, len(data))
	used := make(map[int]bool, len(s.refs))

	// First pass: a row still at its previous position with identical
	// content keeps its id.
	for i, row := range data {
		prints[i] = s.fingerprint(row)
		rowNum := i + 2
		for j, old := range s.refs {
			if used[j] {
				continue
			}
			if old.rowNum == rowNum && old.fingerprint == prints[i] {
				refs[i] = taskRef{id: old.id, rowNum: rowNum, fingerprint: prints[i]}
				used[j] = true
				break
			}
		}
	}
	// Second pass: rows that shifted keep their id by content match;
	// anything else is new.
	for i := range data {
		if refs[i].id != "" {
			continue
		}
		rowNum := i + 2
		matched := false
		for j, old := range s.refs {
			if used[j] || old.fingerprint != prints[i] {
				continue
			}
			refs[i] = taskRef{id: old.id, rowNum: rowNum, fingerprint: prints[i]}
			used[j] = true
			matched = true
			break
		}
		if !matched {
			refs[i] = taskRef{id: s.newID(), rowNum: rowNum, fingerprint: prints[i]}
		}
	}
	s.refs = refs

	tasks := make([]model.Task, 0, len(data))
	for i, row := range data {
		tasks = append(tasks, s.taskFromRow(refs[i].id, row))
	}
	return tasks, nil
}

func (s *TaskStore) taskFromRow(id string, row []string) model.Task {
	t := model.Task{
		ID:       id,
		Project:  strings.TrimSpace(cell(row, s.layout.Project)),
		Category: strings.TrimSpace(cell(row, s.layout.Category)),
		Title:    strings.TrimSpace(cell(row, s.layout.Title)),
		Assignee: strings.TrimSpace(cell(row, s.layout.Assignee)),
		Done:     model.ParseDone(cell(row, s.layout.Done)),
		DueRaw:   strings.TrimSpace(cell(row, s.layout.Due)),
	}
	if t.DueRaw != "" {
		if due, err := dateparse.Parse(t.DueRaw, s.now().In(s.loc).Year(), s.loc); err == nil {
			t.Due = &due
		}
	}
	if raw := strings.TrimSpace(cell(row, s.layout.CompletedAt)); raw != "" {
		if at, err := time.ParseInLocation(CompletedAtLayout, raw, s.loc); err == nil {
			t.CompletedAt = &at
		}
	}
	return t
}

// Add appends a task row. New tasks always land at the end and start not
// done.
func (s *TaskStore) Add(ctx context.Context, category, title, assignee, due string) error {
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("store: add: category is required")
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("store: add: title is required")
	}
	row := make([]string, s.layout.Width())
	set := func(col int, v string) {
		if col > 0 {
			row[col-1] = v
		}
	}
	set(s.layout.Category, strings.TrimSpace(category))
	set(s.layout.Title, strings.TrimSpace(title))
	set(s.layout.Assignee, strings.TrimSpace(assignee))
	set(s.layout.Done, model.DoneFalse)
	set(s.layout.Due, strings.TrimSpace(due))
	return s.rows.Append(ctx, row)
}

// Toggle flips a task's done flag and stamps or clears completed_at in
// the same pass, keeping the two application-enforced fields paired.
func (s *TaskStore) Toggle(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.listLocked(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
	}
	task := tasks[i]
	rowNum := s.refs[i].rowNum

	task.Done = !task.Done
	if err := s.rows.UpdateCell(ctx, rowNum, s.layout.Done, model.FormatDone(task.Done)); err != nil {
		return model.Task{}, err
	}
	if s.layout.CompletedAt > 0 {
		stamp := ""
		if task.Done {
			at := s.now().In(s.loc)
			stamp = at.Format(CompletedAtLayout)
			task.CompletedAt = &at
		} else {
			task.CompletedAt = nil
		}
		if err := s.rows.UpdateCell(ctx, rowNum, s.layout.CompletedAt, stamp); err != nil {
			return model.Task{}, err
		}
	}
	return task, nil
}

// Delete removes the given tasks in one batch, resolving ids to rows
// against a fresh read and deleting in descending row order.
func (s *TaskStore) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.listLocked(ctx); err != nil {
		return err
	}
	rowNums := make([]int, 0, len(ids))
	for _, id := range ids {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: task %s", ErrNotFound, id)
		}
		rowNums = append(rowNums, s.refs[i].rowNum)
	}
	return s.rows.DeleteRows(ctx, rowNums)
}

func (s *TaskStore) indexOf(id string) int {
	for i, ref := range s.refs {
		if ref.id == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) verifyHeader(header []string) error {
	missing := make([]string, 0, 3)
	for _, col := range []struct {
		name string
		num  int
	}{
		{"category/song", s.layout.Category},
		{"title", s.layout.Title},
		{"done", s.layout.Done},
	} {
		if strings.TrimSpace(cell(header, col.num)) == "" {
			missing = append(missing, fmt.Sprintf("%s at column %d", col.name, col.num))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: task sheet header is missing %s; check the [columns] configuration",
			ErrSchema, strings.Join(missing, ", "))
	}
	return nil
}

// fingerprint covers only the fields a toggle never touches, so flipping
// done (here or in another client) does not orphan a task's id.
func (s *TaskStore) fingerprint(row []string) string {
	return strings.Join([]string{
		cell(row, s.layout.Project),
		cell(row, s.layout.Category),
		cell(row, s.layout.Title),
		cell(row, s.layout.Assignee),
		cell(row, s.layout.Due),
	}, "\x1f")
}
