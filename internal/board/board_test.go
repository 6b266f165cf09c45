package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cowritehq/sprinter/internal/notify"
	"github.com/cowritehq/sprinter/internal/store"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, text string) notify.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, text)
	return notify.Result{OK: true}
}

func newTestBoard(t *testing.T, taskRows [][]string) (*Board, *recordingNotifier) {
	t.Helper()
	tasks := store.NewMemoryStore(taskRows)
	ts, err := store.NewTaskStore(tasks, store.DefaultLayout(), time.UTC)
	if err != nil {
		t.Fatalf("NewTaskStore failed: %v", err)
	}
	projects := store.NewMemoryStore([][]string{
		{"project", "deadline"},
		{"Winter Single", "2026-01-14 23:59"},
		{"Spring EP", "2026-03-31"},
	})
	aliases := store.NewMemoryStore([][]string{
		{"formal", "short"},
		{"GO! GO! RUNNER!", "Runner"},
	})
	rec := &recordingNotifier{}
	b := New(ts, store.NewConfigStore(projects, aliases), rec, nil, time.UTC)
	b.now = func() time.Time { return time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC) }
	return b, rec
}

var header = []string{"song", "task", "assignee", "done", "due", "completed_at"}

func TestBoardLoad(t *testing.T) {
	b, _ := newTestBoard(t, [][]string{
		header,
		{"GO! GO! RUNNER!", "Submit arrangement", "Umezawa", "FALSE", "2026-01-13", ""},
		{"GO! GO! RUNNER!", "Fix BPM", "Miyoshi", "TRUE", "", "2026-01-09 18:00:00"},
		{"Pose & Gimmick", "Record guitar", "Miyoshi", "FALSE", "", ""},
	})
	st, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Summary.Total != 3 || st.Summary.Done != 1 || st.Summary.RatePercent != 33 {
		t.Fatalf("unexpected summary: %+v", st.Summary)
	}
	if len(st.Categories) != 2 || st.Categories[0].Category != "GO! GO! RUNNER!" {
		t.Fatalf("unexpected categories: %+v", st.Categories)
	}
	if !st.HasTarget || st.Target.Name != "Winter Single" {
		t.Fatalf("unexpected target: %+v hasTarget=%v", st.Target, st.HasTarget)
	}
	if st.Aliases.Display("GO! GO! RUNNER!") != "Runner" {
		t.Fatalf("aliases not loaded: %+v", st.Aliases)
	}
}

func TestBoardAddTaskNotifies(t *testing.T) {
	b, rec := newTestBoard(t, [][]string{header})
	st, err := b.AddTask(context.Background(), "Pose & Gimmick", "Re-record chorus", "Miyoshi", "")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if st.Summary.Total != 1 || st.Summary.Done != 0 {
		t.Fatalf("unexpected summary after add: %+v", st.Summary)
	}
	if len(rec.messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.messages))
	}
}

func TestBoardToggleTaskNotifiesBothWays(t *testing.T) {
	b, rec := newTestBoard(t, [][]string{
		header,
		{"Runner", "Fix BPM", "Miyoshi", "FALSE", "", ""},
	})
	ctx := context.Background()
	st, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	id := st.Tasks[0].ID

	st, err = b.ToggleTask(ctx, id)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if !st.Tasks[0].Done || st.Tasks[0].CompletedAt == nil {
		t.Fatalf("expected done task with completed_at, got %+v", st.Tasks[0])
	}

	st, err = b.ToggleTask(ctx, id)
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if st.Tasks[0].Done || st.Tasks[0].CompletedAt != nil {
		t.Fatalf("expected reopened task, got %+v", st.Tasks[0])
	}

	if len(rec.messages) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(rec.messages))
	}
}

func TestBoardDeleteDoneBatches(t *testing.T) {
	b, _ := newTestBoard(t, [][]string{
		header,
		{"Runner", "one", "", "TRUE", "", "2026-01-09 18:00:00"},
		{"Runner", "two", "", "FALSE", "", ""},
		{"Runner", "three", "", "TRUE", "", "2026-01-09 19:00:00"},
		{"Pose", "four", "", "TRUE", "", "2026-01-09 20:00:00"},
	})
	st, err := b.DeleteDone(context.Background(), "Runner")
	if err != nil {
		t.Fatalf("DeleteDone failed: %v", err)
	}
	if st.Summary.Total != 2 {
		t.Fatalf("expected 2 tasks left, got %+v", st.Summary)
	}
	for _, task := range st.Tasks {
		if task.Category == "Runner" && task.Done {
			t.Fatalf("done Runner task survived: %+v", task)
		}
	}
	// The done task in the other category is untouched.
	found := false
	for _, task := range st.Tasks {
		if task.Category == "Pose" && task.Done {
			found = true
		}
	}
	if !found {
		t.Fatal("Pose task should not have been deleted")
	}
}

func TestBoardNeutralStateWithoutTargets(t *testing.T) {
	tasks := store.NewMemoryStore([][]string{header})
	ts, err := store.NewTaskStore(tasks, store.DefaultLayout(), time.UTC)
	if err != nil {
		t.Fatalf("NewTaskStore failed: %v", err)
	}
	// No config store means no projects, so nothing can be selected.
	b := New(ts, nil, nil, nil, time.UTC)
	b.now = func() time.Time { return time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC) }
	st, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.HasTarget {
		t.Fatalf("expected no target, got %+v", st.Target)
	}
}
