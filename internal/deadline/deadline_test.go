package deadline

import (
	"testing"
	"time"

	"github.com/cowritehq/sprinter/internal/model"
)

func TestSelectPrefersFutureOverGracePast(t *testing.T) {
	now := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{Name: "A", Deadline: "2026-01-10 10:00"},
		{Name: "B", Deadline: "2026-01-05 10:00"},
	}
	// B passed 14 hours ago and is still inside the grace window, but a
	// future deadline always outranks a missed one.
	target, ok := Select(projects, now, time.UTC)
	if !ok {
		t.Fatal("expected a target")
	}
	if target.Name != "A" {
		t.Fatalf("expected A, got %s", target.Name)
	}
}

func TestSelectGraceKeepsJustMissedDeadline(t *testing.T) {
	now := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{Name: "B", Deadline: "2026-01-05 10:00"},
	}
	target, ok := Select(projects, now, time.UTC)
	if !ok {
		t.Fatal("expected the just-missed deadline to stay selected")
	}
	if target.Name != "B" {
		t.Fatalf("expected B, got %s", target.Name)
	}
}

func TestSelectDropsDeadlinePastGrace(t *testing.T) {
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{Name: "B", Deadline: "2026-01-05 10:00"},
	}
	if _, ok := Select(projects, now, time.UTC); ok {
		t.Fatal("expected no target once the grace window has passed")
	}
}

func TestSelectDiscardsUnparseableAndTiesByOrder(t *testing.T) {
	now := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{Name: "broken", Deadline: "soon"},
		{Name: "first", Deadline: "2026-01-10 10:00"},
		{Name: "second", Deadline: "2026-01-10 10:00"},
	}
	target, ok := Select(projects, now, time.UTC)
	if !ok || target.Name != "first" {
		t.Fatalf("expected first, got %+v ok=%v", target, ok)
	}
}

func TestSelectIsIdempotent(t *testing.T) {
	now := time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)
	projects := []model.Project{
		{Name: "A", Deadline: "2026-01-10 10:00"},
		{Name: "B", Deadline: "1/8 09:00"},
	}
	first, ok1 := Select(projects, now, time.UTC)
	second, ok2 := Select(projects, now, time.UTC)
	if ok1 != ok2 || first != second {
		t.Fatalf("expected identical results, got %+v/%v and %+v/%v", first, ok1, second, ok2)
	}
}

func TestSelectReferenceYearFromNow(t *testing.T) {
	now := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	projects := []model.Project{{Name: "A", Deadline: "1/20 15:00"}}
	target, ok := Select(projects, now, time.UTC)
	if !ok {
		t.Fatal("expected a target")
	}
	if target.At.Year() != 2026 {
		t.Fatalf("expected year 2026, got %d", target.At.Year())
	}
}

func TestRemaining(t *testing.T) {
	target := Target{Name: "A", At: time.Date(2026, 1, 14, 23, 59, 0, 0, time.UTC)}
	now := time.Date(2026, 1, 13, 20, 58, 30, 0, time.UTC)
	got := Remaining(target, now)
	want := Countdown{Days: 1, Hours: 3, Minutes: 0, Seconds: 30}
	if got != want {
		t.Fatalf("Remaining = %+v, want %+v", got, want)
	}

	late := Remaining(target, target.At.Add(time.Minute))
	if !late.Overdue || late.Days != 0 || late.Seconds != 0 {
		t.Fatalf("expected zeroed overdue countdown, got %+v", late)
	}
}

func TestWindowPercent(t *testing.T) {
	target := Target{At: time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)}
	window := 7 * 24 * time.Hour
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC), 50},
		{time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), 100},
		{time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), 100},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, tc := range cases {
		if got := WindowPercent(target, tc.now, window); got != tc.want {
			t.Fatalf("WindowPercent(now=%v) = %d, want %d", tc.now, got, tc.want)
		}
	}
}
