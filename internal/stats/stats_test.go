package stats

import (
	"testing"

	"github.com/cowritehq/sprinter/internal/model"
)

func task(category string, done bool) model.Task {
	return model.Task{Category: category, Title: "t", Done: done}
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	if s.Total != 0 || s.Done != 0 || s.RatePercent != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
	if s.Fraction() != 0 {
		t.Fatalf("expected zero fraction, got %f", s.Fraction())
	}
}

func TestAggregateFloorsRate(t *testing.T) {
	tasks := []model.Task{
		task("a", true),
		task("a", false),
		task("a", false),
	}
	s := Aggregate(tasks)
	if s.Total != 3 || s.Done != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	// 1/3 floors to 33, never rounds up.
	if s.RatePercent != 33 {
		t.Fatalf("expected 33, got %d", s.RatePercent)
	}
}

func TestAggregateRateBounds(t *testing.T) {
	lists := [][]model.Task{
		nil,
		{task("a", false)},
		{task("a", true)},
		{task("a", true), task("b", false), task("c", true)},
	}
	for _, tasks := range lists {
		s := Aggregate(tasks)
		if s.RatePercent < 0 || s.RatePercent > 100 {
			t.Fatalf("rate out of bounds: %+v", s)
		}
	}
	if got := Aggregate([]model.Task{task("a", true)}).RatePercent; got != 100 {
		t.Fatalf("all done should be 100, got %d", got)
	}
}

func TestByCategoryFirstSeenOrder(t *testing.T) {
	tasks := []model.Task{
		task("Pose & Gimmick", true),
		task("Masterpiece", false),
		task("Pose & Gimmick", false),
		task("Runner", true),
		task("Masterpiece", true),
	}
	got := ByCategory(tasks)
	if len(got) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(got))
	}
	wantOrder := []string{"Pose & Gimmick", "Masterpiece", "Runner"}
	for i, name := range wantOrder {
		if got[i].Category != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got[i].Category)
		}
	}
	if got[0].Total != 2 || got[0].Done != 1 {
		t.Fatalf("unexpected Pose counts: %+v", got[0])
	}
	if got[1].Total != 2 || got[1].Done != 1 {
		t.Fatalf("unexpected Masterpiece counts: %+v", got[1])
	}
}

func TestFilter(t *testing.T) {
	tasks := []model.Task{
		{Category: "a", Title: "one"},
		{Category: "b", Title: "two"},
		{Category: "a", Title: "three"},
	}
	got := Filter(tasks, "a")
	if len(got) != 2 || got[0].Title != "one" || got[1].Title != "three" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}
