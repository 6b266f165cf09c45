// Package stats computes the completion numbers the dashboard displays.
package stats

import "github.com/cowritehq/sprinter/internal/model"

type Summary struct {
	Total       int
	Done        int
	RatePercent int
}

// Fraction is the completion ratio in [0,1], for progress bars.
func (s Summary) Fraction() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total)
}

// Aggregate counts completion over the whole task list. RatePercent is
// floor(done/total*100) and 0 for an empty list.
func Aggregate(tasks []model.Task) Summary {
	s := Summary{}
	for _, t := range tasks {
		s.Total++
		if t.Done {
			s.Done++
		}
	}
	if s.Total > 0 {
		s.RatePercent = s.Done * 100 / s.Total
	}
	return s
}

type CategorySummary struct {
	Category string
	Total    int
	Done     int
}

func (c CategorySummary) RatePercent() int {
	if c.Total == 0 {
		return 0
	}
	return c.Done * 100 / c.Total
}

func (c CategorySummary) Fraction() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Done) / float64(c.Total)
}

// ByCategory groups completion counts by category, preserving first-seen
// order so tab ordering stays stable across refreshes.
func ByCategory(tasks []model.Task) []CategorySummary {
	index := make(map[string]int)
	out := make([]CategorySummary, 0)
	for _, t := range tasks {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategorySummary{Category: t.Category})
		}
		out[i].Total++
		if t.Done {
			out[i].Done++
		}
	}
	return out
}

// Filter returns the tasks belonging to one category, in input order.
func Filter(tasks []model.Task, category string) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
