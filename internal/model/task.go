package model

import (
	"errors"
	"strings"
	"time"
)

// Done cell values as stored in the backing sheet.
const (
	DoneTrue  = "TRUE"
	DoneFalse = "FALSE"
)

// Task is one row of the shared checklist. ID is a synthetic id assigned
// when the row is first seen or created; it is never written to the store.
type Task struct {
	ID          string
	Project     string
	Category    string
	Title       string
	Assignee    string
	Done        bool
	DueRaw      string
	Due         *time.Time
	CompletedAt *time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("model: task category is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.Done && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when task is done")
	}
	if !t.Done && t.CompletedAt != nil {
		return errors.New("model: completed_at must be empty when task is not done")
	}
	return nil
}

// ParseDone interprets a done cell. Anything other than "TRUE"
// (case-insensitive) counts as not done.
func ParseDone(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), DoneTrue)
}

func FormatDone(done bool) string {
	if done {
		return DoneTrue
	}
	return DoneFalse
}

type Urgency string

const (
	UrgencyDone      Urgency = "Done"
	UrgencyOverdue   Urgency = "Overdue"
	UrgencyDueSoon   Urgency = "DueSoon"
	UrgencyDueWarn   Urgency = "DueWarn"
	UrgencyDueNormal Urgency = "DueNormal"
	UrgencyNoDue     Urgency = "NoDue"
)

const (
	dueSoonWindow = time.Hour
	dueWarnWindow = 3 * time.Hour
)

// ClassifyUrgency maps every task to exactly one urgency class. Done wins
// over everything; a missing or unparseable due date is NoDue, never an
// error.
func ClassifyUrgency(t Task, now time.Time) Urgency {
	if t.Done {
		return UrgencyDone
	}
	if t.Due == nil {
		return UrgencyNoDue
	}
	diff := t.Due.Sub(now)
	switch {
	case diff < 0:
		return UrgencyOverdue
	case diff < dueSoonWindow:
		return UrgencyDueSoon
	case diff < dueWarnWindow:
		return UrgencyDueWarn
	default:
		return UrgencyDueNormal
	}
}
