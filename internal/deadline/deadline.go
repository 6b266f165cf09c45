// Package deadline picks the release target the countdown header tracks.
package deadline

import (
	"time"

	"github.com/cowritehq/sprinter/internal/dateparse"
	"github.com/cowritehq/sprinter/internal/model"
)

// Grace keeps a just-missed deadline selected instead of letting the
// header silently go blank the moment it passes.
const Grace = 24 * time.Hour

type Target struct {
	Name string
	At   time.Time
}

// Select returns the project with the soonest future deadline. Entries
// that fail to parse are discarded. A deadline already in the past stays
// eligible for Grace, but only when no future deadline exists at all.
// Ties go to input order. ok is false when nothing qualifies; the caller
// renders a neutral frozen header.
func Select(projects []model.Project, now time.Time, loc *time.Location) (Target, bool) {
	var (
		future, past         Target
		futureDiff, pastDiff time.Duration
		haveFuture, havePast bool
	)
	for _, p := range projects {
		at, err := dateparse.Parse(p.Deadline, now.Year(), loc)
		if err != nil {
			continue
		}
		diff := at.Sub(now)
		switch {
		case diff >= 0:
			if !haveFuture || diff < futureDiff {
				future = Target{Name: p.Name, At: at}
				futureDiff = diff
				haveFuture = true
			}
		case diff >= -Grace:
			if !havePast || diff > pastDiff {
				past = Target{Name: p.Name, At: at}
				pastDiff = diff
				havePast = true
			}
		}
	}
	if haveFuture {
		return future, true
	}
	if havePast {
		return past, true
	}
	return Target{}, false
}

// Countdown is the broken-down time remaining until a target. All fields
// are zero once the deadline has passed.
type Countdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Overdue bool
}

func Remaining(target Target, now time.Time) Countdown {
	diff := target.At.Sub(now)
	if diff < 0 {
		return Countdown{Overdue: true}
	}
	total := int(diff / time.Second)
	return Countdown{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// WindowPercent reports how much of a fixed sprint window ending at the
// target has elapsed, clamped to [0,100].
func WindowPercent(target Target, now time.Time, window time.Duration) int {
	if window <= 0 {
		return 0
	}
	diff := target.At.Sub(now)
	pct := int((1 - diff.Seconds()/window.Seconds()) * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
