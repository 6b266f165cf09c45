// Package board runs the dashboard's read-modify-write cycles. Every
// user action is a full synchronous pass against the external store;
// nothing mutable is cached between refreshes except the session
// configuration, which is read once.
package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cowritehq/sprinter/internal/deadline"
	"github.com/cowritehq/sprinter/internal/model"
	"github.com/cowritehq/sprinter/internal/notify"
	"github.com/cowritehq/sprinter/internal/stats"
	"github.com/cowritehq/sprinter/internal/store"
)

// State is one complete display refresh.
type State struct {
	Tasks      []model.Task
	Summary    stats.Summary
	Categories []stats.CategorySummary
	Projects   []model.Project
	Aliases    model.AliasMap
	Target     deadline.Target
	HasTarget  bool
	LoadedAt   time.Time
}

type Board struct {
	tasks    *store.TaskStore
	cfg      *store.ConfigStore
	notifier notify.Notifier
	log      *slog.Logger
	loc      *time.Location
	now      func() time.Time

	// session config, read once
	loaded   bool
	projects []model.Project
	aliases  model.AliasMap
}

func New(tasks *store.TaskStore, cfg *store.ConfigStore, notifier notify.Notifier, log *slog.Logger, loc *time.Location) *Board {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if loc == nil {
		loc = time.Local
	}
	return &Board{
		tasks:    tasks,
		cfg:      cfg,
		notifier: notifier,
		log:      log,
		loc:      loc,
		now:      time.Now,
	}
}

// Load performs a full read and recomputes everything the dashboard
// shows.
func (b *Board) Load(ctx context.Context) (State, error) {
	if err := b.loadSessionConfig(ctx); err != nil {
		return State{}, err
	}
	tasks, err := b.tasks.List(ctx)
	if err != nil {
		return State{}, fmt.Errorf("board: load tasks: %w", err)
	}
	now := b.now().In(b.loc)
	st := State{
		Tasks:      tasks,
		Summary:    stats.Aggregate(tasks),
		Categories: stats.ByCategory(tasks),
		Projects:   b.projects,
		Aliases:    b.aliases,
		LoadedAt:   now,
	}
	st.Target, st.HasTarget = deadline.Select(b.projects, now, b.loc)
	return st, nil
}

// AddTask appends a task and returns the refreshed state.
func (b *Board) AddTask(ctx context.Context, category, title, assignee, due string) (State, error) {
	if err := b.tasks.Add(ctx, category, title, assignee, due); err != nil {
		return State{}, fmt.Errorf("board: add task: %w", err)
	}
	b.notifyEvent(ctx, fmt.Sprintf("📌 Task added: [%s] %s (%s)", category, title, displayAssignee(assignee)))
	return b.Load(ctx)
}

// ToggleTask flips a task's done flag and returns the refreshed state.
func (b *Board) ToggleTask(ctx context.Context, id string) (State, error) {
	task, err := b.tasks.Toggle(ctx, id)
	if err != nil {
		return State{}, fmt.Errorf("board: toggle task: %w", err)
	}
	if task.Done {
		b.notifyEvent(ctx, fmt.Sprintf("✅ Task completed: [%s] %s", task.Category, task.Title))
	} else {
		b.notifyEvent(ctx, fmt.Sprintf("↩️ Task reopened: [%s] %s", task.Category, task.Title))
	}
	return b.Load(ctx)
}

// DeleteTasks removes tasks in one descending-order batch and returns the
// refreshed state.
func (b *Board) DeleteTasks(ctx context.Context, ids []string) (State, error) {
	if err := b.tasks.Delete(ctx, ids); err != nil {
		return State{}, fmt.Errorf("board: delete tasks: %w", err)
	}
	return b.Load(ctx)
}

// DeleteDone removes every completed task in one category in a single
// batch.
func (b *Board) DeleteDone(ctx context.Context, category string) (State, error) {
	tasks, err := b.tasks.List(ctx)
	if err != nil {
		return State{}, fmt.Errorf("board: delete done: %w", err)
	}
	ids := make([]string, 0)
	for _, t := range tasks {
		if t.Category == category && t.Done {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		return b.Load(ctx)
	}
	return b.DeleteTasks(ctx, ids)
}

func (b *Board) loadSessionConfig(ctx context.Context) error {
	if b.loaded || b.cfg == nil {
		return nil
	}
	projects, err := b.cfg.Projects(ctx)
	if err != nil {
		return fmt.Errorf("board: load projects: %w", err)
	}
	aliases, err := b.cfg.Aliases(ctx)
	if err != nil {
		return fmt.Errorf("board: load aliases: %w", err)
	}
	b.projects = projects
	b.aliases = aliases
	b.loaded = true
	return nil
}

func (b *Board) notifyEvent(ctx context.Context, text string) {
	res := b.notifier.Notify(ctx, text)
	if !res.OK {
		b.log.Warn("notification failed", "error", res.Err)
	}
}

func displayAssignee(assignee string) string {
	if assignee == "" {
		return "unassigned"
	}
	return assignee
}
