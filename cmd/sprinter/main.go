package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cowritehq/sprinter/internal/board"
	"github.com/cowritehq/sprinter/internal/config"
	"github.com/cowritehq/sprinter/internal/logging"
	"github.com/cowritehq/sprinter/internal/notify"
	"github.com/cowritehq/sprinter/internal/store"
	"github.com/cowritehq/sprinter/internal/update"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default ~/.config/sprinter/config.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "sprinter failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()
	tasks, projects, aliases, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}

	taskStore, err := store.NewTaskStore(tasks, cfg.Columns, loc)
	if err != nil {
		return err
	}
	var notifier notify.Notifier = notify.Noop{}
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.WebhookURL)
	}
	b := board.New(taskStore, store.NewConfigStore(projects, aliases), notifier, log, loc)

	log.Info("starting", "backend", cfg.Backend, "timezone", cfg.Timezone)
	model := update.NewModel(b, update.Options{
		SprintWindow: cfg.SprintWindow(),
		AutoRefresh:  cfg.AutoRefresh(),
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// openStores wires the three worksheets for the configured backend.
func openStores(ctx context.Context, cfg config.Config) (store.RowStore, store.RowStore, store.RowStore, error) {
	switch cfg.Backend {
	case config.BackendSheets:
		srv, err := store.NewSheetsService(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, nil, nil, err
		}
		tasks, err := store.NewSheetsStore(ctx, srv, cfg.SpreadsheetID, cfg.TasksSheet)
		if err != nil {
			return nil, nil, nil, err
		}
		projects, err := store.NewSheetsStore(ctx, srv, cfg.SpreadsheetID, cfg.ProjectsSheet)
		if err != nil {
			return nil, nil, nil, err
		}
		aliases, err := store.NewSheetsStore(ctx, srv, cfg.SpreadsheetID, cfg.AliasesSheet)
		if err != nil {
			return nil, nil, nil, err
		}
		return tasks, projects, aliases, nil

	case config.BackendLocal:
		db, err := store.OpenSQLite(cfg.LocalDBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		tasks, err := store.NewSQLiteStore(ctx, db, cfg.TasksSheet, taskHeader(cfg.Columns))
		if err != nil {
			return nil, nil, nil, err
		}
		projects, err := store.NewSQLiteStore(ctx, db, cfg.ProjectsSheet, []string{"project", "deadline"})
		if err != nil {
			return nil, nil, nil, err
		}
		aliases, err := store.NewSQLiteStore(ctx, db, cfg.AliasesSheet, []string{"formal", "short"})
		if err != nil {
			return nil, nil, nil, err
		}
		return tasks, projects, aliases, nil
	}
	return nil, nil, nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
}

// taskHeader builds the header row a fresh local database is seeded with,
// placing each column name where the layout expects it.
func taskHeader(layout store.Layout) []string {
	header := make([]string, layout.Width())
	set := func(col int, name string) {
		if col > 0 {
			header[col-1] = name
		}
	}
	set(layout.Project, "project")
	set(layout.Category, "song")
	set(layout.Title, "task")
	set(layout.Assignee, "assignee")
	set(layout.Done, "done")
	set(layout.Due, "due")
	set(layout.CompletedAt, "completed_at")
	return header
}
