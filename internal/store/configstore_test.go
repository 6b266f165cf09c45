package store

import (
	"context"
	"testing"
)

func TestConfigStoreProjects(t *testing.T) {
	projects := NewMemoryStore([][]string{
		{"project", "deadline"},
		{"Winter Single", "2026-01-14 23:59"},
		{"", "2026-02-01"},
		{"Spring EP", "2026-03-31"},
	})
	cs := NewConfigStore(projects, nil)
	got, err := cs.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 projects (blank names skipped), got %d", len(got))
	}
	if got[0].Name != "Winter Single" || got[0].Deadline != "2026-01-14 23:59" {
		t.Fatalf("unexpected first project: %+v", got[0])
	}
}

func TestConfigStoreAliases(t *testing.T) {
	aliases := NewMemoryStore([][]string{
		{"formal", "short"},
		{"GO! GO! RUNNER!", "Runner"},
		{"Pose & Gimmick", "Pose"},
	})
	cs := NewConfigStore(nil, aliases)
	got, err := cs.Aliases(context.Background())
	if err != nil {
		t.Fatalf("Aliases failed: %v", err)
	}
	if got.Display("GO! GO! RUNNER!") != "Runner" {
		t.Fatalf("unexpected aliases: %+v", got)
	}

	// A nil projects store reads as an empty project list.
	projects, err := cs.Projects(context.Background())
	if err != nil || len(projects) != 0 {
		t.Fatalf("expected empty projects, got %+v err=%v", projects, err)
	}
}
