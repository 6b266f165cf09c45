package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidatesWithLocalPath(t *testing.T) {
	cfg := Default()
	cfg.LocalDBPath = "sprinter.db"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid default config, got %v", err)
	}
	if cfg.TasksSheet != "Tasks" || cfg.Timezone != "Asia/Tokyo" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidateSheetsBackendRequirements(t *testing.T) {
	cfg := Default()
	cfg.Backend = BackendSheets
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing spreadsheet_id")
	}
	cfg.SpreadsheetID = "abc123"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing credentials_file")
	}
	cfg.CredentialsFile = "service-account.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Backend = "carrier-pigeon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestValidateRejectsBadTimezone(t *testing.T) {
	cfg := Default()
	cfg.LocalDBPath = "sprinter.db"
	cfg.Timezone = "Mars/Olympus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bad timezone")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
backend = "local"
local_db_path = "/tmp/sprinter.db"
auto_refresh_seconds = 30
webhook_url = "https://hooks.example.com/abc"

[columns]
project = 1
category = 2
title = 3
assignee = 4
done = 5
due = 6
completed_at = 7
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SPRINTER_AUTO_REFRESH_SECONDS", "60")
	t.Setenv("SPRINTER_WEBHOOK_URL", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LocalDBPath != "/tmp/sprinter.db" {
		t.Fatalf("unexpected db path: %s", cfg.LocalDBPath)
	}
	// Environment wins over the file.
	if cfg.AutoRefreshSeconds != 60 {
		t.Fatalf("expected env override 60, got %d", cfg.AutoRefreshSeconds)
	}
	// An empty env var is not an override.
	if cfg.WebhookURL != "https://hooks.example.com/abc" {
		t.Fatalf("unexpected webhook url: %s", cfg.WebhookURL)
	}
	if cfg.Columns.Project != 1 || cfg.Columns.CompletedAt != 7 {
		t.Fatalf("unexpected column layout: %+v", cfg.Columns)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SPRINTER_LOCAL_DB_PATH", "/tmp/sprinter-test.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != BackendLocal || cfg.LocalDBPath != "/tmp/sprinter-test.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsInvalidColumnLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
backend = "local"
local_db_path = "/tmp/sprinter.db"

[columns]
category = 1
title = 1
done = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for overlapping columns")
	}
}
