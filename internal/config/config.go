// Package config loads the client configuration: which backend to talk
// to, where the credentials live, and how the task sheet's columns are
// laid out. Values come from a TOML file with SPRINTER_* environment
// overrides on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/cowritehq/sprinter/internal/store"
)

const (
	BackendSheets = "sheets"
	BackendLocal  = "local"
)

const (
	defaultTasksSheet       = "Tasks"
	defaultProjectsSheet    = "Projects"
	defaultAliasesSheet     = "Aliases"
	defaultTimezone         = "Asia/Tokyo"
	defaultSprintWindowDays = 7
	defaultLogLevel         = "info"
)

type Config struct {
	Backend            string       `toml:"backend"`
	SpreadsheetID      string       `toml:"spreadsheet_id"`
	CredentialsFile    string       `toml:"credentials_file"`
	TasksSheet         string       `toml:"tasks_sheet"`
	ProjectsSheet      string       `toml:"projects_sheet"`
	AliasesSheet       string       `toml:"aliases_sheet"`
	LocalDBPath        string       `toml:"local_db_path"`
	Timezone           string       `toml:"timezone"`
	WebhookURL         string       `toml:"webhook_url"`
	AutoRefreshSeconds int          `toml:"auto_refresh_seconds"`
	SprintWindowDays   int          `toml:"sprint_window_days"`
	LogFile            string       `toml:"log_file"`
	LogLevel           string       `toml:"log_level"`
	Columns            store.Layout `toml:"columns"`
}

func Default() Config {
	return Config{
		Backend:          BackendLocal,
		TasksSheet:       defaultTasksSheet,
		ProjectsSheet:    defaultProjectsSheet,
		AliasesSheet:     defaultAliasesSheet,
		Timezone:         defaultTimezone,
		SprintWindowDays: defaultSprintWindowDays,
		LogLevel:         defaultLogLevel,
		Columns:          store.DefaultLayout(),
	}
}

// DefaultPath is ~/.config/sprinter/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sprinter", "config.toml"), nil
}

// Load reads the config file at path (the default path when empty),
// applies environment overrides and validates. A missing file is fine;
// defaults plus environment still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// fall through to defaults
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv applies SPRINTER_* overrides onto base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("SPRINTER_BACKEND"); ok {
		cfg.Backend = v
	}
	if v, ok := getEnv("SPRINTER_SPREADSHEET_ID"); ok {
		cfg.SpreadsheetID = v
	}
	if v, ok := getEnv("SPRINTER_CREDENTIALS_FILE"); ok {
		cfg.CredentialsFile = v
	}
	if v, ok := getEnv("SPRINTER_LOCAL_DB_PATH"); ok {
		cfg.LocalDBPath = v
	}
	if v, ok := getEnv("SPRINTER_TIMEZONE"); ok {
		cfg.Timezone = v
	}
	if v, ok := getEnv("SPRINTER_WEBHOOK_URL"); ok {
		cfg.WebhookURL = v
	}
	if v, ok := getEnvInt("SPRINTER_AUTO_REFRESH_SECONDS"); ok && v >= 0 {
		cfg.AutoRefreshSeconds = v
	}
	if v, ok := getEnvInt("SPRINTER_SPRINT_WINDOW_DAYS"); ok && v > 0 {
		cfg.SprintWindowDays = v
	}
	if v, ok := getEnv("SPRINTER_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnv("SPRINTER_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSheets:
		if strings.TrimSpace(c.SpreadsheetID) == "" {
			return errors.New("config: spreadsheet_id is required for the sheets backend")
		}
		if strings.TrimSpace(c.CredentialsFile) == "" {
			return errors.New("config: credentials_file is required for the sheets backend")
		}
	case BackendLocal:
		if strings.TrimSpace(c.LocalDBPath) == "" {
			return errors.New("config: local_db_path is required for the local backend")
		}
	default:
		return fmt.Errorf("config: unsupported backend %q (want %q or %q)", c.Backend, BackendSheets, BackendLocal)
	}
	if c.SprintWindowDays <= 0 {
		return errors.New("config: sprint_window_days must be positive")
	}
	if err := c.Columns.Validate(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone; all deadline parsing happens
// in this single fixed zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) AutoRefresh() time.Duration {
	if c.AutoRefreshSeconds <= 0 {
		return 0
	}
	return time.Duration(c.AutoRefreshSeconds) * time.Second
}

func (c Config) SprintWindow() time.Duration {
	return time.Duration(c.SprintWindowDays) * 24 * time.Hour
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
