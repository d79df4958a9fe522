package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/tasklist/internal/query"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"TASKLIST_DATA_FILE", "TASKLIST_BACKEND", "TASKLIST_LOG_LEVEL", "TASKLIST_DEFAULT_SORT", "TASKLIST_TODAY"} {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	if cfg.Backend != BackendJSON || cfg.LogLevel != "warn" || cfg.DefaultSort != "date" || cfg.Today != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	want := filepath.Join(os.Getenv("XDG_DATA_HOME"), "tasklist", "tasks.json")
	if cfg.DataFile != want {
		t.Fatalf("data file = %q, want %q", cfg.DataFile, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

func TestLoadFileOverridesOnlyDefinedKeys(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "backend = \"sqlite\"\ndefault_sort = \"priority\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendSQLite || cfg.Sort() != query.ByPriority {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || cfg.DataFile != DefaultDataFile() {
		t.Fatalf("undefined keys should keep defaults: %+v", cfg)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "tasklist")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("log_level = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.Level())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "backend = \"sqlite\"\ndata_file = \"/tmp/from-file.db\"\n")
	t.Setenv("TASKLIST_BACKEND", "YAML")
	t.Setenv("TASKLIST_DATA_FILE", "/tmp/from-env.yaml")
	t.Setenv("TASKLIST_TODAY", "2024-02-29")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend != BackendYAML || cfg.DataFile != "/tmp/from-env.yaml" {
		t.Fatalf("env did not win: %+v", cfg)
	}
	if got := cfg.Clock()().Format("2006-01-02"); got != "2024-02-29" {
		t.Fatalf("pinned today = %s", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"backend":  "backend = \"postgres\"\n",
		"level":    "log_level = \"loud\"\n",
		"sort":     "default_sort = \"title\"\n",
		"today":    "today = \"31/01/2024\"\n",
		"unknown":  "colour = \"blue\"\n",
		"bad toml": "backend = \n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}

func TestValidateWrapsErrInvalid(t *testing.T) {
	cfg := Default()
	cfg.Backend = "csv"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if got := expandHome("~/tasks.json"); got != filepath.Join(home, "tasks.json") {
		t.Fatalf("expandHome = %q", got)
	}
	if got := expandHome("/abs/tasks.json"); got != "/abs/tasks.json" {
		t.Fatalf("absolute path changed: %q", got)
	}
}
