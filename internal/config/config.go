// Package config resolves tasklist runtime settings from defaults, an
// optional TOML file and TASKLIST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/query"
)

var ErrInvalid = errors.New("config: invalid value")

type Backend string

const (
	BackendJSON   Backend = "json"
	BackendYAML   Backend = "yaml"
	BackendSQLite Backend = "sqlite"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendJSON, BackendYAML, BackendSQLite:
		return true
	default:
		return false
	}
}

const (
	appName        = "tasklist"
	configFileName = "config.toml"
	dataFileName   = "tasks.json"
)

type Config struct {
	DataFile    string  `toml:"data_file"`
	Backend     Backend `toml:"backend"`
	LogLevel    string  `toml:"log_level"`
	DefaultSort string  `toml:"default_sort"`
	// Today pins the current date (YYYY-MM-DD). Empty means the wall clock.
	Today string `toml:"today"`
}

func Default() Config {
	return Config{
		DataFile:    DefaultDataFile(),
		Backend:     BackendJSON,
		LogLevel:    "warn",
		DefaultSort: string(query.ByDate),
	}
}

// DefaultDataFile is $XDG_DATA_HOME/tasklist/tasks.json, falling back to
// ~/.local/share when XDG_DATA_HOME is unset.
func DefaultDataFile() string {
	return filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), appName, dataFileName)
}

// DefaultPath is $XDG_CONFIG_HOME/tasklist/config.toml.
func DefaultPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appName, configFileName)
}

func xdgDir(env string, fallback ...string) string {
	if dir := strings.TrimSpace(os.Getenv(env)); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// Load layers the TOML file at path and then the environment over the
// defaults. An empty path means DefaultPath, which may be absent; an explicit
// path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	fileCfg, meta, err := loadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return Config{}, err
	default:
		cfg = merge(cfg, fileCfg, meta)
	}
	cfg = FromEnv(cfg)
	return cfg, cfg.Validate()
}

func loadFile(path string) (Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, toml.MetaData{}, fmt.Errorf("%w: unknown key %q in %s", ErrInvalid, undecoded[0].String(), path)
	}
	return cfg, meta, nil
}

func merge(base, file Config, meta toml.MetaData) Config {
	out := base
	if meta.IsDefined("data_file") {
		out.DataFile = expandHome(strings.TrimSpace(file.DataFile))
	}
	if meta.IsDefined("backend") {
		out.Backend = Backend(strings.ToLower(strings.TrimSpace(string(file.Backend))))
	}
	if meta.IsDefined("log_level") {
		out.LogLevel = strings.TrimSpace(file.LogLevel)
	}
	if meta.IsDefined("default_sort") {
		out.DefaultSort = strings.TrimSpace(file.DefaultSort)
	}
	if meta.IsDefined("today") {
		out.Today = strings.TrimSpace(file.Today)
	}
	return out
}

// FromEnv overrides base with any non-empty TASKLIST_* variables.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("TASKLIST_DATA_FILE"); ok {
		cfg.DataFile = expandHome(v)
	}
	if v, ok := getEnv("TASKLIST_BACKEND"); ok {
		cfg.Backend = Backend(strings.ToLower(v))
	}
	if v, ok := getEnv("TASKLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnv("TASKLIST_DEFAULT_SORT"); ok {
		cfg.DefaultSort = v
	}
	if v, ok := getEnv("TASKLIST_TODAY"); ok {
		cfg.Today = v
	}
	return cfg
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("%w: data file is required", ErrInvalid)
	}
	if !c.Backend.IsValid() {
		return fmt.Errorf("%w: backend %q", ErrInvalid, c.Backend)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := query.ParseCriterion(c.DefaultSort); err != nil {
		return fmt.Errorf("%w: default sort: %w", ErrInvalid, err)
	}
	if c.Today != "" {
		if _, err := model.ParseDate(c.Today); err != nil {
			return fmt.Errorf("%w: today: %w", ErrInvalid, err)
		}
	}
	return nil
}

// Level maps LogLevel to a slog level. Invalid values yield slog.LevelWarn.
func (c Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, raw)
	}
}

// Sort returns DefaultSort as a criterion, ByDate when unparseable.
func (c Config) Sort() query.Criterion {
	by, err := query.ParseCriterion(c.DefaultSort)
	if err != nil {
		return query.ByDate
	}
	return by
}

// Clock returns the function used for "today": the pinned date when set,
// otherwise the local wall clock date.
func (c Config) Clock() func() time.Time {
	if c.Today != "" {
		if pinned, err := model.ParseDate(c.Today); err == nil {
			return func() time.Time { return pinned }
		}
	}
	return func() time.Time { return model.Day(time.Now()) }
}
