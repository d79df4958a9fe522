package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasklist/internal/config"
	"github.com/sandeepkv93/tasklist/internal/manager"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/storage"
)

// app bundles what a command needs: resolved config, the manager, and the
// store it must close.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	mgr    *manager.Manager
	closer io.Closer
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))

	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &app{
		cfg:    cfg,
		logger: logger,
		mgr:    manager.New(cmd.Context(), store, manager.WithLogger(logger)),
	}
	if c, ok := store.(io.Closer); ok {
		a.closer = c
	}
	// A load failure that is not corruption leaves the manager on the default
	// list; saving that would replace data we could not read.
	if err := a.mgr.SyncErr(); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%w; %s left untouched", err, cfg.DataFile)
	}
	logger.Debug("data loaded", "backend", cfg.Backend, "path", cfg.DataFile)
	return a, nil
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *app) today() time.Time {
	return a.cfg.Clock()()
}

// loadConfig layers --data, --backend and --log-level over the file and
// environment config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataFile = dataFlag
	}
	if flags.Changed("backend") {
		cfg.Backend = config.Backend(backendFlag)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
	return cfg, cfg.Validate()
}

func openStore(cfg config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.Backend != config.BackendSQLite {
		format := storage.FormatJSON
		if cfg.Backend == config.BackendYAML {
			format = storage.FormatYAML
		}
		return storage.NewFileStore(cfg.DataFile, format, logger), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return storage.OpenSQLite(cfg.DataFile)
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(*app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
