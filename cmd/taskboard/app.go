package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abatilo/taskboard/internal/board"
	"github.com/abatilo/taskboard/internal/config"
	"github.com/abatilo/taskboard/internal/logging"
	"github.com/abatilo/taskboard/internal/storage"
)

// app bundles everything a command needs to touch the board.
type app struct {
	board  *board.Board
	store  storage.Storage
	logger *slog.Logger
	logs   io.Closer
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = backendFlag
	}
	if flags.Changed("data-dir") {
		cfg.DataDir = dataDirFlag
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp sets up logging and storage and builds the board. The board is not
// loaded yet; the interactive board loads it behind a spinner.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger, logs, err := logging.Init(storage.RootDir(home), level)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dataDir := cfg.ResolveDataDir(home)
	store, err := storage.Open(ctx, cfg.Backend, dataDir)
	if err != nil {
		_ = logs.Close()
		return nil, err
	}

	b := board.New(store,
		board.WithKey(cfg.StorageKey),
		board.WithLogger(logger),
		board.WithSeed(cfg.SeedEnabled()),
		board.WithLoadDelay(cfg.LoadDelay),
	)
	logger.Debug("storage opened", "backend", cfg.Backend, "dir", dataDir, "key", b.Key())
	return &app{board: b, store: store, logger: logger, logs: logs}, nil
}

// Close releases storage and the log file.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close storage", "error", err)
	}
	_ = a.logs.Close()
}

// getBoard opens the app and loads the board.
func getBoard(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	a, err := openApp(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err = a.board.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
