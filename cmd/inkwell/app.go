package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rpggio/inkwell/internal/clock"
	"github.com/rpggio/inkwell/internal/config"
	"github.com/rpggio/inkwell/internal/domain/document"
	"github.com/rpggio/inkwell/internal/sqlite"
	"github.com/rpggio/inkwell/migrations"
)

// app wires configuration, logging, the database, and the document
// service for one command invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sqlite.DB
	docs   *document.Service
}

func openApp(cmd *cobra.Command, logWriter io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		cfg.DB.Path = dbPath
	}

	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := migrations.Up(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	repo := sqlite.NewDocumentRepository(db, clock.System{})
	docs := document.NewService(repo, clock.System{}, logger)

	return &app{cfg: cfg, logger: logger, db: db, docs: docs}, nil
}

func (a *app) Close() {
	a.db.Close()
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid document id %q", arg)
	}
	return id, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
