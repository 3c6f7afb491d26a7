package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/exemplo/appserver/internal/server"
	"github.com/exemplo/appserver/internal/utils"
)

func newConsoleHandler(out *os.File, level slog.Leveler) slog.Handler {
	return tint.NewHandler(out, &tint.Options{
		Level:      level,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		NoColor:    !isatty.IsTerminal(out.Fd()),
	})
}

// newLogHandler fans out to the console handler and, when configured, a
// JSON log file. The returned closer releases the file.
func newLogHandler(console slog.Handler, cfg *server.LogConfig) (slog.Handler, io.Closer, error) {
	if cfg.File == "" {
		return console, io.NopCloser(nil), nil
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return utils.NewMultiLogHandler(console, fileHandler), file, nil
}

// setupLogger installs the default logger for cfg and returns its cleanup.
func setupLogger(cfg *server.LogConfig) (func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	handler, closer, err := newLogHandler(newConsoleHandler(os.Stdout, level), cfg)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(handler))
	return func() { _ = closer.Close() }, nil
}
