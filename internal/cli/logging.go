package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// levelRouter is a slog.Handler that sends records at or above the
// console level to the console and every record to the log file, if any.
// Views own stdout, so the console is stderr.
type levelRouter struct {
	console      slog.Handler
	consoleLevel slog.Level
	file         slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	if lr.file != nil && level >= slog.LevelDebug {
		return true
	}
	return level >= lr.consoleLevel
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	if lr.file != nil {
		errs = append(errs, lr.file.Handle(ctx, r))
	}
	if r.Level >= lr.consoleLevel {
		errs = append(errs, lr.console.Handle(ctx, r))
	}
	return errors.Join(errs...)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &levelRouter{console: lr.console.WithAttrs(attrs), consoleLevel: lr.consoleLevel}
	if lr.file != nil {
		next.file = lr.file.WithAttrs(attrs)
	}
	return next
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	next := &levelRouter{console: lr.console.WithGroup(name), consoleLevel: lr.consoleLevel}
	if lr.file != nil {
		next.file = lr.file.WithGroup(name)
	}
	return next
}

// setupLogger installs the default logger. Records at level and above go
// to console; if logPath is non-empty, all levels are also appended to
// that file. The returned cleanup closes the log file.
func setupLogger(console io.Writer, level slog.Level, logPath string) (func(), error) {
	handler := &levelRouter{
		console:      slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
		consoleLevel: level,
	}
	cleanup := func() {}

	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		handler.file = slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}
