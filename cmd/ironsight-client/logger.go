package main

import (
	"fmt"
	"log/slog"

	"github.com/divotmaker/ironsight/internal/logging"
)

func setupLogger(format, level string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logging.New(format, lvl, nil).With("app", "ironsight-client")
	logging.Set(l)
	return l, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}
