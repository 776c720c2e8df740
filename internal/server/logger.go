// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

package server

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// setupLogger configures the global slog logger from the log config.
func setupLogger(level, format string, production bool) {
	slog.SetDefault(slog.New(newLogHandler(os.Stdout, level, format, production)))
}

// newLogHandler picks the slog handler for the given settings. An empty
// format defaults to JSON in production and colored text everywhere else,
// so log collectors get structured output without extra configuration.
func newLogHandler(w io.Writer, level, format string, production bool) slog.Handler {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	if format == "" {
		if production {
			format = "json"
		} else {
			format = "text"
		}
	}

	if format == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})
	}
	return tint.NewHandler(w, &tint.Options{Level: logLevel})
}
