// Package log configures the process-wide slog logger and names the
// components that tag every log line.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// Standard component names, attached as the "component" attribute.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentDataset = "dataset"
	ComponentAdvice  = "advice"
	ComponentEvents  = "events"
	ComponentWorker  = "worker"
)

// Setup builds the root logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default. Text output unless LOG_FORMAT=json.
func Setup() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ForComponent tags a logger with a component name.
func ForComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
