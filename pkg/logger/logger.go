package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog so every component emits the same JSON shape
type Logger struct {
	*slog.Logger
}

// New creates a JSON logger on stdout. The level comes from LOG_LEVEL
// (debug, info, warn, error) and defaults to info.
func New() *Logger {
	return NewWithLevel(parseLevel(os.Getenv("LOG_LEVEL")))
}

// NewWithLevel creates a new logger with specified level
func NewWithLevel(level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})),
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
