package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New builds a JSON slog logger at the given level ("debug", "info",
// "warn", "error"). The logger is constructed once in main and passed
// down; packages never reach for a process global.
func New(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})
	return slog.New(handler)
}
