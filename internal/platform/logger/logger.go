package logger

import (
	"log/slog"
	"os"
)

// New returns the service-wide structured logger. JSON output so log lines,
// including the audit-adjacent ones, are machine-parseable.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
