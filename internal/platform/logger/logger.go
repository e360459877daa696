package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON structured logger writing to stdout. The service name
// is attached to every record so aggregated logs stay filterable.
func New(service string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(handler).With("service", service)
}
