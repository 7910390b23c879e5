package logger

import (
	"log/slog"
	"os"
)

// New returns a structured stdout logger. Handlers and services log through
// slog so request IDs and error detail stay machine-parseable.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
