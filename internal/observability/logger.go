package observability

import (
	"log/slog"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the service logger writing to stdout and installs it as the
// slog default. Format is "json" or "text"; unknown levels fall back to info.
func NewLogger(level, format string) *slog.Logger {
	logger := sharedobs.NewLogger(level, format).With("service", ServiceName)
	slog.SetDefault(logger)
	return logger
}
