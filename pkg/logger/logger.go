package logger

import (
	"log"
	"log/slog"
)

// New returns a stdlib logger that forwards into base, tagged with component.
// It feeds APIs that only accept *log.Logger, such as http.Server.ErrorLog.
func New(component string, base *slog.Logger) *log.Logger {
	if base == nil {
		base = slog.Default()
	}
	return slog.NewLogLogger(base.With("component", component).Handler(), slog.LevelError)
}
