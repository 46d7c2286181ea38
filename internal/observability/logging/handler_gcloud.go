//go:build gcloud

package logging

import (
	"log/slog"
	"os"
)

// Cloud Logging parses severity and message from JSON payloads, so the
// gcloud build always emits JSON with the field names it expects.
func newHandler(_ Environment, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.LevelKey:
				a.Key = "severity"
				if level, ok := a.Value.Any().(slog.Level); ok && level == slog.LevelWarn {
					a.Value = slog.StringValue("WARNING")
				}
			case slog.MessageKey:
				a.Key = "message"
			case slog.TimeKey:
				a.Key = "timestamp"
			}
			return a
		},
	}

	return slog.NewJSONHandler(os.Stdout, opts)
}
