//go:build !gcloud

package logging

import (
	"log/slog"
	"os"
)

func newHandler(env Environment, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	if env == EnvProd {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.NewTextHandler(os.Stdout, opts)
}
