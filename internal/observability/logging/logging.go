package logging

import "log/slog"

// Environment selects the log output shape: human-readable text for dev,
// structured JSON for prod.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module labels a log record with the subsystem that emitted it.
type Module string

// ServiceInfo identifies the running service in logs and traces.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// NewLogger builds the process-wide logger with the service identity and
// default module attached to every record.
func NewLogger(env Environment, level slog.Level, info ServiceInfo, module Module) *slog.Logger {
	handler := newHandler(env, level)

	attrs := []any{
		slog.String("service", info.Name),
		slog.String("module", string(module)),
	}
	if info.Version != "" {
		attrs = append(attrs, slog.String("version", info.Version))
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return slog.New(handler).With(attrs...)
}
