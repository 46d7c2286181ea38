package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scheduling/internal/observability/metrics"
)

const requestIDHeader = "X-Request-ID"

type GinConfig struct {
	// SkipPaths are not logged or measured (health probes, metrics).
	SkipPaths   []string
	Module      logging.Module
	HTTPMetrics *metrics.HTTPMetrics
}

// Gin returns the request middleware: assigns a request id, logs each
// completed request, and records HTTP metrics.
func Gin(cfg GinConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		if _, ok := skip[c.Request.URL.Path]; ok {
			return
		}

		duration := time.Since(start)
		status := c.Writer.Status()

		if cfg.HTTPMetrics != nil {
			cfg.HTTPMetrics.RecordRequest(c.Request.Context(),
				c.Request.Method, c.FullPath(), status, duration)
		}

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("module", string(cfg.Module)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		slog.LogAttrs(c.Request.Context(), level, "request completed", attrs...)
	}
}

// PanicRecoveryGin converts handler panics into 500 responses instead of
// tearing down the process.
func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
