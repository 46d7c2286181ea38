package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult is the outcome of probing a single dependency.
type CheckResult struct {
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthStatus struct {
	Status  Status                 `json:"status"`
	Version string                 `json:"version,omitempty"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Checker probes the dependencies the scheduling core cannot run without.
// Redis holds every reminder spec and handle batch, so an unreachable
// Redis means the service is not ready.
type Checker struct {
	redisClient *redis.Client
	version     string
}

func NewChecker(redisClient *redis.Client, version string) *Checker {
	return &Checker{
		redisClient: redisClient,
		version:     version,
	}
}

func (c *Checker) Check(ctx context.Context) *HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	status := &HealthStatus{
		Status:  StatusHealthy,
		Version: c.version,
		Checks:  make(map[string]CheckResult),
	}

	if c.redisClient != nil {
		start := time.Now()
		if err := c.redisClient.Ping(checkCtx).Err(); err != nil {
			status.Status = StatusUnhealthy
			status.Checks["redis"] = CheckResult{
				Status: StatusUnhealthy,
				Error:  err.Error(),
			}
		} else {
			status.Checks["redis"] = CheckResult{
				Status:    StatusHealthy,
				LatencyMs: time.Since(start).Milliseconds(),
			}
		}
	}

	return status
}

// LiveHandler answers liveness probes without touching dependencies.
func (c *Checker) LiveHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// ReadyHandler answers readiness probes with the full dependency check.
func (c *Checker) ReadyHandler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := c.Check(ctx.Request.Context())

		httpStatus := http.StatusOK
		if status.Status != StatusHealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		ctx.JSON(httpStatus, status)
	}
}
