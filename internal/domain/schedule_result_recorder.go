package domain

import (
	"context"
	"time"
)

// ScheduleResultRecord captures the outcome of one compile-and-schedule
// cycle for offline analysis of batch sizes and failure rates.
type ScheduleResultRecord struct {
	RunID          string
	Category       string
	Operation      string
	RequestedCount int
	ScheduledCount int
	FailedCount    int
	CancelledCount int
	Truncated      bool
	RecordedAt     time.Time
}

type ScheduleResultRecorder interface {
	RecordResults(ctx context.Context, records []ScheduleResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
