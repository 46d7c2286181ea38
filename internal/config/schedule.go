package config

import (
	"os"
	"strconv"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

const (
	maxPendingPerBatchEnv = "MAX_PENDING_PER_BATCH"
	snoozeDelayMinutesEnv = "SNOOZE_DELAY_MINUTES"

	defaultSnoozeDelayMinutes = 5
)

type ScheduleConfig struct {
	// MaxPendingPerBatch caps one compiled batch. It can be lowered below
	// the platform ceiling but never raised above it.
	MaxPendingPerBatch int
	SnoozeDelayMinutes int
}

func LoadScheduleConfig() *ScheduleConfig {
	maxPending := domain.MaxPendingNotifications
	if v := os.Getenv(maxPendingPerBatchEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= domain.MaxPendingNotifications {
			maxPending = parsed
		}
	}

	snoozeDelay := defaultSnoozeDelayMinutes
	if v := os.Getenv(snoozeDelayMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			snoozeDelay = parsed
		}
	}

	return &ScheduleConfig{
		MaxPendingPerBatch: maxPending,
		SnoozeDelayMinutes: snoozeDelay,
	}
}
