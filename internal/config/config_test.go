package config

import (
	"errors"
	"testing"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

func TestLoadRedisConfig_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("REDIS_TLS", "")

	cfg, err := LoadRedisConfig()
	if err != nil {
		t.Fatalf("LoadRedisConfig: %v", err)
	}
	if cfg.Addr != "localhost:6379" {
		t.Errorf("Addr = %q, want localhost:6379", cfg.Addr)
	}
	if cfg.DB != 0 {
		t.Errorf("DB = %d, want 0", cfg.DB)
	}
	if cfg.TLS {
		t.Error("TLS should default to false")
	}
}

func TestLoadRedisConfig_FromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_TLS", "true")

	cfg, err := LoadRedisConfig()
	if err != nil {
		t.Fatalf("LoadRedisConfig: %v", err)
	}
	if cfg.Addr != "redis.internal:6380" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.Password != "secret" {
		t.Errorf("Password = %q", cfg.Password)
	}
	if cfg.DB != 3 {
		t.Errorf("DB = %d, want 3", cfg.DB)
	}
	if !cfg.TLS {
		t.Error("TLS should be enabled")
	}
}

func TestLoadRedisConfig_InvalidDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Fatalf("err = %v, want ErrInvalidRedisDB", err)
	}
}

func TestRedisConfig_Validate(t *testing.T) {
	var nilCfg *RedisConfig
	if err := nilCfg.Validate(); !errors.Is(err, ErrRedisAddrMissing) {
		t.Errorf("nil config: err = %v, want ErrRedisAddrMissing", err)
	}
	if err := (&RedisConfig{}).Validate(); !errors.Is(err, ErrRedisAddrMissing) {
		t.Errorf("empty addr: err = %v, want ErrRedisAddrMissing", err)
	}
	if err := (&RedisConfig{Addr: "localhost:6379"}).Validate(); err != nil {
		t.Errorf("valid config: err = %v", err)
	}
}

func TestLoadScheduleConfig_CapsMaxPending(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"default", "", domain.MaxPendingNotifications},
		{"lowered", "10", 10},
		{"above ceiling", "200", domain.MaxPendingNotifications},
		{"non-numeric", "lots", domain.MaxPendingNotifications},
		{"zero", "0", domain.MaxPendingNotifications},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAX_PENDING_PER_BATCH", tt.value)
			cfg := LoadScheduleConfig()
			if cfg.MaxPendingPerBatch != tt.want {
				t.Errorf("MaxPendingPerBatch = %d, want %d", cfg.MaxPendingPerBatch, tt.want)
			}
		})
	}
}

func TestLoadScheduleConfig_SnoozeDelay(t *testing.T) {
	t.Setenv("SNOOZE_DELAY_MINUTES", "")
	if cfg := LoadScheduleConfig(); cfg.SnoozeDelayMinutes != 5 {
		t.Errorf("default SnoozeDelayMinutes = %d, want 5", cfg.SnoozeDelayMinutes)
	}

	t.Setenv("SNOOZE_DELAY_MINUTES", "15")
	if cfg := LoadScheduleConfig(); cfg.SnoozeDelayMinutes != 15 {
		t.Errorf("SnoozeDelayMinutes = %d, want 15", cfg.SnoozeDelayMinutes)
	}
}
