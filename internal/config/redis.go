package config

import (
	"errors"
	"os"
	"strconv"
)

const (
	defaultRedisAddr = "localhost:6379"
	defaultRedisDB   = 0
)

var (
	ErrRedisAddrMissing = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB   = errors.New("REDIS_DB must be a valid integer")
)

// RedisConfig configures the store that holds all reminder state: spec
// records, medication entry lists, and the notification handle batches
// used for cancellation.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
}

func LoadRedisConfig() (*RedisConfig, error) {
	cfg := &RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       defaultRedisDB,
		TLS:      os.Getenv("REDIS_TLS") == "true",
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultRedisAddr
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, ErrInvalidRedisDB
		}
		cfg.DB = db
	}

	return cfg, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
