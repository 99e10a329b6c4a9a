// Package config loads the daemon's settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zephyrtronium/procalc"
	"github.com/zephyrtronium/procalc/internal/history"
)

// Config holds the daemon's settings.
type Config struct {
	Addr            string
	Environment     string
	LogLevel        string
	Precision       int
	HistoryCapacity int
	ShutdownTimeout time.Duration

	// RedisAddr selects the Redis history store when non-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	// OTLPEndpoint is the host:port of an OTLP gRPC collector. Telemetry is
	// not exported when it is empty.
	OTLPEndpoint string
}

// Load reads the configuration from environment variables, applying defaults
// for unset or blank ones.
func Load() (Config, error) {
	var err error
	cfg := Config{
		Addr:          GetenvOrDefault("PROCALC_ADDR", ":8080"),
		Environment:   GetenvOrDefault("PROCALC_ENV", "production"),
		LogLevel:      GetenvOrDefault("LOG_LEVEL", "info"),
		RedisAddr:     GetenvOrDefault("REDIS_ADDR", ""),
		RedisPassword: GetenvOrDefault("REDIS_PASSWORD", ""),
		RedisKey:      GetenvOrDefault("REDIS_HISTORY_KEY", history.DefaultRedisKey),
		OTLPEndpoint:  GetenvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
	if cfg.Precision, err = getenvInt("PROCALC_PRECISION", procalc.DefaultPrec); err != nil {
		return Config{}, err
	}
	if cfg.HistoryCapacity, err = getenvInt("PROCALC_HISTORY_CAPACITY", history.DefaultCapacity); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = getenvInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	s := GetenvOrDefault("PROCALC_SHUTDOWN_TIMEOUT", "10s")
	if cfg.ShutdownTimeout, err = time.ParseDuration(s); err != nil {
		return Config{}, fmt.Errorf("config: PROCALC_SHUTDOWN_TIMEOUT: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("config: listen address is required")
	case c.Precision < 1:
		return fmt.Errorf("config: precision %d must be positive", c.Precision)
	case c.HistoryCapacity < 1:
		return fmt.Errorf("config: history capacity %d must be positive", c.HistoryCapacity)
	case c.RedisDB < 0:
		return fmt.Errorf("config: redis db %d must not be negative", c.RedisDB)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("config: shutdown timeout %v must be positive", c.ShutdownTimeout)
	}
	return nil
}

// GetenvOrDefault returns the value of the environment variable key, or def
// if it is unset or blank.
func GetenvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) (int, error) {
	s := GetenvOrDefault(key, "")
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
