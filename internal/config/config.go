package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const feeDenom = 10_000

type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string
	Pool      *Pool
}

// FromEnv reads the server configuration. The pool is loaded from the file
// named by POOL_CONFIG when set, otherwise DefaultPool is used; FEE_BPS
// overrides the pool's fee in both cases.
func FromEnv() (*Config, error) {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":1337"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	switch logFormat {
	case "":
		logFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT %q: %w", logFormat, ErrInvalidLogFormat)
	}

	pool := DefaultPool()
	if path := os.Getenv("POOL_CONFIG"); path != "" {
		var err error
		if pool, err = LoadPool(path); err != nil {
			return nil, fmt.Errorf("load pool config: %w", err)
		}
	}

	if raw := os.Getenv("FEE_BPS"); raw != "" {
		fee, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || fee >= feeDenom {
			return nil, fmt.Errorf("FEE_BPS %q: %w", raw, ErrInvalidFeeBps)
		}
		pool.FeeBps = fee
	}

	cfg := &Config{
		Addr:      addr,
		LogLevel:  logLevel,
		LogFormat: logFormat,
		Pool:      pool,
	}

	return cfg, nil
}
