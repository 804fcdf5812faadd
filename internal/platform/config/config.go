package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration.
type Config struct {
	Server     Server
	Validation Validation
	Audit      Audit
	Redis      RedisConfig
	Database   DatabaseConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	LogLevel       string
	RequestTimeout time.Duration
}

// Validation configures the rule engine and batch endpoint.
type Validation struct {
	CarrierSize      string
	MaxBatchSize     int
	BatchConcurrency int
}

// Audit configures the validation audit trail.
type Audit struct {
	Buffer    int
	RecordTTL time.Duration
}

// RedisConfig configures the optional Redis audit store. An empty URL
// disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the optional Postgres audit store. An empty URL
// disables Postgres.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var p parser
	cfg := Config{
		Server: Server{
			Addr:           p.str("APPR_ADDR", ":8080"),
			LogLevel:       p.str("APPR_LOG_LEVEL", "info"),
			RequestTimeout: p.duration("APPR_REQUEST_TIMEOUT", 30*time.Second),
		},
		Validation: Validation{
			CarrierSize:      strings.ToLower(p.str("APPR_CARRIER_SIZE", "large")),
			MaxBatchSize:     p.positiveInt("APPR_MAX_BATCH_SIZE", 100),
			BatchConcurrency: p.positiveInt("APPR_BATCH_CONCURRENCY", 8),
		},
		Audit: Audit{
			Buffer:    p.positiveInt("APPR_AUDIT_BUFFER", 256),
			RecordTTL: p.duration("APPR_AUDIT_TTL", 30*24*time.Hour),
		},
		Redis: RedisConfig{
			URL:          p.str("REDIS_URL", ""),
			PoolSize:     p.positiveInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.positiveInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			URL:             p.str("DATABASE_URL", ""),
			MaxOpenConns:    p.positiveInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    p.positiveInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: p.duration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
	}

	if cfg.Validation.CarrierSize != "large" && cfg.Validation.CarrierSize != "small" {
		p.fail("APPR_CARRIER_SIZE", cfg.Validation.CarrierSize, "must be large or small")
	}
	if p.err != nil {
		return Config{}, p.err
	}
	return cfg, nil
}

// parser collects every malformed variable instead of stopping at the first.
type parser struct {
	err error
}

func (p *parser) fail(key, value, reason string) {
	p.err = errors.Join(p.err, fmt.Errorf("%s=%q: %s", key, value, reason))
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) positiveInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		p.fail(key, raw, "must be a positive integer")
		return def
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		p.fail(key, raw, "must be a positive duration")
		return def
	}
	return d
}
