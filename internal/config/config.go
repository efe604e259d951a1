package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

// Enabled reports whether outbound mail is configured at all; without a host
// the server falls back to the no-op notifier.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	SMTP     SMTPConfig
}

// NewConfig loads an optional .env file and then reads the environment.
// Database credentials are required; everything else has a default.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	cfg := &Config{}

	cfg.App.Port = getEnv("APP_PORT", "8080")

	cfg.Postgres.Host = os.Getenv("DB_HOST")
	cfg.Postgres.Port = getEnv("DB_PORT", "5432")
	cfg.Postgres.User = os.Getenv("DB_USER")
	cfg.Postgres.Password = os.Getenv("DB_PASSWORD")
	cfg.Postgres.DBName = os.Getenv("DB_NAME")
	cfg.Postgres.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Postgres.MigrationsPath = getEnv("DB_MIGRATIONS_PATH", "migrations")

	for _, required := range []struct {
		key   string
		value string
	}{
		{"DB_HOST", cfg.Postgres.Host},
		{"DB_USER", cfg.Postgres.User},
		{"DB_PASSWORD", cfg.Postgres.Password},
		{"DB_NAME", cfg.Postgres.DBName},
	} {
		if required.value == "" {
			return nil, fmt.Errorf("config: %s is required", required.key)
		}
	}

	maxConns, err := getEnvInt32("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt32("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	cfg.Postgres.MaxConns = maxConns
	cfg.Postgres.MinConns = minConns

	lifetime := getEnv("DB_MAX_CONN_LIFETIME", "30m")
	cfg.Postgres.MaxConnLifetime, err = time.ParseDuration(lifetime)
	if err != nil {
		return nil, fmt.Errorf("config: invalid DB_MAX_CONN_LIFETIME %q: %w", lifetime, err)
	}

	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	cfg.SMTP.Port = getEnv("SMTP_PORT", "587")
	cfg.SMTP.From = os.Getenv("SMTP_FROM")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, value, err)
	}
	return int32(parsed), nil
}
