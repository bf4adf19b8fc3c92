// Package config reads runtime settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AppEnv   string
	DBPath   string
	HTTPAddr string
	LogLevel string

	// StaticPath is an optional directory of frontend files served at "/".
	StaticPath string

	// CORSOrigin is the one foreign origin allowed to call the API, such as a
	// frontend dev server. Empty means same-origin only.
	CORSOrigin string

	AWSRegion          string
	BackupBucket       string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// ErrBackupDisabled is returned by ValidateBackup when no bucket is configured.
var ErrBackupDisabled = errors.New("BACKUP_BUCKET is not set")

// Load reads .env.<APP_ENV> and then .env (neither needs to exist), and builds the
// configuration from the environment. Variables already set in the process win
// over values in the files.
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err == nil {
		slog.Debug("Loaded configuration", "file", envFile)
	}
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded configuration", "file", ".env")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		DBPath:             getEnv("DB_PATH", "./data/serralheria.db"),
		HTTPAddr:           getEnv("HTTP_ADDR", "127.0.0.1:8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StaticPath:         getEnv("STATIC_PATH", ""),
		CORSOrigin:         getEnv("CORS_ORIGIN", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		BackupBucket:       getEnv("BACKUP_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}
}

// Validate checks that all required configuration values are set.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("DB_PATH is required")
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("HTTP_ADDR is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: got %q", c.LogLevel)
	}
	return nil
}

// ValidateBackup checks the settings needed by the S3 backup.
// Static credentials are optional; without them the default AWS chain is used.
func (c *Config) ValidateBackup() error {
	if c.BackupBucket == "" {
		return ErrBackupDisabled
	}
	if c.AWSRegion == "" {
		return errors.New("AWS_REGION is required for backups")
	}
	if (c.AWSAccessKeyID == "") != (c.AWSSecretAccessKey == "") {
		return errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
