// Package config resolves the InternTrack server configuration. Values come
// from defaults, then an optional YAML file (CONFIG_FILE), then environment
// variables (a .env file is honored in development). The database DSN can
// additionally be pulled from an encrypted SSM parameter.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         string `yaml:"port"`
	StoreDriver  string `yaml:"storeDriver"` // memory, mysql or postgres
	DSN          string `yaml:"dsn"`
	SnapshotPath string `yaml:"snapshotPath"` // memory store only

	JWTSecret string        `yaml:"jwtSecret"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`

	ShiftStart   string `yaml:"shiftStart"`
	GraceMinutes int    `yaml:"graceMinutes"`

	ScreenshotStorage string `yaml:"screenshotStorage"` // local or s3
	UploadDir         string `yaml:"uploadDir"`
	S3Bucket          string `yaml:"s3Bucket"`

	SlackToken       string `yaml:"slackToken"`
	SlackInfoChannel string `yaml:"slackInfoChannel"`

	CORSOrigins []string `yaml:"corsOrigins"`
}

func defaults() *Config {
	return &Config{
		Port:              "5000",
		StoreDriver:       "memory",
		TokenTTL:          7 * 24 * time.Hour,
		ShiftStart:        "09:00",
		GraceMinutes:      15,
		ScreenshotStorage: "local",
		UploadDir:         "uploads",
		CORSOrigins:       []string{"*"},
	}
}

// Load builds the effective configuration.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	setString(&cfg.Port, "PORT")
	setString(&cfg.StoreDriver, "STORE_DRIVER")
	setString(&cfg.DSN, "DSN")
	setString(&cfg.SnapshotPath, "SNAPSHOT_PATH")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.ShiftStart, "SHIFT_START")
	setString(&cfg.ScreenshotStorage, "SCREENSHOT_STORAGE")
	setString(&cfg.UploadDir, "UPLOAD_DIR")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.SlackToken, "SLACK_BOT_TOKEN")
	setString(&cfg.SlackInfoChannel, "SLACK_INFO_CHANNEL")

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}
	if v := os.Getenv("GRACE_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse GRACE_MINUTES: %w", err)
		}
		cfg.GraceMinutes = n
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}

	if param := os.Getenv("SSM_DB_PARAM"); param != "" {
		dsn, err := loadDSNFromSSM(ctx, param, cfg.StoreDriver)
		if err != nil {
			return nil, err
		}
		cfg.DSN = dsn
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.StoreDriver != "memory" && cfg.DSN == "" {
		return nil, fmt.Errorf("DSN must be set for store driver %q", cfg.StoreDriver)
	}
	return cfg, nil
}

func setString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}
