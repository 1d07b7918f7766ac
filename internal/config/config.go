package config

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	SQLite3Path string `env:"SQLITE3_PATH, default=eventfinder.db"`

	Environment string `env:"ENVIRONMENT, default=development"`

	// API
	API struct {
		Port string `env:"PORT, default=8080"`
		Addr string `env:"ADDR"`
	} `env:", prefix=API_"`

	// Ticketmaster Discovery API
	Ticketmaster struct {
		APIKey  string        `env:"API_KEY"`
		BaseURL string        `env:"BASE_URL, default=https://app.ticketmaster.com/discovery/v2"`
		Timeout time.Duration `env:"TIMEOUT, default=10s"`
	} `env:", prefix=TICKETMASTER_"`

	// Background jobs
	River struct {
		SQLite3Path string `env:"SQLITE3_PATH, default=eventfinder_river.db"`
		MaxWorkers  int    `env:"MAX_WORKERS, default=4"`
	} `env:", prefix=RIVER_"`

	ClassificationsRefreshInterval time.Duration `env:"CLASSIFICATIONS_REFRESH_INTERVAL, default=6h"`

	Otel struct {
		CollectorAddr string `env:"COLLECTOR_ADDR"`
		ServiceName   string `env:"SERVICE_NAME, default=eventfinder"`
	} `env:", prefix=OTEL_"`

	Log struct {
		Level  string `env:"LEVEL, default=info"`
		Format string `env:"FORMAT, default=text"`
	} `env:", prefix=LOG_"`
}

func GetConfig(ctx context.Context) (*Config, error) {
	return getConfig(ctx, envconfig.OsLookuper())
}

func getConfig(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var c Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &c,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	return &c, nil
}

// NewLogger builds the process logger from the LOG_* settings.
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
