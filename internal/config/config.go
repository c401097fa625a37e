package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "https://api.nasa.gov/planetary/earth/assets"
	// NASA's documented public key; rate-limited, but requires no signup.
	defaultAPIKey = "DEMO_KEY"
)

// Config holds all estimator settings. Values come from, in increasing
// precedence: built-in defaults, the YAML file named by FLYBY_CONFIG_FILE,
// and environment variables (including a local .env file).
type Config struct {
	EarthAPIBaseURL string
	EarthAPIKey     string
	EarthAPITimeout time.Duration

	LogLevel  string
	LogFormat string

	// Optional Prometheus Pushgateway for run metrics.
	PushgatewayURL  string
	MetricsJob      string
	ShutdownTimeout time.Duration
}

// fileConfig is the YAML layout of FLYBY_CONFIG_FILE.
type fileConfig struct {
	EarthAPI struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Timeout string `yaml:"timeout"`
	} `yaml:"earth_api"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Metrics struct {
		PushgatewayURL string `yaml:"pushgateway_url"`
		Job            string `yaml:"job"`
	} `yaml:"metrics"`
}

// Load reads a .env file if present, then configuration from the optional
// YAML file and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}
	return LoadFile(os.Getenv("FLYBY_CONFIG_FILE"))
}

// LoadFile reads configuration from the YAML file at path (skipped when path
// is empty) and overlays environment variables, applying defaults where unset.
func LoadFile(path string) (*Config, error) {
	var fc fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	timeoutStr := sharedcfg.EnvOrDefault("EARTH_API_TIMEOUT", orDefault(fc.EarthAPI.Timeout, "0s"))
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout < 0 {
		return nil, errors.New("invalid EARTH_API_TIMEOUT")
	}

	cfg := &Config{
		EarthAPIBaseURL: sharedcfg.EnvOrDefault("EARTH_API_BASE_URL", orDefault(fc.EarthAPI.BaseURL, defaultBaseURL)),
		EarthAPIKey:     sharedcfg.EnvOrDefault("NASA_API_KEY", orDefault(fc.EarthAPI.APIKey, defaultAPIKey)),
		EarthAPITimeout: timeout,
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", orDefault(fc.Log.Level, "info")),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", orDefault(fc.Log.Format, "text")),
		PushgatewayURL:  sharedcfg.EnvOrDefault("PUSHGATEWAY_URL", fc.Metrics.PushgatewayURL),
		MetricsJob:      sharedcfg.EnvOrDefault("METRICS_JOB", orDefault(fc.Metrics.Job, "flyby")),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want json or text", cfg.LogFormat)
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
