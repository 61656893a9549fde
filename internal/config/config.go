package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
}

type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type SessionConfig struct {
	Driver       string `yaml:"driver"`
	SQLitePath   string `yaml:"sqlite_path"`
	PostgresURL  string `yaml:"postgres_url"`
	CookieName   string `yaml:"cookie_name"`
	CookieSecure bool   `yaml:"cookie_secure"`
	Secret       string `yaml:"secret"`
	MaxAgeHours  int    `yaml:"max_age_hours"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":3000",
			ReadTimeoutSec:  5,
			WriteTimeoutSec: 10,
		},
		API: APIConfig{
			BaseURL:    "http://127.0.0.1:5000/api",
			TimeoutSec: 8,
		},
		Session: SessionConfig{
			Driver:      DriverSQLite,
			SQLitePath:  "data/sessions.db",
			CookieName:  "dayflow_session",
			MaxAgeHours: 7 * 24,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then the
// environment.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		buf, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(buf, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.HTTP.Addr = getEnv("CLIENT_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ReadTimeoutSec = getEnvInt("HTTP_READ_TIMEOUT_SEC", cfg.HTTP.ReadTimeoutSec)
	cfg.HTTP.WriteTimeoutSec = getEnvInt("HTTP_WRITE_TIMEOUT_SEC", cfg.HTTP.WriteTimeoutSec)
	cfg.API.BaseURL = getEnv("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.TimeoutSec = getEnvInt("API_TIMEOUT_SEC", cfg.API.TimeoutSec)
	cfg.Session.Driver = strings.ToLower(getEnv("SESSION_DRIVER", cfg.Session.Driver))
	cfg.Session.SQLitePath = getEnv("SESSION_SQLITE_PATH", cfg.Session.SQLitePath)
	cfg.Session.PostgresURL = getEnv("SESSION_POSTGRES_URL", cfg.Session.PostgresURL)
	cfg.Session.CookieName = getEnv("SESSION_COOKIE_NAME", cfg.Session.CookieName)
	cfg.Session.CookieSecure = getEnvBool("SESSION_COOKIE_SECURE", cfg.Session.CookieSecure)
	cfg.Session.Secret = getEnv("SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.MaxAgeHours = getEnvInt("SESSION_MAX_AGE_HOURS", cfg.Session.MaxAgeHours)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("CLIENT_ADDR must not be empty")
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT_SEC must be > 0")
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		return fmt.Errorf("HTTP_WRITE_TIMEOUT_SEC must be > 0")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	if c.API.TimeoutSec <= 0 {
		return fmt.Errorf("API_TIMEOUT_SEC must be > 0")
	}
	switch c.Session.Driver {
	case DriverSQLite:
		if c.Session.SQLitePath == "" {
			return fmt.Errorf("SESSION_SQLITE_PATH must not be empty for the sqlite driver")
		}
	case DriverPostgres:
		if c.Session.PostgresURL == "" {
			return fmt.Errorf("SESSION_POSTGRES_URL must not be empty for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("SESSION_DRIVER must be one of sqlite, postgres, memory (got %q)", c.Session.Driver)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if c.Session.MaxAgeHours <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE_HOURS must be > 0")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c HTTPConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSec) * time.Second
}

func (c HTTPConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// MaxAge is both the cookie lifetime and the idle age after which stored
// sessions are swept.
func (c SessionConfig) MaxAge() time.Duration {
	return time.Duration(c.MaxAgeHours) * time.Hour
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Level)
	}
	return level, nil
}

// NewLogger returns a text logger on stderr at the configured level.
func (c LogConfig) NewLogger() *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func getEnv(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return fallback
	}
	return strings.TrimSpace(val)
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}
	return b
}
