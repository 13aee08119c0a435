package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Remote   RemoteConfig
	Lookup   LookupConfig
	Sync     SyncConfig
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
	TablesFile         string
}

// RemoteConfig describes the upstream schedule source. An empty BaseURL disables remote fallback.
type RemoteConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Timeout      time.Duration
}

type LookupConfig struct {
	FallbackWindowDays int
}

type SyncConfig struct {
	Concurrency            int
	MaxConsecutiveFailures int
	CronInterval           time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:     strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "roster"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "roster.db"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "Asia/Taipei"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
		TablesFile:         getEnv("TABLES_FILE", ""),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Remote schedule source
	remoteTimeout, err := time.ParseDuration(getEnv("REMOTE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMOTE_TIMEOUT: %w", err)
	}

	config.Remote = RemoteConfig{
		BaseURL:      getEnv("REMOTE_BASE_URL", ""),
		TokenURL:     getEnv("REMOTE_TOKEN_URL", ""),
		ClientID:     getEnv("REMOTE_CLIENT_ID", ""),
		ClientSecret: getEnv("REMOTE_CLIENT_SECRET", ""),
		Scopes:       getEnvSlice("REMOTE_SCOPES"),
		Timeout:      remoteTimeout,
	}

	windowDays, err := strconv.Atoi(getEnv("LOOKUP_FALLBACK_WINDOW_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOOKUP_FALLBACK_WINDOW_DAYS: %w", err)
	}
	config.Lookup = LookupConfig{FallbackWindowDays: windowDays}

	// Sync configuration
	concurrency, err := strconv.Atoi(getEnv("SYNC_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_CONCURRENCY: %w", err)
	}
	maxFailures, err := strconv.Atoi(getEnv("SYNC_MAX_CONSECUTIVE_FAILURES", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_MAX_CONSECUTIVE_FAILURES: %w", err)
	}
	cronInterval, err := time.ParseDuration(getEnv("SYNC_CRON_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_CRON_INTERVAL: %w", err)
	}

	config.Sync = SyncConfig{
		Concurrency:            concurrency,
		MaxConsecutiveFailures: maxFailures,
		CronInterval:           cronInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case StoreDriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StoreDriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverSQLite)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if c.Remote.BaseURL != "" && c.Remote.TokenURL != "" {
		if c.Remote.ClientID == "" || c.Remote.ClientSecret == "" {
			return fmt.Errorf("REMOTE_CLIENT_ID and REMOTE_CLIENT_SECRET are required when REMOTE_TOKEN_URL is set")
		}
	}
	if c.Lookup.FallbackWindowDays < 0 {
		return fmt.Errorf("LOOKUP_FALLBACK_WINDOW_DAYS must not be negative")
	}
	if c.Sync.Concurrency < 1 {
		return fmt.Errorf("SYNC_CONCURRENCY must be at least 1")
	}
	if c.Sync.MaxConsecutiveFailures < 1 {
		return fmt.Errorf("SYNC_MAX_CONSECUTIVE_FAILURES must be at least 1")
	}
	return nil
}

// Location returns the configured time zone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel parses LOG_LEVEL, defaulting to info for unknown values.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
