package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	BusinessDay BusinessDayConfig
	Payroll     PayrollConfig
	Jobs        JobsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
	MetricsEnabled bool
}

// BusinessDayConfig decides which day a clock-in counts toward.
type BusinessDayConfig struct {
	StartHour int
}

type PayrollConfig struct {
	CurrencyPlaces int32
}

type JobsConfig struct {
	OpenSessionInterval time.Duration
	StaleSessionAfter   time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shopclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "shopclock"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "UTC"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
		MetricsEnabled: metricsEnabled,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Business day and payroll
	startHour, err := strconv.Atoi(getEnv("BUSINESS_DAY_START_HOUR", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_DAY_START_HOUR: %w", err)
	}
	config.BusinessDay = BusinessDayConfig{StartHour: startHour}

	places, err := strconv.Atoi(getEnv("PAYROLL_CURRENCY_PLACES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_CURRENCY_PLACES: %w", err)
	}
	config.Payroll = PayrollConfig{CurrencyPlaces: int32(places)}

	// Background jobs
	interval, err := time.ParseDuration(getEnv("OPEN_SESSION_CHECK_INTERVAL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPEN_SESSION_CHECK_INTERVAL: %w", err)
	}
	staleAfter, err := time.ParseDuration(getEnv("STALE_SESSION_AFTER", "16h"))
	if err != nil {
		return nil, fmt.Errorf("invalid STALE_SESSION_AFTER: %w", err)
	}
	config.Jobs = JobsConfig{
		OpenSessionInterval: interval,
		StaleSessionAfter:   staleAfter,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.BusinessDay.StartHour < 0 || c.BusinessDay.StartHour > 23 {
		return fmt.Errorf("BUSINESS_DAY_START_HOUR must be between 0 and 23")
	}
	if c.Payroll.CurrencyPlaces < 0 || c.Payroll.CurrencyPlaces > 4 {
		return fmt.Errorf("PAYROLL_CURRENCY_PLACES must be between 0 and 4")
	}
	if c.Jobs.OpenSessionInterval <= 0 {
		return fmt.Errorf("OPEN_SESSION_CHECK_INTERVAL must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves APP_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// LogLevel maps LOG_LEVEL onto slog, defaulting to info.
func (c *Config) LogLevel() slog.Level {
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

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
