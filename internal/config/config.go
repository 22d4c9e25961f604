package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelFromEnv())
}

// LevelFromEnv picks the log level every package logger starts at. A valid
// LOG_LEVEL wins; otherwise APP_ENV decides.
func LevelFromEnv() logrus.Level {
	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		return level
	}
	switch os.Getenv("APP_ENV") {
	case "", "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Port           int           `json:"port"`
	Host           string        `json:"host"`
	Environment    string        `json:"environment"`
	RequestTimeout time.Duration `json:"request_timeout"`
	AllowedOrigins []string      `json:"allowed_origins"`
	SeedOnStart    bool          `json:"seed_on_start"`

	// Database configuration
	DBDriver    string `json:"db_driver"`
	DatabaseURL string `json:"database_url"`
	DBHost      string `json:"db_host"`
	DBPort      string `json:"db_port"`
	DBName      string `json:"db_name"`
	DBUser      string `json:"db_user"`
	DBPassword  string `json:"db_password"`
	DBSSLMode   string `json:"db_sslmode"`
	DBPath      string `json:"db_path"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Identity provider configuration
	SupabaseURL     string        `json:"supabase_url"`
	SupabaseAnonKey string        `json:"supabase_anon_key"`
	AuthTimeout     time.Duration `json:"auth_timeout"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, Environment: %s, RequestTimeout: %s, DBDriver: %s, DatabaseURL: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], DBPath: %s, LogLevel: %s, SupabaseURL: %s, SupabaseAnonKey: [REDACTED], AuthTimeout: %s}",
		c.Port, c.Host, c.Environment, c.RequestTimeout, c.DBDriver, maskDatabaseURL(c.DatabaseURL), c.DBHost, c.DBName, c.DBUser, c.DBPath, c.LogLevel, c.SupabaseURL, c.AuthTimeout)
}

// maskDatabaseURL masks password in database URL
func maskDatabaseURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}

	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "[REDACTED_INVALID_URL]"
	}

	if parsed.User != nil {
		// Replace password with [REDACTED]
		parsed.User = url.UserPassword(parsed.User.Username(), "[REDACTED]")
	}

	return parsed.String()
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// It also validates formats like DATABASE_URL and SUPABASE_URL
// Returns an error if any required environment variable is missing or invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "postgres", "postgresql", "mysql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql)", driver)
	}

	// Only postgres takes a URL; mysql DSNs such as user:pw@tcp(host:3306)/db are not URIs.
	dbURL := GetEnvWithDefault("DATABASE_URL", "")
	if dbURL != "" && (driver == "postgres" || driver == "postgresql") {
		if _, err := url.ParseRequestURI(dbURL); err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL format: %w", err)
		}
	}

	supabaseURL := GetEnvWithDefault("SUPABASE_URL", "")
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL environment variable is required")
	}
	if _, err := url.ParseRequestURI(supabaseURL); err != nil {
		return nil, fmt.Errorf("invalid SUPABASE_URL format: %w", err)
	}

	anonKey := GetEnvWithDefault("SUPABASE_ANON_KEY", "")
	if anonKey == "" {
		return nil, errors.New("SUPABASE_ANON_KEY environment variable is required")
	}

	config := &Config{
		Port:            port,
		Host:            GetEnvWithDefault("APP_HOST", "localhost"),
		Environment:     GetEnvWithDefault("APP_ENV", "development"),
		RequestTimeout:  time.Duration(GetEnvAsType("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		AllowedOrigins:  splitList(GetEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		SeedOnStart:     GetEnvAsType("SEED_ON_START", false),
		DBDriver:        driver,
		DatabaseURL:     dbURL,
		DBHost:          GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:          GetEnvWithDefault("DB_PORT", "5432"),
		DBName:          GetEnvWithDefault("DB_NAME", "nutri_regimen"),
		DBUser:          GetEnvWithDefault("DB_USER", "user"),
		DBPassword:      GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:       GetEnvWithDefault("DB_SSLMODE", "disable"),
		DBPath:          GetEnvWithDefault("DB_PATH", "nutri_regimen.sqlite"),
		LogLevel:        GetEnvWithDefault("LOG_LEVEL", "info"),
		SupabaseURL:     strings.TrimRight(supabaseURL, "/"),
		SupabaseAnonKey: anonKey,
		AuthTimeout:     time.Duration(GetEnvAsType("AUTH_TIMEOUT_SECONDS", 5)) * time.Second,
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Debugf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	case time.Duration:
		duration, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue
		}
		return any(duration).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
