// ABOUTME: Configuration loader for the greener client and its dev server
// ABOUTME: Loads settings from environment variables (and an optional .env) with defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment selects the default API base URL
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Default base URLs per environment
const (
	DevelopmentAPIURL = "http://localhost:5000"
	ProductionAPIURL  = "https://api.onestepgreener.com"
)

// Storage backends for the local session store
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	// Client
	Environment    string
	APIURL         string
	ConfigDir      string
	Storage        string
	RequestTimeout time.Duration
	DeviceToken    string // push token registered after session restore, empty disables
	Platform       string

	// Dev server
	DevServerPort string
	DevOTPTTL     time.Duration
	DevRedisAddr  string // empty keeps OTPs in memory
}

// Load reads an optional .env file and then the process environment.
// Variables already present in the environment win over .env entries.
func Load() (*Config, error) {
	// Missing .env is the normal case
	_ = godotenv.Load()

	env := strings.ToLower(getEnv("GREENER_ENV", EnvDevelopment))
	if env != EnvDevelopment && env != EnvProduction {
		return nil, fmt.Errorf("GREENER_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, env)
	}

	cfg := &Config{
		Environment:    env,
		APIURL:         strings.TrimRight(getEnv("GREENER_API_URL", defaultAPIURL(env)), "/"),
		ConfigDir:      getEnv("GREENER_CONFIG_DIR", DefaultConfigDir()),
		Storage:        strings.ToLower(getEnv("GREENER_STORAGE", StorageFile)),
		RequestTimeout: time.Duration(getEnvInt("GREENER_REQUEST_TIMEOUT", 60)) * time.Second,
		DeviceToken:    os.Getenv("GREENER_DEVICE_TOKEN"),
		Platform:       getEnv("GREENER_PLATFORM", "terminal"),

		DevServerPort: getEnv("DEV_SERVER_PORT", "5000"),
		DevOTPTTL:     time.Duration(getEnvInt("DEV_OTP_TTL", 300)) * time.Second,
		DevRedisAddr:  os.Getenv("DEV_REDIS_ADDR"),
	}

	switch cfg.Storage {
	case StorageFile, StorageSQLite, StorageMemory:
	default:
		return nil, fmt.Errorf("GREENER_STORAGE must be one of file, sqlite, memory, got %q", cfg.Storage)
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("GREENER_REQUEST_TIMEOUT must be positive")
	}

	return cfg, nil
}

// DefaultConfigDir returns the default config directory under XDG_CONFIG_HOME
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "greener")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "greener")
}

func defaultAPIURL(env string) string {
	if env == EnvProduction {
		return ProductionAPIURL
	}
	return DevelopmentAPIURL
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
