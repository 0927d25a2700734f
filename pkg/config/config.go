package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend origins. Anything that is not a local hostname talks to production.
const (
	LocalAPIBase      = "http://localhost:8000"
	ProductionAPIBase = "https://medconnect-main-3.onrender.com"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Session SessionConfig
	OTEL    OTELConfig
	Env     string
}

// APIConfig holds backend connection configuration
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds session snapshot storage configuration
type SessionConfig struct {
	Dir string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionDir := getEnv("MEDCONNECT_SESSION_DIR", "")
	if sessionDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		sessionDir = home + "/.medconnect"
	}

	return &Config{
		API: APIConfig{
			BaseURL: resolveBaseURL(),
			Timeout: time.Duration(getEnvAsInt("MEDCONNECT_API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Session: SessionConfig{
			Dir: sessionDir,
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "medconnect-client"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Env: getEnv("MEDCONNECT_ENV", "development"),
	}, nil
}

// resolveBaseURL mirrors the front end's origin selection: an explicit
// override wins, otherwise local hostnames get the dev server and everything
// else gets production.
func resolveBaseURL() string {
	if override := os.Getenv("MEDCONNECT_API_BASE"); override != "" {
		return override
	}
	return BaseURLForHost(getEnv("MEDCONNECT_HOST", "localhost"))
}

// BaseURLForHost maps a hostname to the backend origin serving it
func BaseURLForHost(host string) string {
	if host == "localhost" || host == "127.0.0.1" {
		return LocalAPIBase
	}
	return ProductionAPIBase
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
