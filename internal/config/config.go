package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is shared by every esake binary.
type Config struct {
	BaseURL               string
	DataDir               string
	OutputDir             string
	DBDriver              string
	DatabaseDSN           string
	RedisURL              string
	RESTPort              string
	WSPort                string
	RenderWait            time.Duration
	Workers               int
	LogLevel              string
	LegacyAttemptedPoints bool
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  Could not load .env: %v", err)
	}

	return Config{
		BaseURL:               getEnv("ESAKE_BASE_URL", "http://www.esake.gr"),
		DataDir:               getEnv("DATA_DIR", "data"),
		OutputDir:             getEnv("OUTPUT_DIR", "out"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:           getEnv("DATABASE_DSN", "file:esake.db?_pragma=foreign_keys(1)"),
		RedisURL:              getEnv("REDIS_URL", ""),
		RESTPort:              getEnv("REST_PORT", "8080"),
		WSPort:                getEnv("WS_PORT", "8081"),
		RenderWait:            getDuration("RENDER_WAIT", 5*time.Second),
		Workers:               getInt("WORKERS", 3),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LegacyAttemptedPoints: getBool("LEGACY_ATTEMPTED_POINTS", false),
	}
}

// Debug reports whether verbose diagnostics are enabled.
func (c Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}
