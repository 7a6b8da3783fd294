package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	LogLevel    string

	// StateBackend selects where tenant selection state lives: "db" or "redis".
	StateBackend string
	RedisAddr    string
	RedisDB      int

	DBType     string
	DBPath     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	DirectoryBaseURL string
	DirectoryTimeout int

	PlanFile string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "lumea"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		StateBackend: normalizeBackend(getenv("TENANT_STATE_BACKEND", StateBackendDB)),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      int(getenvInt64("REDIS_DB", 0)),

		DBType:     getenv("DATABASE_TYPE", "sqlite"),
		DBPath:     getenv("DATABASE_PATH", "lumea.db"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "lumea"),
		DBUser:     getenv("DATABASE_USER", "lumea"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		DirectoryBaseURL: strings.TrimRight(getenv("DIRECTORY_BASE_URL", "http://localhost:9000"), "/"),
		DirectoryTimeout: int(getenvInt64("DIRECTORY_TIMEOUT_SECONDS", 10)),

		PlanFile: getenv("PLAN_FILE", ""),
	}

	return cfg
}

const (
	StateBackendDB    = "db"
	StateBackendRedis = "redis"
)

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StateBackendRedis:
		return StateBackendRedis
	default:
		return StateBackendDB
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

// Module provides application configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)
