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
	LogLevel    string

	HTTPAddr string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	// FetchTimeoutSeconds bounds every counter fetch. A zero value is
	// treated as a configuration defect and replaced with the default.
	FetchTimeoutSeconds int

	// RefreshIntervalMinutes drives the background refresh loop. Zero
	// disables scheduled refresh; on-demand refresh stays available.
	RefreshIntervalMinutes int

	// RefreshParallelism caps concurrent device fetches. 1 keeps the
	// default sequential, failure-isolated walk.
	RefreshParallelism int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "printledger"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		DBType:            getenv("DATABASE_TYPE", "sqlite"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "printledger.db"),
		DBUser:            getenv("DATABASE_USER", "printledger"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 0),

		FetchTimeoutSeconds:    getenvInt("FETCH_TIMEOUT_SECONDS", 10),
		RefreshIntervalMinutes: getenvInt("REFRESH_INTERVAL_MINUTES", 0),
		RefreshParallelism:     getenvInt("REFRESH_PARALLELISM", 1),
	}

	if cfg.FetchTimeoutSeconds <= 0 {
		cfg.FetchTimeoutSeconds = 10
	}
	if cfg.RefreshParallelism < 1 {
		cfg.RefreshParallelism = 1
	}

	return cfg
}

// Module exposes the loaded configuration to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
