package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLiteConnection   = "file:pharmacy.db"
	defaultPostgresConnection = "postgres://postgres@localhost:5432/pharmacy?sslmode=disable"
)

// Config holds application configuration values.
type Config struct {
	Env      string
	HTTPPort string
	Log      LogConfig
	DB       DBConfig
	Auth     AuthConfig

	ExpiryWindowDays int
	CORSOrigins      []string
	SeedDir          string
}

type LogConfig struct {
	Level  string
	Format string
}

// DBConfig is the resolved connection target.
type DBConfig struct {
	Driver     string
	Connection string
	// Defaulted is set when no connection string was configured.
	Defaulted bool
}

type AuthConfig struct {
	Secret        string
	AdminUsername string
	AdminPassword string
	TokenTTL      time.Duration
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	env := getEnv("ENV", "development")

	port := getEnv("HTTP_PORT", "8080")
	if _, err := strconv.Atoi(port); err != nil {
		port = "8080"
	}

	windowDays := getEnvInt("EXPIRY_WINDOW_DAYS", 30)
	if windowDays <= 0 {
		windowDays = 30
	}

	return Config{
		Env:      env,
		HTTPPort: port,
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DB: resolveDB(getEnv("PHARMACY_DRIVER", DriverSQLite), os.Getenv("PHARMACY_CONNECTION")),
		Auth: AuthConfig{
			Secret:        getEnv("SECRET", "dev_secret"),
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
			TokenTTL:      getEnvDuration("TOKEN_TTL", 24*time.Hour),
		},
		ExpiryWindowDays: windowDays,
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"*"}),
		SeedDir:          getEnv("SEED_DIR", "assets"),
	}
}

// resolveDB picks the connection target, falling back to the fixed local
// default for the driver when none is configured.
func resolveDB(driver, connection string) DBConfig {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "pgx" || driver == "postgresql" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres {
		driver = DriverSQLite
	}

	connection = strings.TrimSpace(connection)
	if connection != "" {
		return DBConfig{Driver: driver, Connection: connection}
	}

	fallback := defaultSQLiteConnection
	if driver == DriverPostgres {
		fallback = defaultPostgresConnection
	}
	return DBConfig{Driver: driver, Connection: fallback, Defaulted: true}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
