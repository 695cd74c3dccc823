package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PHARMACY_DRIVER", "PHARMACY_CONNECTION", "HTTP_PORT", "EXPIRY_WINDOW_DAYS", "TOKEN_TTL", "CORS_ORIGINS", "SECRET"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DBConfig{Driver: DriverSQLite, Connection: defaultSQLiteConnection, Defaulted: true}, cfg.DB)
	assert.Equal(t, 30, cfg.ExpiryWindowDays)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "dev_secret", cfg.Auth.Secret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PHARMACY_DRIVER", "PostgreSQL")
	t.Setenv("PHARMACY_CONNECTION", " postgres://app@db:5432/pharmacy ")
	t.Setenv("HTTP_PORT", "not-a-port")
	t.Setenv("EXPIRY_WINDOW_DAYS", "14")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, ,https://pharmacy.example")

	cfg := Load()

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DBConfig{Driver: DriverPostgres, Connection: "postgres://app@db:5432/pharmacy"}, cfg.DB)
	assert.Equal(t, 14, cfg.ExpiryWindowDays)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "https://pharmacy.example"}, cfg.CORSOrigins)
}

func TestResolveDBFallsBackPerDriver(t *testing.T) {
	assert.Equal(t, defaultPostgresConnection, resolveDB("pgx", "").Connection)
	assert.Equal(t, DriverSQLite, resolveDB("mssql", "").Driver)
	assert.False(t, resolveDB("sqlite", "file:/tmp/x.db").Defaulted)
}
