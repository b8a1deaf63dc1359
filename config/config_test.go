package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "stayhub", cfg.AppName)
	assert.Equal(t, BackendPostgres, cfg.StorageBackend)
	assert.Equal(t, "domain-events", cfg.RabbitMQEventsQueue)
}

func TestStorageBackendOverride(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	cfg := Load()
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "app", DBPassword: "pw", DBName: "stayhub", DBSSLMode: "disable",
	}
	assert.Equal(t, "postgres://app:pw@db:5433/stayhub?sslmode=disable", cfg.PostgresDSN())
}

func TestCORSOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "https://a.test, https://b.test ,"}
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins())

	cfg = &Config{}
	assert.Empty(t, cfg.CORSOrigins())
}
