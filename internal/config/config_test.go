package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_BACKEND", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("SECURE_COOKIE", "")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.DataBackend)
	assert.Equal(t, "finance.db", cfg.DBPath)
	assert.False(t, cfg.SecureCookie)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("ADMIN_USER", "admin")
	t.Setenv("ADMIN_PASSWORD", "testpass123")

	cfg := Load()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.True(t, cfg.SecureCookie)
	assert.Equal(t, "admin", cfg.AdminUser)
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := &Config{Port: "8080", DataBackend: "redis", DBPath: "x.db"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresDBPathForSQLite(t *testing.T) {
	cfg := &Config{Port: "8080", DataBackend: BackendSQLite}
	assert.Error(t, cfg.Validate())
}

func TestValidateAdminPairing(t *testing.T) {
	cfg := &Config{Port: "8080", DataBackend: BackendMemory, AdminUser: "admin"}
	assert.Error(t, cfg.Validate(), "ADMIN_USER without ADMIN_PASSWORD is invalid")

	cfg.AdminPassword = "testpass123"
	assert.NoError(t, cfg.Validate())
}
