package config

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Backend selects where transactions and accounts are kept.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds runtime configuration for the server.
type Config struct {
	// HTTP server
	Port string

	// Storage
	DataBackend string
	DBPath      string

	// Cookies are only marked Secure behind TLS
	SecureCookie bool

	// Optional bootstrap account created at startup if absent
	AdminUser     string
	AdminPassword string
}

// Load reads configuration from the environment, first loading a .env file if
// one is present in the working directory.
func Load() *Config {
	// Missing .env is fine; real environment variables win either way.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DataBackend:   getEnv("DATA_BACKEND", BackendSQLite),
		DBPath:        getEnv("DB_PATH", "finance.db"),
		SecureCookie:  getEnvBool("SECURE_COOKIE", false),
		AdminUser:     getEnv("ADMIN_USER", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.DataBackend != BackendSQLite && c.DataBackend != BackendMemory {
		return fmt.Errorf("unknown DATA_BACKEND %q (want %q or %q)", c.DataBackend, BackendSQLite, BackendMemory)
	}
	if c.DataBackend == BackendSQLite && c.DBPath == "" {
		return fmt.Errorf("DB_PATH must be set for the %s backend", BackendSQLite)
	}
	if (c.AdminUser == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_USER and ADMIN_PASSWORD must be set together")
	}
	return nil
}
