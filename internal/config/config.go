// Package config loads and validates application configuration from
// environment variables. There are two consumers with different needs: the
// interactive client (Load) and the development stub server (LoadStub).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds configuration for the interactive client.
// Values are populated by Load from environment variables.
type Config struct {
	// APIURL is the base URL of the Hoppin REST API, including the /api
	// prefix. Defaults to the local development backend.
	APIURL string

	// SessionFile is the path of the persisted session record.
	// Defaults to .hoppin/session.json under the user's home directory.
	SessionFile string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string
}

// Load reads client configuration from the environment. Every value has a
// default, so Load cannot fail on a clean environment.
func Load() (Config, error) {
	cfg := Config{
		APIURL:      getEnv("HOPPIN_API_URL", "http://localhost:8000/api"),
		SessionFile: getEnv("HOPPIN_SESSION_FILE", defaultSessionFile()),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

// StubConfig holds configuration for the development stub server.
type StubConfig struct {
	// Port is the TCP port the stub listens on. Defaults to "8000" to match
	// the client's default API URL.
	Port string

	// JWTSecret signs the bearer tokens the stub issues. Required.
	JWTSecret string

	// AdminEmails lists addresses that are promoted to admin on
	// registration. Set ADMIN_EMAILS to a comma-separated list.
	AdminEmails []string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	CORSOrigins []string

	// LogLevel controls the minimum log level. Defaults to "info".
	LogLevel string
}

// LoadStub reads stub server configuration from environment variables.
// Returns an error listing any required variables that are not set.
func LoadStub() (StubConfig, error) {
	cfg := StubConfig{
		Port:        getEnv("PORT", "8000"),
		AdminEmails: splitCSV(os.Getenv("ADMIN_EMAILS")),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	var missing []string

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return StubConfig{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// defaultSessionFile places the session record under the home directory,
// falling back to the working directory when home cannot be determined.
func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hoppin_session.json"
	}
	return filepath.Join(home, ".hoppin", "session.json")
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
