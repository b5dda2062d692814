// Package config handles configuration for the development backend,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the CodeBuddy dev backend.
//
// Fields:
//   - Address: HTTP bind address.
//   - DatabaseDSN: SQLite database file, or ":memory:".
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use
//     the default outside local development.
//   - SessionValidity: lifetime of a session token and its cookie.
//   - AllowedOrigin: origin allowed to call the API from a browser.
type Config struct {
	Address         string        `env:"ADDRESS"`
	DatabaseDSN     string        `env:"DATABASE_DSN"`
	SecretKey       string        `env:"SECRET_KEY"`
	SessionValidity time.Duration `env:"SESSION_VALIDITY"`
	AllowedOrigin   string        `env:"ALLOWED_ORIGIN"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Address = ":5000"
	c.DatabaseDSN = ".codebuddy/server.db"
	c.SecretKey = "secretKey"
	c.SessionValidity = 24 * time.Hour
	c.AllowedOrigin = "http://localhost:5173"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
