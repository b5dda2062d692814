package config

import "time"

// Config holds runtime settings for the CodeBuddy CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, including the /api prefix.
//   - StorageBackend: "sqlite", "redis" or "memory".
//   - StorageDSN: SQLite database file.
//   - RedisAddr / RedisPassword / RedisDB: used by the redis backend.
//   - AutosaveDelay: quiet period before a draft is written.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogFormat / LogLevel: see logging.New.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	StorageBackend string        `env:"STORAGE_BACKEND"`
	StorageDSN     string        `env:"STORAGE_DSN"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB"`
	AutosaveDelay  time.Duration `env:"AUTOSAVE_DELAY"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	LogFormat      string        `env:"LOG_FORMAT"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.StorageBackend = "sqlite"
	c.StorageDSN = ".codebuddy/codebuddy.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.AutosaveDelay = 1200 * time.Millisecond
	c.RequestTimeout = 10 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including a .env file), JSON (if present) and command-line
// flags (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
