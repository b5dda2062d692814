package config

import (
	"encoding/json"
	"os"

	"github.com/TusharG27x/codebuddy/internal/flagx"
	"github.com/TusharG27x/codebuddy/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify delays either as
// strings like "1200ms" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	StorageBackend string         `json:"storage_backend"`
	StorageDSN     string         `json:"storage_dsn"`
	RedisAddr      string         `json:"redis_addr"`
	RedisPassword  string         `json:"redis_password"`
	RedisDB        *int           `json:"redis_db"`
	AutosaveDelay  timex.Duration `json:"autosave_delay"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogFormat      string         `json:"log_format"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Keys missing from the file keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.StorageDSN, jc.StorageDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.AutosaveDelay.Duration > 0 {
		cfg.AutosaveDelay = jc.AutosaveDelay.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
